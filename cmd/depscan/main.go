package main

import (
	"os"

	"depscan/internal/logging"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if ee, ok := err.(*exitError); ok {
			os.Exit(ee.code)
		}
		logger := logging.NewLogger(logging.Config{
			Format: logging.HumanFormat,
			Level:  logging.InfoLevel,
		})
		logger.Error("Command execution failed", logging.Fields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

// exitError carries a specific process exit code up to main without
// printing a second error message.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}
