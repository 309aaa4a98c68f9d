package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			if exit.message != "" {
				fmt.Fprintln(os.Stderr, exit.message)
			}
			os.Exit(exit.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError carries an explicit process exit code through cobra's error
// return. Validation distinguishes schema failures (1) from unreadable
// input (2), so a plain error is not enough.
type exitError struct {
	code    int
	message string
}

func (e *exitError) Error() string {
	return e.message
}
