package main

import (
	"errors"
	"fmt"
	"os"

	"termplay/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, services.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "termplay:", err)
		}
		os.Exit(services.ExitCode(err))
	}
}
