package main

import (
	"errors"
	"fmt"
	"os"

	"jswitch/internal/theme"
)

// Set during build time via ldflags
var (
	Version    = "dev"
	Repository = ""
)

// errReported marks a failure whose details were already printed
var errReported = errors.New("failed")

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, theme.ErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
