package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
)

func main() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(h))

	output.ResetProcessExitCode()

	if err := cli.NewRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		code := output.CurrentProcessExitCode()
		if code > 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}

	code := output.CurrentProcessExitCode()
	if code > 0 {
		os.Exit(code)
	}
}
