package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

type cliError struct {
	Code    string
	Message string
	Details any
}

func (e *cliError) Error() string {
	if e == nil {
		return "command error"
	}
	return e.Message
}

func invalidArgsError(command string, args []string) *cliError {
	return &cliError{
		Code:    "INVALID_ARGUMENT",
		Message: fmt.Sprintf("%s accepts no positional arguments", command),
		Details: map[string]any{"args": args},
	}
}

func printError(cmd *cobra.Command, format string, err error) error {
	if cmd == nil {
		return fmt.Errorf("nil command")
	}

	if err == nil {
		env := output.NewErrorEnvelope("INTERNAL_ERROR", "unexpected internal failure", map[string]any{}, nil)
		return output.Print(cmd.OutOrStdout(), format, env)
	}

	var cliErr *cliError
	if errors.As(err, &cliErr) {
		env := output.NewErrorEnvelope(cliErr.Code, cliErr.Message, cliErr.Details, nil)
		return output.Print(cmd.OutOrStdout(), format, env)
	}

	env := output.NewErrorEnvelope(errorCode(err), err.Error(), map[string]any{"reason": err.Error()}, nil)
	return output.Print(cmd.OutOrStdout(), format, env)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidDate):
		return "INVALID_DATE"
	case errors.Is(err, domain.ErrInvalidDateRange):
		return "INVALID_DATE_RANGE"
	case errors.Is(err, domain.ErrInvalidAggregationMode):
		return "INVALID_MODE"
	case errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrInvalidMonthKey):
		return "INVALID_ARGUMENT"
	case errors.Is(err, fs.ErrNotExist):
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}

func outputFormat(opts *RootOptions) string {
	if opts == nil {
		return output.FormatHuman
	}
	return opts.Output
}

func toWarningPayloads(warnings []domain.Warning) []output.WarningPayload {
	payloads := make([]output.WarningPayload, 0, len(warnings))
	for _, warning := range warnings {
		payloads = append(payloads, output.WarningPayload{
			Code:    warning.Code,
			Message: warning.Message,
			Details: warning.Details,
		})
	}
	return payloads
}
