package cmd

import (
	"errors"

	"github.com/spigell/resume-scorer/internal/criteria"
	"github.com/spigell/resume-scorer/internal/document"
)

// Exit codes of the cli.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitNotFound     = 2
	ExitUnreadable   = 3
	ExitInvalidInput = 4
)

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, document.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, document.ErrUnreadable):
		return ExitUnreadable
	case errors.Is(err, criteria.ErrInvalid), errors.Is(err, ErrConfig):
		return ExitInvalidInput
	default:
		return ExitFailure
	}
}
