package cli

import (
	"errors"
	"fmt"

	"github.com/prasetyowira/tyrelabel/domain/label"
)

// Exit statuses returned by Execute
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// UsageError reports bad command-line input
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by the command tree to a process status.
// Rejected label values count as usage errors.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		usageErr      *UsageError
		validationErr *label.ValidationError
		missingErr    *label.MissingFieldsError
	)
	if errors.As(err, &usageErr) || errors.As(err, &validationErr) || errors.As(err, &missingErr) {
		return ExitUsage
	}
	return ExitError
}
