package commands

import (
	"errors"
	"fmt"
	"io"

	"taskpad/internal/exitcode"
	"taskpad/internal/service"
)

// errUsage marks argument and lookup errors detected by the commands.
var errUsage = errors.New("usage")

type usageError struct{ msg string }

func (e *usageError) Error() string        { return e.msg }
func (e *usageError) Is(target error) bool { return target == errUsage }

// usageErrorf returns an error that reportError treats as a user error.
func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// reportError prints err and returns the matching exit code. Lookup and
// validation failures are user errors; anything else came from storage.
func reportError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, ErrTaskRefRequired):
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	case errors.Is(err, service.ErrEmptyText):
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	case errors.Is(err, errUsage), errors.Is(err, ErrAmbiguous), errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}
