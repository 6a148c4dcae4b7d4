package cli

import "errors"

// Sentinel errors for exit code classification
var (
	// ErrUsage indicates invalid command usage, flags, or arguments
	ErrUsage = errors.New("usage error")

	// ErrConfig indicates invalid configuration
	ErrConfig = errors.New("configuration error")

	// ErrInvalid indicates that at least one identifier was rejected
	ErrInvalid = errors.New("invalid identifier")

	// ErrInternal indicates internal system errors
	ErrInternal = errors.New("internal error")
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitUsageError  = 2
	ExitInvalid     = 3
	ExitConfigError = 4
)

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalid):
		return ExitInvalid
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitFailure
	}
}
