package authz

import "errors"

// Standard error types for authz operations
var (
	ErrInvalidPolicy              = errors.New("authz: invalid policy")
	ErrUnknownEvaluator           = errors.New("authz: no evaluator with that id in policy")
	ErrUnhandledVariant           = errors.New("authz: visibility variant not handled by any evaluator")
	ErrAttributeSourceUnavailable = errors.New("authz: attribute source unavailable")
	ErrAttributeStale             = errors.New("authz: attribute data is stale")
	ErrConfigLoad                 = errors.New("authz: configuration could not be loaded")
)

// IsWrappingError checks if err is wrapping the target error using errors.Is.
// This is a helper for testing error wrapping.
func IsWrappingError(err, target error) bool {
	return errors.Is(err, target)
}
