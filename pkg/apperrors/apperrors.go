package apperrors

import "errors"

// ErrOptimisticLock signals a compare-and-swap update that matched no rows:
// the record was modified (or finalized) by a concurrent operation.
var ErrOptimisticLock = errors.New("record was modified by a concurrent operation")

// Kind classifies a business error for mapping at the request boundary.
type Kind int

const (
	// KindValidation - malformed or policy-violating input.
	KindValidation Kind = iota + 1
	// KindNotFound - referenced record does not exist.
	KindNotFound
	// KindInvalidState - transition not legal from the current status.
	KindInvalidState
	// KindUnauthorized - actor lacks the role or station scope.
	KindUnauthorized
)

// Error is a business error with a user-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Validation builds a KindValidation error.
func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// InvalidState builds a KindInvalidState error.
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }

// Unauthorized builds a KindUnauthorized error.
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// KindOf extracts the kind from an error chain. ok is false for
// infrastructure errors that should surface as internal failures.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
