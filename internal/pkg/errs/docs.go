// Package errs provides standardized error types for the last-mile core.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two families of errors:
//   - validation and lookup errors (ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError, ObjectAlreadyExistsError)
//   - RuleViolationError, raised when a business operation is refused; it always
//     wraps one kind sentinel such as ErrInvalidTransition or ErrInsufficientBalance
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is / errors.As support
//
// Kind classifies an error into its rule kind so that transports can map it
// to a status code. ErrConcurrentModification is the only retryable kind.
package errs
