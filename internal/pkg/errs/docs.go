// Package errs provides standardized error types for the storefront application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - VersionConflictError: For when an optimistic-concurrency write is stale
//   - AccessDeniedError: For deliberate authorization refusals
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// AccessDeniedError and VersionConflictError are expected results the caller
// must branch on, not faults: a denial is surfaced to the user verbatim, and
// a version conflict is retried by the caller after reloading the aggregate.
package errs
