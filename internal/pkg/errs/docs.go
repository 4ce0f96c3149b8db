// Package errs provides standardized error types shared by every layer of the
// order-management core. It implements one consistent pattern for error creation,
// formatting, and unwrapping.
//
// The package covers the recurring failure classes of the application:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a numeric value is outside its allowed bounds
//   - ObjectNotFoundError: an order, item, or conversation cannot be found
//   - VersionIsInvalidError: a persisted aggregate version is inconsistent
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound)
//   - a struct type with fields for error details
//   - constructor functions with and without an underlying cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// Domain-specific conflict errors (illegal status transitions, quotes issued at
// the wrong time) live with their aggregates; this package only carries the
// generic validation and lookup classes that the HTTP adapter maps onto
// response codes.
package errs
