// Package errs provides the typed errors shared by the fulfillment domain and its adapters.
//
// Every error type follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ...) usable with errors.Is
//   - a struct carrying the offending parameter and an optional cause
//   - New...Error and New...ErrorWithCause constructors
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Values interpolated into messages are sanitized so that carrier payloads or
// database values containing newlines cannot break single-line log records.
package errs
