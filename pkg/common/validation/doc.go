// Package validation provides argument checks shared by the lambdas
// constructors and configuration loaders.
//
// Every check returns a *errors.ValidationError carrying the module and field
// name, so callers can surface consistent messages and match them with
// errors.Is(err, errors.ErrInvalidConfiguration).
package validation
