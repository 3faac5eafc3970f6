// Package guard provides the ConstructorGuard used by commands, queries and value objects
// to detect instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. Its zero value reports
// "not constructed", so embedding it makes zero-value use detectable.
//
// Example:
//
//	type RunPipelineCommand struct {
//	    date  kernel.DeliveryDate
//	    guard guard.ConstructorGuard
//	}
//
//	func (c RunPipelineCommand) Validate() error {
//	    return c.guard.Validate(ErrRunPipelineCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
