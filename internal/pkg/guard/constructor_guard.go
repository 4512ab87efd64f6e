// Package guard holds the ConstructorGuard used by commands and queries to
// detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. The zero value
// reports the object as not constructed.
//
// Example usage:
//
//	var ErrPressKeyCommandIsNotConstructed = errors.New("PressKeyCommand must be created via NewPressKeyCommand")
//
//	type PressKeyCommand struct {
//	    symbol string
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c PressKeyCommand) Validate() error {
//	    return c.guard.Validate(ErrPressKeyCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that validates successfully.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
