// Package guard holds the ConstructorGuard used by commands, queries and
// domain objects to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not built by its constructor and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built through its constructor. Embed it
// as a private field, set it with NewConstructorGuard inside the constructor,
// and check it from the type's Validate method:
//
//	type SettleShopCommand struct {
//	    shopID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c SettleShopCommand) Validate() error {
//	    return c.guard.Validate(ErrSettleShopCommandIsNotConstructed)
//	}
//
// A zero-value struct carries a zero-value guard and therefore fails.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that reports the owner as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is
// nil) if the owner was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
