// Package contract signals programming errors: preconditions that a caller
// was supposed to guarantee. A violation is never a rejected game action;
// those are reported as boolean results by the packages that own them.
package contract

import "fmt"

// Violation is the panic value raised when a precondition is broken.
type Violation struct {
	Op  string // Operation that detected the violation (e.g. "backpack.Place")
	Msg string
}

func (v Violation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", v.Op, v.Msg)
}

// Panicf raises a Violation for op.
func Panicf(op, format string, args ...interface{}) {
	panic(Violation{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// Require panics with a Violation when cond is false.
func Require(cond bool, op, format string, args ...interface{}) {
	if !cond {
		Panicf(op, format, args...)
	}
}

// Recover converts a Violation panic into *err. Any other panic is re-raised.
// It must be called directly by defer:
//
//	defer contract.Recover(&err)
func Recover(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if v, ok := r.(Violation); ok {
		*err = v
		return
	}
	panic(r)
}
