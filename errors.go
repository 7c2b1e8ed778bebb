// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwsim

import "github.com/pkg/errors"

// Kind distinguishes the classes of error the core raises. Errors are always
// values returned from the failing operation; there is no exception-for-
// control-flow anywhere in this package.
type Kind int

const (
	// KindParse marks a malformed HDL AST or connection/IO spec string.
	KindParse Kind = iota
	// KindPinNotFound marks a pin name absent from a chip or part's interface.
	KindPinNotFound
	// KindHardware marks a width mismatch, out-of-bounds bit index, unknown
	// built-in, or impossible slice range.
	KindHardware
	// KindIO marks a failure reading or writing test-script files.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindPinNotFound:
		return "pin-not-found"
	case KindHardware:
		return "hardware"
	case KindIO:
		return "i/o"
	default:
		return "unknown"
	}
}

// Error wraps an error with the Kind that classifies it, so callers can
// decide whether to abort or continue without string-matching the message.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Cause() error  { return e.err }
func (e *Error) Unwrap() error { return e.err }

// newErr wraps msg as an *Error of the given kind.
func newErr(k Kind, msg string) error {
	return &Error{Kind: k, err: errors.New(msg)}
}

// wrapErr wraps err as an *Error of the given kind, with msg as context.
func wrapErr(k Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, err: errors.Wrap(err, msg)}
}

// errPinNotFound builds a pin-not-found error for pin name on chip/part name.
func errPinNotFound(owner, pin string) error {
	return &Error{Kind: KindPinNotFound, err: errors.Errorf("pin %q not found on %q", pin, owner)}
}

// errWidthMismatch builds a hardware error for a connection width mismatch.
func errWidthMismatch(side1 string, w1 int, side2 string, w2 int) error {
	return &Error{Kind: KindHardware, err: errors.Errorf(
		"width mismatch: %s is %d bit(s), %s is %d bit(s)", side1, w1, side2, w2)}
}

// IsKind reports whether the first *Error in err's chain (err itself, or a
// cause reached through Unwrap) has kind k. Deeper *Error causes are not
// consulted.
func IsKind(err error, k Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == k
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
