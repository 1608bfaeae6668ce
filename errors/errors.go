package errors

import (
	"fmt"

	pkgerr "github.com/pkg/errors"
)

// usedCodes tracks all registered error codes. Each code must be registered
// at most once, during package initialization. Code 1 is reserved for
// unclassified internal errors and cannot be taken.
var usedCodes = map[uint32]*Error{}

// Register returns a new error instance bound to the given ABCI code. It
// panics when the code is already taken, so all registrations must happen
// in variable declarations or init functions.
//
// Codes below 1000 belong to the framework. Extension packages register
// their own codes starting from 1000, each package in its own range.
func Register(code uint32, description string) *Error {
	if code == internalABCICode {
		panic(fmt.Sprintf("error code %d is reserved", code))
	}
	if e, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered as %q", code, e.desc))
	}
	err := &Error{code: code, desc: description}
	usedCodes[code] = err
	return err
}

var (
	// ErrUnauthorized signals a missing signature or capability. Retrying
	// with a different signer may succeed.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means a referenced entity does not exist in the store.
	ErrNotFound = Register(3, "not found")

	// ErrMsg marks a malformed or unroutable message.
	ErrMsg = Register(4, "invalid message")

	// ErrModel marks persisted state that fails validation.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate signals a conflict with an already existing entity.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks API misuse that no input can fix. It is the
	// developer, not the caller, that must act.
	ErrHuman = Register(7, "needs human intervention")

	// ErrEmpty signals a required value that was not provided.
	ErrEmpty = Register(8, "value is empty")

	// ErrState rejects an operation that is not allowed in the current
	// state of the entity, regardless of the input.
	ErrState = Register(9, "invalid state")

	// ErrType signals a Go type mismatch, usually a wrong interface
	// implementation passed in.
	ErrType = Register(10, "invalid type")

	// ErrAmount marks an invalid monetary value.
	ErrAmount = Register(11, "invalid amount")

	// ErrInput is the generic malformed input error, used when no more
	// specific class applies.
	ErrInput = Register(12, "invalid input")

	// ErrCurrency signals mixing values of different currencies.
	ErrCurrency = Register(13, "invalid currency")

	// ErrOverflow signals a computation exceeding the value range.
	ErrOverflow = Register(14, "overflow")

	// ErrMetadata signals missing or invalid entity metadata.
	ErrMetadata = Register(15, "metadata")

	// ErrSchema signals a schema version that cannot be handled.
	ErrSchema = Register(16, "schema")

	// ErrDatabase signals a low level storage failure.
	ErrDatabase = Register(17, "database")

	// ErrIteratorDone is returned by iterators that ran out of items.
	ErrIteratorDone = Register(18, "iterator done")

	// ErrExpired rejects an operation attempted past its deadline.
	ErrExpired = Register(19, "expired")

	// ErrInsufficientFunds signals a balance too low to cover a transfer
	// or a fee.
	ErrInsufficientFunds = Register(20, "insufficient funds")

	// ErrPanic is only set when we recover from a panic, so we know to
	// redact potentially sensitive system info.
	ErrPanic = Register(111222, "panic")
)

// Error represents a registered root error. All errors created during
// runtime are expected to wrap one of the registered instances, so that
// client code can classify a failure with Is checks and the ABCI layer can
// map it to a stable numeric code.
type Error struct {
	code uint32
	desc string
}

func (e *Error) Error() string {
	return e.desc
}

// ABCICode returns the registered error code.
func (e *Error) ABCICode() uint32 {
	return e.code
}

// Is returns true if given error is created from this registered instance,
// no matter how many times it was wrapped since.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for {
		if err == e {
			return true
		}
		// A bundled error is a match when any member matches.
		if u, ok := err.(unpacker); ok {
			for _, member := range u.Unpack() {
				if e.Is(member) {
					return true
				}
			}
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return false
		}
	}
}

// Wrap extends given error with an additional information.
//
// If the wrapped error does not provide ABCICode method (ie. stdlib errors),
// it will be labeled as an internal error when converted to an ABCI
// response.
//
// If the wrapped error does not carry a stacktrace yet, the stack is
// captured here. Only the most inner wrap call records the stack.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = pkgerr.WithStack(err)
	}
	return &wrappedError{
		parent: err,
		msg:    description,
	}
}

// Wrapf extends given error with an additional information, formatting the
// description according to a format specifier.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	// This error layer description.
	msg string
	// The underlying error that triggered this one.
	parent error
}

func (e *wrappedError) Error() string {
	return fmt.Sprintf("%s: %s", e.msg, e.parent.Error())
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format implements fmt.Formatter. The %+v verb prints the error together
// with the recorded stacktrace, all other verbs print the plain message.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprint(s, e.Error())
		if st := stackTrace(e); st != nil {
			st.Format(s, verb)
		}
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover captures a panic and stops its propagation. When panic was raised,
// it is converted into an ErrPanic instance and assigned to given error
// pointer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// isNilErr returns true for both the untyped nil and a typed nil carried by
// an interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	if e, ok := err.(*Error); ok {
		return e == nil
	}
	return false
}

// stackTrace returns the deepest stacktrace recorded in the error chain or
// nil when none of the wrapped errors carries one.
func stackTrace(err error) pkgerr.StackTrace {
	var deepest pkgerr.StackTrace
	for {
		if err == nil {
			return deepest
		}
		if t, ok := err.(stackTracer); ok {
			if st := t.StackTrace(); st != nil {
				deepest = st
			}
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return deepest
		}
	}
}

// stackTracer is implemented by pkg/errors wrappers.
type stackTracer interface {
	StackTrace() pkgerr.StackTrace
}

// causer is implemented by all errors that wrap another one.
type causer interface {
	Cause() error
}

// unpacker is implemented by errors that bundle multiple other errors.
type unpacker interface {
	Unpack() []error
}
