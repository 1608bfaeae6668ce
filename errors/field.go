package errors

import (
	"fmt"

	pkgerr "github.com/pkg/errors"
)

// Field wraps given error with the name of the attribute that the error is
// about. It returns nil when the error is nil.
//
// Use Go field naming, for example Beneficiary or Amount. Nested attributes
// use a dot path (Schedule.Milestones) and iterables use the zero based
// element index as the name (Milestones.2.ShareBps).
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}

	if stackTrace(err) == nil {
		err = pkgerr.WithStack(err)
	}

	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}

	return &fieldError{
		parent: err,
		field:  fieldName,
		desc:   description,
	}
}

// AppendField clubs together existing errors with one more field error.
// It is a convenience for the common validation pattern of collecting one
// error per attribute:
//
//	errs = errors.AppendField(errs, "Amount", m.Amount.Validate())
func AppendField(errsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (err *fieldError) Error() string {
	if err.desc == "" {
		return fmt.Sprintf("field %q: %s", err.field, err.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", err.field, err.desc, err.parent)
}

func (err *fieldError) Cause() error {
	return err.parent
}

func (err *fieldError) Field() string {
	return err.field
}

// FieldErrors returns all errors in the chain that were created for the
// given field name. It understands both wrapped and bundled errors.
func FieldErrors(err error, fieldName string) []error {
	if isNilErr(err) {
		return nil
	}

	var res []error
	for {
		if err == nil {
			return res
		}

		if f, ok := err.(fielder); ok {
			if f.Field() == fieldName {
				return append(res, err)
			}
		}

		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			// Unpack already covered all children, no need to
			// follow the cause chain.
			return res
		}

		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return res
		}
	}
}

type fielder interface {
	// Field returns the field name that this error was created for.
	Field() string
}
