/*
Package errors implements the error classes used across wagachain.

Every failure must descend from one of the registered Error instances so
that it maps to a stable ABCI code. Use errors.Wrap at the point where the
failure is discovered to attach context and a stacktrace:

	return errors.Wrap(errors.ErrEmpty, "beneficiary")

Test for a failure class with the registered instance, no matter how many
wrap layers were added since:

	if errors.ErrNotFound.Is(err) { ... }

Extension packages register their own error classes with Register, each
package inside its own code range starting at 1000.

Validation code can report several attribute failures at once by combining
Field and Append; FieldErrors extracts them back out for assertions.

Formatting follows pkg/errors: %s prints the message chain and %+v adds the
stacktrace recorded by the innermost wrap.
*/
package errors
