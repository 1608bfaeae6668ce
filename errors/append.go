package errors

import "strings"

// Append bundles given errors together. Nil errors are ignored. When all
// given errors are nil, nil is returned.
// Bundled errors keep their identity: an Is check against the bundle is
// true when it is true for at least one of the members.
func Append(errs ...error) error {
	var bundle bundledError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case bundledError:
			bundle = append(bundle, e...)
		default:
			if isNilErr(err) {
				continue
			}
			bundle = append(bundle, err)
		}
	}
	switch len(bundle) {
	case 0:
		return nil
	case 1:
		return bundle[0]
	default:
		return bundle
	}
}

type bundledError []error

var _ unpacker = (bundledError)(nil)

func (e bundledError) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unpack returns all bundled errors.
func (e bundledError) Unpack() []error {
	return e
}

// ABCICode returns the code of the first member that provides one, looking
// through wrapping layers. The first failure classifies the whole bundle.
func (e bundledError) ABCICode() uint32 {
	for _, err := range e {
		if code := abciCode(err); code != internalABCICode {
			return code
		}
	}
	return internalABCICode
}
