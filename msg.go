package wagachain

import (
	"reflect"

	"github.com/wagatoken/wagachain/errors"
)

// Msg is a request to make a single state transition. It is pure data: all
// authentication information lives in the wrapping Tx, all processing logic
// in the Handler registered for the message path.
//
// Serialization happens at the transaction codec boundary, messages
// themselves only declare protobuf field tags.
type Msg interface {
	// Path returns the routing key of this message type. It must be
	// lowercase, slash separated, unique across the application and
	// stable forever, as clients address handlers by it.
	Path() string

	// Validate performs the stateless sanity check of the message
	// content.
	Validate() error
}

// LoadMsg extracts the message from the transaction, validates it and
// copies it into destination, which must be a pointer to the same message
// type.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	val := reflect.ValueOf(msg)
	if val.Type() != dest.Type() {
		return errors.Wrapf(errors.ErrType, "want %T, got %T", destination, msg)
	}
	dest.Elem().Set(val.Elem())
	return nil
}
