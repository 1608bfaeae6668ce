package orm

import (
	"github.com/gogo/protobuf/proto"
)

// Model is implemented by any entity that can be stored using a
// ModelBucket. Serialization goes through the protobuf reflection, so a
// model is a tagged struct with the three proto.Message methods.
type Model interface {
	proto.Message

	// Validate returns an error if the model is not in a valid state to
	// be saved in the database.
	Validate() error
}

// ModelSlicePtr represents a pointer to a slice of models. For example, if
// Grant is a model, then *[]Grant and *[]*Grant are both valid
// ModelSlicePtr values. It is consumed by query methods that load many
// results.
type ModelSlicePtr interface{}
