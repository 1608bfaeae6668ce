package app

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
)

// ResultSet is the wire format of every ABCI query response. Both the key
// and the value fields of the response carry one, so a single query can
// return anywhere from zero to N matches through a uniform envelope.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

var _ proto.Message = (*ResultSet)(nil)

func (m *ResultSet) Reset()         { *m = ResultSet{} }
func (m *ResultSet) String() string { return proto.CompactTextString(m) }
func (*ResultSet) ProtoMessage()    {}

// resultSetPlain shares ResultSet's memory layout and field tags but not
// its Marshal/Unmarshal methods, so gogo's proto.Marshal and
// proto.Unmarshal take their reflection path instead of dispatching back
// into the methods below (which would recurse forever).
type resultSetPlain ResultSet

func (m *resultSetPlain) Reset()         { *m = resultSetPlain{} }
func (m *resultSetPlain) String() string { return proto.CompactTextString(m) }
func (*resultSetPlain) ProtoMessage()    {}

// Marshal serializes the result set.
func (m *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSetPlain)(m))
}

// Unmarshal parses a serialized result set in place.
func (m *ResultSet) Unmarshal(raw []byte) error {
	m.Reset()
	return proto.Unmarshal(raw, (*resultSetPlain)(m))
}

// ResultsFromKeys returns a ResultSet of all keys given a set of models.
func ResultsFromKeys(models []wagachain.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values given a set of models.
func ResultsFromValues(models []wagachain.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues and makes them
// a consistent whole again.
func JoinResults(keys, values *ResultSet) ([]wagachain.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "mismatched result set sizes: %d != %d", len(kref), len(vref))
	}
	mods := make([]wagachain.Model, len(kref))
	for i := range mods {
		mods[i] = wagachain.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a result set, and if it is not empty,
// unmarshal the first result into obj.
func UnmarshalOneResult(bz []byte, obj proto.Message) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return errors.Wrap(err, "unmarshal result set")
	}
	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return proto.Unmarshal(res.Results[0], obj)
}
