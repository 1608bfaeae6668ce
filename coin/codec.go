package coin

import "github.com/gogo/protobuf/proto"

// Coin is a fixed-point representation of an amount of a single currency.
// The value is whole + fractional/10^9. Both parts must carry the same
// sign. Coin does not implement its own marshaler: serialization happens
// through the protobuf field tags at the codec boundary.
type Coin struct {
	// Whole coins, each of 10^9 fractional units.
	Whole int64 `protobuf:"varint,1,opt,name=whole,proto3" json:"whole,omitempty"`
	// Fractional units, valid range is -10^9 < fractional < 10^9.
	Fractional int64 `protobuf:"varint,2,opt,name=fractional,proto3" json:"fractional,omitempty"`
	// Ticker is the all-uppercase currency code.
	Ticker string `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

var _ proto.Message = (*Coin)(nil)

func (c *Coin) Reset() { *c = Coin{} }

func (*Coin) ProtoMessage() {}
