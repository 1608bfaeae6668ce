package app

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/x/cash"
	"github.com/wagatoken/wagachain/x/sigs"
)

// Tx is the transaction envelope of this chain. The message travels as
// its path plus the serialized payload so the envelope does not need to
// enumerate every message type.
type Tx struct {
	// Fees the main signer is willing to pay.
	Fees       *coin.Coin           `protobuf:"bytes,1,opt,name=fees" json:"fees,omitempty"`
	Signatures []*sigs.StdSignature `protobuf:"bytes,2,rep,name=signatures" json:"signatures,omitempty"`
	// Path routes Payload to its handler.
	Path    string `protobuf:"bytes,3,opt,name=path,proto3" json:"path,omitempty"`
	Payload []byte `protobuf:"bytes,4,opt,name=payload,proto3" json:"payload,omitempty"`
}

var _ wagachain.Tx = (*Tx)(nil)
var _ cash.FeeTx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

func (tx *Tx) Reset()         { *tx = Tx{} }
func (tx *Tx) String() string { return proto.CompactTextString(tx) }
func (*Tx) ProtoMessage()     {}

// GetMsg deserializes the embedded message. The message type comes from
// the path registry.
func (tx *Tx) GetMsg() (wagachain.Msg, error) {
	msg, err := msgByPath(tx.Path)
	if err != nil {
		return nil, err
	}
	if err := proto.Unmarshal(tx.Payload, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "payload: %s", err)
	}
	return msg, nil
}

// GetFees implements the cash.FeeTx interface.
func (tx *Tx) GetFees() *coin.Coin { return tx.Fees }

// GetSignatures implements the sigs.SignedTx interface.
func (tx *Tx) GetSignatures() []*sigs.StdSignature { return tx.Signatures }

// GetSignBytes returns the canonical serialization signed by every
// signature: the transaction without the signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	stripped := *tx
	stripped.Signatures = nil
	return proto.Marshal(&stripped)
}

// NewTx wraps a message into an unsigned transaction.
func NewTx(msg wagachain.Msg, fees *coin.Coin) (*Tx, error) {
	pm, ok := msg.(proto.Message)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not serializable", msg)
	}
	payload, err := proto.Marshal(pm)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "marshal message: %s", err)
	}
	return &Tx{
		Fees:    fees,
		Path:    msg.Path(),
		Payload: payload,
	}, nil
}

// TxDecoder parses a raw block transaction into the envelope.
func TxDecoder(bz []byte) (wagachain.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "transaction: %s", err)
	}
	return tx, nil
}
