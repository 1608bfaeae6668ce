package crypto

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain/errors"
)

// PublicKey is an ed25519 public key in its serializable form.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

var _ proto.Message = (*PublicKey)(nil)

func (p *PublicKey) Reset()         { *p = PublicKey{} }
func (p *PublicKey) String() string { return proto.CompactTextString(p) }
func (*PublicKey) ProtoMessage()    {}

func (p *PublicKey) Validate() error {
	if len(p.Ed25519) != 32 {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 public key length")
	}
	return nil
}

// PrivateKey is an ed25519 private key in its serializable form.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

var _ proto.Message = (*PrivateKey)(nil)

func (p *PrivateKey) Reset()         { *p = PrivateKey{} }
func (p *PrivateKey) String() string { return "PrivateKey<redacted>" }
func (*PrivateKey) ProtoMessage()    {}

// Signature is a detached ed25519 signature of a message.
type Signature struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

var _ proto.Message = (*Signature)(nil)

func (s *Signature) Reset()         { *s = Signature{} }
func (s *Signature) String() string { return proto.CompactTextString(s) }
func (*Signature) ProtoMessage()    {}

func (s *Signature) Validate() error {
	if len(s.Ed25519) != 64 {
		return errors.Wrap(errors.ErrInput, "invalid ed25519 signature length")
	}
	return nil
}
