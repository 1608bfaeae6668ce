package cash

import (
	"github.com/gogo/protobuf/proto"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/orm"
)

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the balance of a single account, a normalized set of coins.
type Set struct {
	Metadata *wagachain.Metadata `protobuf:"bytes,1,opt,name=metadata" json:"metadata,omitempty"`
	Coins    []*coin.Coin        `protobuf:"bytes,2,rep,name=coins" json:"coins,omitempty"`
}

var _ orm.Model = (*Set)(nil)

func (s *Set) Reset()         { *s = Set{} }
func (s *Set) String() string { return proto.CompactTextString(s) }
func (*Set) ProtoMessage()    {}

func (s *Set) GetMetadata() *wagachain.Metadata { return s.Metadata }

// Validate requires that all coins are in alphabetical order and valid.
func (s *Set) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", s.Metadata.Validate())
	errs = errors.AppendField(errs, "Coins", coin.Coins(s.Coins).Validate())
	return errs
}

// WalletBucket stores account balances keyed by address.
type WalletBucket struct {
	orm.ModelBucket
}

// NewWalletBucket creates the proper bucket for this extension.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		ModelBucket: migration.NewModelBucket("cash",
			orm.NewModelBucket(BucketName, &Set{})),
	}
}

// Wallet loads the balance set of the given address. A missing wallet is
// returned as an empty set, not an error.
func (b WalletBucket) Wallet(db wagachain.ReadOnlyKVStore, addr wagachain.Address) (*Set, error) {
	var set Set
	switch err := b.One(db, addr, &set); {
	case err == nil:
		return &set, nil
	case errors.ErrNotFound.Is(err):
		return &Set{Metadata: &wagachain.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}

// Save persists the balance set of the given address. Wallets that went
// empty are stored anyway to keep the bucket audit friendly.
func (b WalletBucket) Save(db wagachain.KVStore, addr wagachain.Address, set *Set) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	_, err := b.Put(db, addr, set)
	return err
}

// RegisterQuery registers the wallet bucket under /wallets.
func RegisterQuery(qr wagachain.QueryRouter) {
	NewWalletBucket().Register("wallets", qr)
}
