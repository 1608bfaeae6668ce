package grant

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/errors"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/orm"
)

// totalsKey is the fixed primary key of the global escrow aggregate.
var totalsKey = []byte("totals")

// EscrowCondition is the per-grant condition guarding the escrowed funds.
// The funds live on its address and only grant operations can move them.
func EscrowCondition(grantID []byte) wagachain.Condition {
	return wagachain.NewCondition("grant", "escrow", grantID)
}

// GrantBucket stores the grants with sequence generated ids.
type GrantBucket struct {
	orm.ModelBucket
}

// NewGrantBucket creates the proper bucket for this extension. Grants are
// additionally indexed by beneficiary and, uniquely, by linked batch.
func NewGrantBucket() GrantBucket {
	b := orm.NewModelBucket("grant", &Grant{},
		orm.WithIDSequence(orm.NewSequence("grant", "id")),
		orm.WithIndex("beneficiary", beneficiaryIndexer, false),
		orm.WithIndex("batch", batchIndexer, true),
	)
	return GrantBucket{
		ModelBucket: migration.NewModelBucket("grant", b),
	}
}

func beneficiaryIndexer(obj orm.Model) ([]byte, error) {
	g, ok := obj.(*Grant)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "expected grant, got %T", obj)
	}
	return g.Beneficiary, nil
}

func batchIndexer(obj orm.Model) ([]byte, error) {
	g, ok := obj.(*Grant)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "expected grant, got %T", obj)
	}
	// not every grant links a batch, unlinked ones are not indexed
	if len(g.BatchID) == 0 {
		return nil, nil
	}
	return g.BatchID, nil
}

// ScheduleBucket stores the disbursement schedules keyed by grant id.
type ScheduleBucket struct {
	orm.ModelBucket
}

// NewScheduleBucket creates the proper bucket for this extension.
func NewScheduleBucket() ScheduleBucket {
	return ScheduleBucket{
		ModelBucket: migration.NewModelBucket("grant",
			orm.NewModelBucket("sched", &Schedule{})),
	}
}

// EscrowBucket stores the escrow accounting keyed by grant id.
type EscrowBucket struct {
	orm.ModelBucket
}

// NewEscrowBucket creates the proper bucket for this extension.
func NewEscrowBucket() EscrowBucket {
	return EscrowBucket{
		ModelBucket: migration.NewModelBucket("grant",
			orm.NewModelBucket("gresc", &Escrow{})),
	}
}

// TotalsBucket holds the single global escrow aggregate record.
type TotalsBucket struct {
	orm.ModelBucket
}

// NewTotalsBucket creates the proper bucket for this extension.
func NewTotalsBucket() TotalsBucket {
	return TotalsBucket{
		ModelBucket: migration.NewModelBucket("grant",
			orm.NewModelBucket("gtotal", &EscrowTotals{})),
	}
}

// Totals loads the aggregate, falling back to an empty record.
func (b TotalsBucket) Totals(db wagachain.ReadOnlyKVStore) (*EscrowTotals, error) {
	var t EscrowTotals
	switch err := b.One(db, totalsKey, &t); {
	case err == nil:
		return &t, nil
	case errors.ErrNotFound.Is(err):
		return &EscrowTotals{Metadata: &wagachain.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "load escrow totals")
	}
}

// Save persists the aggregate under its fixed key.
func (b TotalsBucket) Save(db wagachain.KVStore, t *EscrowTotals) error {
	_, err := b.Put(db, totalsKey, t)
	return err
}

// RegisterQuery registers all grant ledger buckets: /grants with the
// /grants/beneficiary and /grants/batch indexes, /schedules, /escrows and
// the aggregate under /escrows/totals.
func RegisterQuery(qr wagachain.QueryRouter) {
	NewGrantBucket().Register("grants", qr)
	NewScheduleBucket().Register("schedules", qr)
	NewEscrowBucket().Register("escrows", qr)
	NewTotalsBucket().Register("escrows/totals", qr)
}
