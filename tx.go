package wagachain

// Tx carries the data sent by a user to the chain: the message to process
// plus whatever the middleware stack needs, such as signatures and fee
// information. Middlewares discover the extras by interface upgrades on the
// concrete transaction type.
type Tx interface {
	// GetMsg returns the action to process.
	GetMsg() (Msg, error)
}

// TxDecoder parses raw bytes from a block into a transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the message path of the transaction, or "(missing)" when
// the message cannot be extracted. Meant for logging, never for routing.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}
