package cash

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/errors"
)

// Controller is the functionality needed by other extensions to move
// value around. This is implemented by CashController, but extensions
// should accept the interface so custody stays in one place.
type Controller interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account.
	MoveCoins(store wagachain.KVStore, src, dest wagachain.Address, amount coin.Coin) error

	// CoinMint adds the given amount of funds to an account.
	CoinMint(store wagachain.KVStore, dest wagachain.Address, amount coin.Coin) error

	// CoinBurn removes the given amount of funds from an account.
	CoinBurn(store wagachain.KVStore, src wagachain.Address, amount coin.Coin) error

	// Balance returns the coins held by an account.
	Balance(store wagachain.ReadOnlyKVStore, src wagachain.Address) (coin.Coins, error)
}

// CashController implements Controller over a WalletBucket.
type CashController struct {
	bucket WalletBucket
}

var _ Controller = CashController{}

// NewController returns a controller using the given bucket to store the
// data.
func NewController(bucket WalletBucket) CashController {
	return CashController{bucket: bucket}
}

// MoveCoins moves the given amount from src to dest. If src doesn't
// exist, or doesn't have sufficient coins, it fails.
func (c CashController) MoveCoins(store wagachain.KVStore, src, dest wagachain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive transfer: %#v", &amount)
	}

	sender, err := c.bucket.Wallet(store, src)
	if err != nil {
		return err
	}
	if !coin.Coins(sender.Coins).Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientFunds, "wallet %s", src)
	}

	rest, err := coin.Coins(sender.Coins).Subtract(amount)
	if err != nil {
		return err
	}
	sender.Coins = rest
	if err := c.bucket.Save(store, src, sender); err != nil {
		return err
	}

	recipient, err := c.bucket.Wallet(store, dest)
	if err != nil {
		return err
	}
	total, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}
	recipient.Coins = total
	return c.bucket.Save(store, dest, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c CashController) CoinMint(store wagachain.KVStore, dest wagachain.Address, amount coin.Coin) error {
	recipient, err := c.bucket.Wallet(store, dest)
	if err != nil {
		return err
	}
	total, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return err
	}
	recipient.Coins = total
	return c.bucket.Save(store, dest, recipient)
}

// CoinBurn attempts to remove the given amount of coins from
// the source address. Fails if there are not enough funds.
func (c CashController) CoinBurn(store wagachain.KVStore, src wagachain.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive burn: %#v", &amount)
	}
	account, err := c.bucket.Wallet(store, src)
	if err != nil {
		return err
	}
	if !coin.Coins(account.Coins).Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientFunds, "wallet %s", src)
	}
	rest, err := coin.Coins(account.Coins).Subtract(amount)
	if err != nil {
		return err
	}
	account.Coins = rest
	return c.bucket.Save(store, src, account)
}

// Balance returns the coins held by an account. A missing account is
// reported as an empty balance.
func (c CashController) Balance(store wagachain.ReadOnlyKVStore, src wagachain.Address) (coin.Coins, error) {
	account, err := c.bucket.Wallet(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "wallet")
	}
	return account.Coins, nil
}
