package cash

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/coin"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
)

func TestInitFromGenesis(t *testing.T) {
	addr := wagatest.RandomAddr()
	owner := wagatest.RandomAddr()
	collector := wagatest.RandomAddr()

	genesis := fmt.Sprintf(`{
		"conf": {
			"cash": {
				"metadata": {"schema": 1},
				"owner": %q,
				"collector_address": %q,
				"minimal_fee": {"whole": 0, "fractional": 10000000, "ticker": "WAGA"}
			}
		},
		"cash": [
			{
				"address": %q,
				"coins": [
					{"whole": 50, "ticker": "WAGA"},
					{"whole": 1, "fractional": 20, "ticker": "BTC"}
				]
			}
		]
	}`,
		strings.ToUpper(hex.EncodeToString(owner)),
		strings.ToUpper(hex.EncodeToString(collector)),
		strings.ToUpper(hex.EncodeToString(addr)),
	)

	Convey("Given a genesis with cash configuration and accounts", t, func() {
		var opts wagachain.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		migration.MustInitPkg(db, "cash")

		Convey("initialization loads wallets and configuration", func() {
			So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

			conf := mustLoadConf(db)
			So(conf.CollectorAddress.Equals(collector), ShouldBeTrue)
			So(conf.MinimalFee.Ticker, ShouldEqual, "WAGA")

			control := NewController(NewWalletBucket())
			balance, err := control.Balance(db, addr)
			So(err, ShouldBeNil)
			So(balance.Count(), ShouldEqual, 2)
			So(balance.Contains(coin.NewCoin(50, 0, "WAGA")), ShouldBeTrue)
			So(balance.Contains(coin.NewCoin(1, 20, "BTC")), ShouldBeTrue)
		})

		Convey("an unknown account balance stays empty", func() {
			So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

			control := NewController(NewWalletBucket())
			balance, err := control.Balance(db, wagatest.RandomAddr())
			So(err, ShouldBeNil)
			So(balance.IsEmpty(), ShouldBeTrue)
		})
	})
}
