package role

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/store"
	"github.com/wagatoken/wagachain/wagatest"
)

func TestInitFromGenesis(t *testing.T) {
	admin := wagatest.RandomAddr()
	validator := wagatest.RandomAddr()

	genesis := fmt.Sprintf(`{
		"conf": {
			"role": {
				"metadata": {"schema": 1},
				"admin": %q
			}
		},
		"role": [
			{
				"address": %q,
				"capabilities": ["validator", "verified"]
			}
		]
	}`,
		strings.ToUpper(hex.EncodeToString(admin)),
		strings.ToUpper(hex.EncodeToString(validator)),
	)

	Convey("Given a genesis with role configuration and assignments", t, func() {
		var opts wagachain.Options
		So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)

		db := store.MemStore()
		migration.MustInitPkg(db, "role")

		Convey("initialization loads the configuration and the roles", func() {
			So(Initializer{}.FromGenesis(opts, db), ShouldBeNil)

			conf, err := loadConf(db)
			So(err, ShouldBeNil)
			So(conf.Admin.Equals(admin), ShouldBeTrue)

			ok, err := HasCapability(db, validator, "validator")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)

			ok, err = HasCapability(db, validator, "auditor")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}
