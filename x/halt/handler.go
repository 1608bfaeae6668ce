package halt

import (
	"github.com/wagatoken/wagachain"
	"github.com/wagatoken/wagachain/gconf"
	"github.com/wagatoken/wagachain/migration"
	"github.com/wagatoken/wagachain/x"
)

// RegisterRoutes installs the handlers of this extension.
func RegisterRoutes(r wagachain.Registry, auth x.Authenticator) {
	r = migration.SchemaMigratingRegistry("halt", r)
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler("halt", &Configuration{}, auth, nil))
}
