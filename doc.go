/*
Package wagachain defines the contracts that tie the application together:
transactions and messages, handlers and decorators, the key-value store
family, addresses and conditions, and the context helpers that carry block
information between the ABCI surface and the extensions.

The package holds interfaces and the simplest shared value types only.
Implementations live in the subpackages: storage in store and orm, the
decorator stack and extensions under x, the application assembly in app.

Context is passed through context.Context values. For every value XYZ of
type T carried in the context there is a pair of functions:

	WithXYZ(Context, T) Context
	GetXYZ(Context) T (or (T, bool))

Extensions may define their own context keys to enrich the context, the
signature extension does so to expose the authenticated conditions.
*/
package wagachain
