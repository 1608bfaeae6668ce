/*
Package migration provides tooling for schema versioned state.

Every persistent entity and every message carries a Metadata field with a
schema version. Each package initializes its schema with MustInitPkg and
registers one migration function per schema version with MustRegister.
The registered functions upgrade a payload in place, one version at a
time, until the current schema of the package is reached.

Handlers wrapped through SchemaMigratingRegistry receive messages already
upgraded to the current schema. Buckets wrapped with NewModelBucket load
models already upgraded to the current schema. The schema of a package is
bumped at runtime with an UpgradeSchemaMsg, authorized by the migration
admin.
*/
package migration
