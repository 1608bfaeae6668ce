/*
Package role implements a capability based access control list.

Every address can be granted a set of named capabilities, for example
"validator" or "verified". Extensions gate privileged operations by asking
HasCapability instead of hardcoding addresses. Grants and revocations are
administered by the address configured in the package configuration.
*/
package role
