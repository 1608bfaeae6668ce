/*
Package project tracks the development projects attached to development
grants.

Projects have no user facing messages. They are created and advanced only
through grant operations: the grant extension registers a project together
with a development grant and advances its stage once per validated
milestone. The package exposes a Controller interface so the grant logic
stays decoupled from the storage details.
*/
package project
