/*
Package gconf provides a toolset for managing an extension configuration.

Every extension can declare a configuration object that is stored as a
singleton under a fixed, per package key. The content is loaded and stored
using the protobuf serialization.

Each configuration carries an owner address. The generic update handler
authorizes configuration changes against that owner, so an extension gets
a complete, authenticated configuration update path for free.
*/
package gconf
