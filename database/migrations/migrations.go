// Package migrations holds the SQL schema migrations. Each file registers
// itself with migration.Register from init(); cmd/shopdesk imports this
// package for that side effect.
package migrations
