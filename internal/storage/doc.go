// Package storage is the key-value substrate Fortress persists into.
//
// Keys and values are text. Three backends share the Store interface:
//
//   - SQLite via modernc.org/sqlite (default, single local file)
//   - PostgreSQL via pgx's database/sql driver
//   - an in-process map, used by tests and the "memory" driver
//
// Store.Update runs a function against a Repository whose writes become
// visible together or not at all. The SQL backends map it to a database
// transaction.
package storage
