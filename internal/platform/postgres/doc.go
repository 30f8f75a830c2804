// Package postgres implements the persistence interfaces from internal/store
// on top of PostgreSQL. It owns query construction, row scanning, and the
// translation of driver errors into the store package's sentinel errors, and
// carries the goose migration files that define the schema it expects.
package postgres
