// Package postgres provides the PostgreSQL implementation of store.PersonStore
// and the embedded goose migrations that create its schema. Connections go
// through database/sql with the pgx stdlib driver.
package postgres
