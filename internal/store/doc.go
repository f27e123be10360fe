// Package store defines the persistence contract for Person records.
// Implementations live under internal/platform; the service depends only on
// the interfaces declared here.
package store
