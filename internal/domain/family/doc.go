// Package family derives relationship views from a flat snapshot of Person
// records and suggests missing links for a person being drafted.
//
// Relatives are weak references: a father, mother or spouse ID that does not
// resolve in the snapshot is treated as unset, never as an error. All
// functions are pure over the snapshot they are given.
package family
