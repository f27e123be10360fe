// Package memory implements store.PersonStore in process memory. It backs the
// service tests and the "memory" database driver.
package memory
