// Package domain contains the Person record and the errors shared by every
// layer of the application. The calendar and family subpackages hold the
// calendar arithmetic and the relationship graph that operate on it.
package domain
