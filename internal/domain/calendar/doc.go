// Package calendar converts between the Gregorian and Hebrew calendars and
// schedules recurring anniversaries (birthdays, memorial days) in either one.
//
// All dates are civil dates without a time zone. A Gregorian date carries a
// year; a Hebrew anniversary carries only a day and a month, and is resolved
// against a Hebrew year supplied by the caller.
//
// The package performs no I/O and holds no state, so every function is safe
// for concurrent use.
package calendar
