package calendar

import (
	"fmt"
)

// System selects the calendar a recurring date is kept in.
type System string

const (
	SystemHebrew    System = "hebrew"
	SystemGregorian System = "gregorian"
)

// Valid reports whether s is a known calendar system.
func (s System) Valid() bool {
	return s == SystemHebrew || s == SystemGregorian
}

// Occurrence is the next concrete date of a recurring anniversary.
type Occurrence struct {
	Date      GregorianDate `json:"date"`
	DaysUntil int           `json:"daysUntil"`
}

// NextOccurrence parses anniversary in the given system and finds its next
// date on or after today. Parse failures are returned as ErrDateParse.
func NextOccurrence(anniversary string, system System, today GregorianDate) (Occurrence, error) {
	switch system {
	case SystemGregorian:
		a, err := ParseGregorianAnniversary(anniversary)
		if err != nil {
			return Occurrence{}, err
		}
		return NextGregorianOccurrence(a, today), nil
	case SystemHebrew:
		a, err := ParseHebrewAnniversary(anniversary)
		if err != nil {
			return Occurrence{}, err
		}
		return NextHebrewOccurrence(a, today)
	}
	return Occurrence{}, parseError(string(system), "unknown calendar system")
}

// NextGregorianOccurrence returns the anniversary in today's year, or in the
// following year when that date has already passed. DaysUntil is in [0, 366).
func NextGregorianOccurrence(a GregorianAnniversary, today GregorianDate) Occurrence {
	candidate := a.In(today.Year)
	if candidate.Before(today) {
		candidate = a.In(today.Year + 1)
	}
	return Occurrence{Date: candidate, DaysUntil: candidate.DaysSince(today)}
}

// NextHebrewOccurrence resolves the anniversary in today's Hebrew year, or in
// the following Hebrew year when that date has already passed. DaysUntil is in
// [0, 386).
//
// The observed date in a given year follows ObservedDate, so the leap status
// of each year is evaluated separately.
func NextHebrewOccurrence(a HebrewAnniversary, today GregorianDate) (Occurrence, error) {
	year := HebrewYearOf(today)
	candidate, err := ObservedDate(a, year)
	if err != nil {
		return Occurrence{}, err
	}
	if candidate.Before(today) {
		candidate, err = ObservedDate(a, year+1)
		if err != nil {
			return Occurrence{}, err
		}
	}
	return Occurrence{Date: candidate, DaysUntil: candidate.DaysSince(today)}, nil
}

// ObservedDate is the Gregorian date on which a recurring anniversary is kept
// in hebrewYear. It differs from HebrewToGregorian only where the anniversary
// does not exist that year:
//   - Adar I or Adar II in a year with a single Adar is kept in Adar;
//   - day 30 of a month that has 29 days that year is kept on the following day,
//     the first of the next month.
func ObservedDate(a HebrewAnniversary, hebrewYear int) (GregorianDate, error) {
	if !a.Month.Valid() || a.Day < 1 || a.Day > 30 {
		return GregorianDate{}, parseError(a.String(), "not a day and month")
	}
	if (a.Month == AdarI || a.Month == AdarII) && !isHebrewLeapYear(hebrewYear) {
		a.Month = Adar
	}

	ordinal, err := a.Month.resolve(hebrewYear)
	if err != nil {
		return GregorianDate{}, err
	}
	if a.Day == 30 && daysInHebrewMonth(ordinal, hebrewYear) == 29 {
		return gregorianFromFixed(fixedFromHebrew(hebrewYear, ordinal, 29) + 1), nil
	}
	return gregorianFromFixed(fixedFromHebrew(hebrewYear, ordinal, a.Day)), nil
}

// CompareOccurrences orders known occurrences by DaysUntil and places unknown
// (nil) occurrences last. It returns a negative number when a sorts first.
func CompareOccurrences(a, b *Occurrence) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.DaysUntil - b.DaysUntil
}

// Display formats a stored date for presentation in the given system.
func Display(gregorian, hebrew string, system System) string {
	if system == SystemGregorian {
		if d, err := ParseGregorianDate(gregorian); err == nil {
			return d.String()
		}
		return gregorian
	}
	if a, err := ParseHebrewAnniversary(hebrew); err == nil {
		if containsHebrew(hebrew) {
			return a.HebrewString()
		}
		return a.String()
	}
	return hebrew
}

// String renders an occurrence for logs and CLI output.
func (o Occurrence) String() string {
	return fmt.Sprintf("%s (in %d days)", o.Date, o.DaysUntil)
}
