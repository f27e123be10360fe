package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// unixEpochFixed is the fixed day number of 1970-01-01.
const unixEpochFixed = 719163

var (
	dayMonthYearRegex = regexp.MustCompile(`^(\d{1,2})[/.](\d{1,2})[/.](\d{4})$`)
	isoDateRegex      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	dayMonthRegex     = regexp.MustCompile(`^(\d{1,2})[/.](\d{1,2})$`)
)

// GregorianDate is a civil date. The zero value is not a valid date.
type GregorianDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewGregorianDate validates and builds a GregorianDate.
func NewGregorianDate(year int, month time.Month, day int) (GregorianDate, error) {
	d := GregorianDate{Year: year, Month: month, Day: day}
	if year < 1 || month < time.January || month > time.December {
		return GregorianDate{}, parseError(d.String(), "month or year out of range")
	}
	if day < 1 || day > daysInGregorianMonth(year, month) {
		return GregorianDate{}, parseError(d.String(), "day out of range")
	}
	return d, nil
}

// DateOf returns the civil date of t in t's own location.
func DateOf(t time.Time) GregorianDate {
	y, m, d := t.Date()
	return GregorianDate{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d GregorianDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as DD/MM/YYYY.
func (d GregorianDate) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// MarshalText encodes the date as DD/MM/YYYY.
func (d GregorianDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts any format understood by ParseGregorianDate.
func (d *GregorianDate) UnmarshalText(text []byte) error {
	parsed, err := ParseGregorianDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsZero reports whether d is the zero value.
func (d GregorianDate) IsZero() bool {
	return d == GregorianDate{}
}

// Before reports whether d falls strictly before other.
func (d GregorianDate) Before(other GregorianDate) bool {
	return d.fixed() < other.fixed()
}

// DaysSince returns the signed number of days from other to d.
func (d GregorianDate) DaysSince(other GregorianDate) int {
	return d.fixed() - other.fixed()
}

func (d GregorianDate) fixed() int {
	return floorDiv(int(d.Time().Unix()), 86400) + unixEpochFixed
}

func gregorianFromFixed(fixed int) GregorianDate {
	t := time.Unix(int64(fixed-unixEpochFixed)*86400, 0).UTC()
	return DateOf(t)
}

// ParseGregorianDate accepts DD/MM/YYYY (also D/M/YYYY and dotted) and ISO YYYY-MM-DD.
func ParseGregorianDate(s string) (GregorianDate, error) {
	s = strings.TrimSpace(s)
	if m := dayMonthYearRegex.FindStringSubmatch(s); m != nil {
		return buildGregorian(s, m[3], m[2], m[1])
	}
	if m := isoDateRegex.FindStringSubmatch(s); m != nil {
		return buildGregorian(s, m[1], m[2], m[3])
	}
	return GregorianDate{}, parseError(s, "expected DD/MM/YYYY")
}

func buildGregorian(input, year, month, day string) (GregorianDate, error) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	date, err := NewGregorianDate(y, time.Month(m), d)
	if err != nil {
		return GregorianDate{}, parseError(input, "no such day")
	}
	return date, nil
}

// GregorianAnniversary is a recurring Gregorian day and month.
type GregorianAnniversary struct {
	Month time.Month
	Day   int
}

// String formats the anniversary as DD/MM.
func (a GregorianAnniversary) String() string {
	return fmt.Sprintf("%02d/%02d", a.Day, int(a.Month))
}

// In places the anniversary in year. 29 February falls on 28 February in
// common years.
func (a GregorianAnniversary) In(year int) GregorianDate {
	day := a.Day
	if a.Month == time.February && day == 29 && !isGregorianLeapYear(year) {
		day = 28
	}
	return GregorianDate{Year: year, Month: a.Month, Day: day}
}

// ParseGregorianAnniversary accepts DD/MM or any full date accepted by
// ParseGregorianDate, whose year is ignored.
func ParseGregorianAnniversary(s string) (GregorianAnniversary, error) {
	s = strings.TrimSpace(s)
	if m := dayMonthRegex.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		// A leap year admits every day/month pair that can recur.
		if _, err := NewGregorianDate(2000, time.Month(month), day); err != nil {
			return GregorianAnniversary{}, parseError(s, "no such day")
		}
		return GregorianAnniversary{Month: time.Month(month), Day: day}, nil
	}
	d, err := ParseGregorianDate(s)
	if err != nil {
		return GregorianAnniversary{}, err
	}
	return GregorianAnniversary{Month: d.Month, Day: d.Day}, nil
}

// NormalizeGregorian rewrites any accepted full date into DD/MM/YYYY. Input
// that does not parse is returned unchanged.
func NormalizeGregorian(s string) string {
	d, err := ParseGregorianDate(s)
	if err != nil {
		return s
	}
	return d.String()
}

func isGregorianLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysInGregorianMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if isGregorianLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}
