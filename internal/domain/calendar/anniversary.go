package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// hebrewPrefix is the preposition "on the" that the stored Hebrew dates carry,
// as in "ב15 אדר".
const hebrewPrefix = "ב"

// HebrewAnniversary is a recurring Hebrew day and month with no year.
type HebrewAnniversary struct {
	Day   int
	Month HebrewMonth
}

// String formats the anniversary with the Latin month name, e.g. "15 Adar II".
func (a HebrewAnniversary) String() string {
	return fmt.Sprintf("%d %s", a.Day, a.Month)
}

// HebrewString formats the anniversary in Hebrew script, e.g. "ב15 אדר ב".
func (a HebrewAnniversary) HebrewString() string {
	return fmt.Sprintf("%s%d %s", hebrewPrefix, a.Day, a.Month.HebrewName())
}

// HebrewDate is a fully specified Hebrew date.
type HebrewDate struct {
	Year  int
	Month HebrewMonth
	Day   int
}

// Anniversary drops the year.
func (d HebrewDate) Anniversary() HebrewAnniversary {
	return HebrewAnniversary{Day: d.Day, Month: d.Month}
}

// String formats the date as "10 Adar II 5784".
func (d HebrewDate) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, d.Month, d.Year)
}

// ParseHebrewAnniversary decomposes strings such as "15 Adar II", "ב15 אדר ב",
// "15 באדר א׳" or "Adar 15" into a day and a month. Only the shape is checked
// here; whether the day exists is decided when resolving against a year.
func ParseHebrewAnniversary(s string) (HebrewAnniversary, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, hebrewPrefix)
	fields := strings.Fields(clean)
	if len(fields) < 2 {
		return HebrewAnniversary{}, parseError(s, "expected day and month")
	}

	dayField, monthFields := fields[0], fields[1:]
	if !isDigits(dayField) {
		// Month first, day last: "Adar II 15".
		last := fields[len(fields)-1]
		if !isDigits(last) {
			return HebrewAnniversary{}, parseError(s, "missing day number")
		}
		dayField, monthFields = last, fields[:len(fields)-1]
	}

	day, err := strconv.Atoi(dayField)
	if err != nil || day < 1 || day > 30 {
		return HebrewAnniversary{}, parseError(s, "day out of range")
	}

	monthName := strings.Join(monthFields, " ")
	// "15 באדר" puts the preposition on the month instead of the day.
	monthName = strings.TrimPrefix(monthName, hebrewPrefix)
	month, err := ParseHebrewMonth(monthName)
	if err != nil {
		return HebrewAnniversary{}, parseError(s, "unknown month name")
	}

	return HebrewAnniversary{Day: day, Month: month}, nil
}

// NormalizeHebrew adds the "ב" prefix to anniversaries written in Hebrew
// script. Anything else is returned trimmed but otherwise unchanged.
func NormalizeHebrew(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, hebrewPrefix) || !containsHebrew(s) {
		return s
	}
	return hebrewPrefix + s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func containsHebrew(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Hebrew, r) {
			return true
		}
	}
	return false
}
