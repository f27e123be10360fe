package calendar

import "fmt"

// GregorianToHebrew converts a civil date to its Hebrew date. The month is
// AdarI or AdarII in leap years and Adar otherwise.
func GregorianToHebrew(date GregorianDate) (HebrewDate, error) {
	if _, err := NewGregorianDate(date.Year, date.Month, date.Day); err != nil {
		return HebrewDate{}, err
	}
	year, ordinal, day := hebrewFromFixed(date.fixed())
	return HebrewDate{
		Year:  year,
		Month: monthFromOrdinal(ordinal, isHebrewLeapYear(year)),
		Day:   day,
	}, nil
}

// HebrewToGregorian resolves an anniversary within the given Hebrew year.
//
// An unspecified Adar means Adar I in a leap year and the sole Adar otherwise.
// AdarI and AdarII fail with ErrInvalidMonth outside leap years. A day that
// the month does not have in that year (30 Cheshvan in a deficient year, for
// instance) fails with ErrDateParse.
func HebrewToGregorian(anniv HebrewAnniversary, hebrewYear int) (GregorianDate, error) {
	if hebrewYear < 1 {
		return GregorianDate{}, parseError(fmt.Sprint(hebrewYear), "Hebrew year out of range")
	}
	ordinal, err := anniv.Month.resolve(hebrewYear)
	if err != nil {
		return GregorianDate{}, err
	}
	if anniv.Day < 1 || anniv.Day > daysInHebrewMonth(ordinal, hebrewYear) {
		return GregorianDate{}, parseError(
			fmt.Sprintf("%s %d", anniv, hebrewYear),
			fmt.Sprintf("month has %d days that year", daysInHebrewMonth(ordinal, hebrewYear)),
		)
	}
	return gregorianFromFixed(fixedFromHebrew(hebrewYear, ordinal, anniv.Day)), nil
}

// HebrewYearOf returns the Hebrew year that contains date.
func HebrewYearOf(date GregorianDate) int {
	year, _, _ := hebrewFromFixed(date.fixed())
	return year
}

// IsHebrewLeapYear reports whether the Hebrew year has both Adar I and Adar II.
func IsHebrewLeapYear(year int) bool {
	return isHebrewLeapYear(year)
}

// DaysInHebrewYear returns the length of the Hebrew year in days.
func DaysInHebrewYear(year int) int {
	return daysInHebrewYear(year)
}
