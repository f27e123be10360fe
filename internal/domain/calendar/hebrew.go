package calendar

// The arithmetic below works on fixed day numbers ("rata die"): day 1 is
// Monday 1 January of year 1 in the proleptic Gregorian calendar. Month
// ordinals follow the biblical numbering, Nisan = 1 through Adar II = 13, and
// a Hebrew year starts on 1 Tishrei (ordinal 7).

const (
	// hebrewEpoch is the fixed day of 1 Tishrei AM 1.
	hebrewEpoch = -1373427

	// partsPerDay is the number of halakim (1/1080 hour) in a day.
	partsPerDay = 25920

	// monthParts is the mean synodic month in halakim beyond 29 days.
	monthParts = 13753

	// moladTohuParts is the molad of year 1 in halakim, offset by one day.
	moladTohuParts = 12084
)

// isHebrewLeapYear reports whether year has thirteen months (Adar I and Adar II).
func isHebrewLeapYear(year int) bool {
	return mod(7*year+1, 19) < 7
}

// lastMonthOfYear is Adar II in leap years and Adar otherwise.
func lastMonthOfYear(year int) int {
	if isHebrewLeapYear(year) {
		return 13
	}
	return 12
}

// elapsedDays returns the days from the epoch to the molad of Tishrei of
// year, with the first postponement rule applied.
func elapsedDays(year int) int {
	monthsElapsed := floorDiv(235*year-234, 19)
	partsElapsed := moladTohuParts + monthParts*monthsElapsed
	day := 29*monthsElapsed + floorDiv(partsElapsed, partsPerDay)
	if mod(3*(day+1), 7) < 3 {
		return day + 1
	}
	return day
}

// yearLengthCorrection applies the remaining postponements that keep every
// year between 353 and 385 days long.
func yearLengthCorrection(year int) int {
	ny0 := elapsedDays(year - 1)
	ny1 := elapsedDays(year)
	ny2 := elapsedDays(year + 1)
	switch {
	case ny2-ny1 == 356:
		return 2
	case ny1-ny0 == 382:
		return 1
	}
	return 0
}

// hebrewNewYear returns the fixed day of 1 Tishrei of year.
func hebrewNewYear(year int) int {
	return hebrewEpoch + elapsedDays(year) + yearLengthCorrection(year)
}

// daysInHebrewYear is one of 353, 354, 355, 383, 384 or 385.
func daysInHebrewYear(year int) int {
	return hebrewNewYear(year+1) - hebrewNewYear(year)
}

func longCheshvan(year int) bool {
	return daysInHebrewYear(year)%10 == 5
}

func shortKislev(year int) bool {
	return daysInHebrewYear(year)%10 == 3
}

// daysInHebrewMonth returns 29 or 30 for a month ordinal within year.
func daysInHebrewMonth(month, year int) int {
	switch {
	case month == 2, month == 4, month == 6, month == 10, month == 13:
		return 29
	case month == 12 && !isHebrewLeapYear(year):
		return 29
	case month == 8 && !longCheshvan(year):
		return 29
	case month == 9 && shortKislev(year):
		return 29
	}
	return 30
}

// fixedFromHebrew converts a valid Hebrew date to a fixed day number.
func fixedFromHebrew(year, month, day int) int {
	fixed := hebrewNewYear(year) + day - 1
	if month < 7 {
		for m := 7; m <= lastMonthOfYear(year); m++ {
			fixed += daysInHebrewMonth(m, year)
		}
		for m := 1; m < month; m++ {
			fixed += daysInHebrewMonth(m, year)
		}
		return fixed
	}
	for m := 7; m < month; m++ {
		fixed += daysInHebrewMonth(m, year)
	}
	return fixed
}

// hebrewFromFixed converts a fixed day number to a Hebrew year, month ordinal and day.
func hebrewFromFixed(fixed int) (year, month, day int) {
	// Mean year length is 35975351/98496 days.
	approx := floorDiv((fixed-hebrewEpoch)*98496, 35975351) + 1
	year = approx - 1
	for hebrewNewYear(year+1) <= fixed {
		year++
	}

	month = 1
	if fixed < fixedFromHebrew(year, 1, 1) {
		month = 7
	}
	for fixed > fixedFromHebrew(year, month, daysInHebrewMonth(month, year)) {
		month++
	}

	day = fixed - fixedFromHebrew(year, month, 1) + 1
	return year, month, day
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	return a - b*floorDiv(a, b)
}
