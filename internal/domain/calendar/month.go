package calendar

import (
	"strings"
)

// HebrewMonth is a closed set of Hebrew month names. Adar is split into three
// tags: Adar (variant not given), AdarI and AdarII. Which of them is valid, and
// what Adar means, depends on whether the year being resolved is a leap year.
type HebrewMonth int

const (
	Nisan HebrewMonth = iota + 1
	Iyyar
	Sivan
	Tammuz
	Av
	Elul
	Tishrei
	Cheshvan
	Kislev
	Tevet
	Shevat
	Adar
	AdarI
	AdarII
)

var monthNames = map[HebrewMonth]string{
	Nisan:    "Nisan",
	Iyyar:    "Iyyar",
	Sivan:    "Sivan",
	Tammuz:   "Tammuz",
	Av:       "Av",
	Elul:     "Elul",
	Tishrei:  "Tishrei",
	Cheshvan: "Cheshvan",
	Kislev:   "Kislev",
	Tevet:    "Tevet",
	Shevat:   "Shevat",
	Adar:     "Adar",
	AdarI:    "Adar I",
	AdarII:   "Adar II",
}

var hebrewMonthNames = map[HebrewMonth]string{
	Nisan:    "ניסן",
	Iyyar:    "אייר",
	Sivan:    "סיון",
	Tammuz:   "תמוז",
	Av:       "אב",
	Elul:     "אלול",
	Tishrei:  "תשרי",
	Cheshvan: "חשון",
	Kislev:   "כסלו",
	Tevet:    "טבת",
	Shevat:   "שבט",
	Adar:     "אדר",
	AdarI:    "אדר א",
	AdarII:   "אדר ב",
}

// monthAliases maps every accepted spelling, lower-cased and with geresh marks
// and repeated spaces removed, to its month.
var monthAliases = map[string]HebrewMonth{
	"nisan": Nisan, "nissan": Nisan, "ניסן": Nisan,
	"iyyar": Iyyar, "iyar": Iyyar, "אייר": Iyyar, "איר": Iyyar,
	"sivan": Sivan, "סיון": Sivan, "סיוון": Sivan,
	"tammuz": Tammuz, "tamuz": Tammuz, "תמוז": Tammuz,
	"av": Av, "menachem av": Av, "אב": Av, "מנחם אב": Av,
	"elul": Elul, "אלול": Elul,
	"tishrei": Tishrei, "tishri": Tishrei, "תשרי": Tishrei,
	"cheshvan": Cheshvan, "heshvan": Cheshvan, "marcheshvan": Cheshvan, "marheshvan": Cheshvan,
	"חשון": Cheshvan, "חשוון": Cheshvan, "מרחשון": Cheshvan, "מרחשוון": Cheshvan,
	"kislev": Kislev, "כסלו": Kislev, "כסליו": Kislev,
	"tevet": Tevet, "teves": Tevet, "טבת": Tevet,
	"shevat": Shevat, "shvat": Shevat, "שבט": Shevat,
	"adar": Adar, "אדר": Adar,
	"adar i": AdarI, "adar 1": AdarI, "adar alef": AdarI, "אדר א": AdarI, "אדר ראשון": AdarI,
	"adar ii": AdarII, "adar 2": AdarII, "adar bet": AdarII, "adar beit": AdarII,
	"אדר ב": AdarII, "אדר שני": AdarII,
}

// String returns the Latin transliteration of the month.
func (m HebrewMonth) String() string {
	if name, ok := monthNames[m]; ok {
		return name
	}
	return "Unknown"
}

// HebrewName returns the month name in Hebrew script.
func (m HebrewMonth) HebrewName() string {
	return hebrewMonthNames[m]
}

// Valid reports whether m is one of the declared months.
func (m HebrewMonth) Valid() bool {
	return m >= Nisan && m <= AdarII
}

// resolve maps the tag to the month ordinal used by the calendar arithmetic
// (Nisan = 1 … Adar/Adar I = 12, Adar II = 13) for the given Hebrew year.
func (m HebrewMonth) resolve(year int) (int, error) {
	leap := isHebrewLeapYear(year)
	switch m {
	case Adar:
		return 12, nil
	case AdarI:
		if !leap {
			return 0, invalidMonthError(m.String(), "year has a single Adar")
		}
		return 12, nil
	case AdarII:
		if !leap {
			return 0, invalidMonthError(m.String(), "year has a single Adar")
		}
		return 13, nil
	}
	if !m.Valid() {
		return 0, parseError(m.String(), "unknown month")
	}
	return int(m), nil
}

// monthFromOrdinal is the inverse of resolve for dates produced by the
// calendar arithmetic itself.
func monthFromOrdinal(ordinal int, leap bool) HebrewMonth {
	switch {
	case ordinal == 12 && leap:
		return AdarI
	case ordinal == 12:
		return Adar
	case ordinal == 13:
		return AdarII
	}
	return HebrewMonth(ordinal)
}

// ParseHebrewMonth accepts Latin transliterations and Hebrew names, including
// "Adar I", "Adar 2", "אדר א׳" and "אדר ב".
func ParseHebrewMonth(s string) (HebrewMonth, error) {
	key := normalizeMonthName(s)
	if m, ok := monthAliases[key]; ok {
		return m, nil
	}
	return 0, parseError(s, "unknown month name")
}

func normalizeMonthName(s string) string {
	s = strings.NewReplacer("׳", "", "'", "", "\"", "", "״", "", "-", " ").Replace(s)
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
