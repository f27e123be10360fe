package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	today := GregorianDate{2024, time.March, 20}

	tests := []struct {
		name          string
		anniversary   string
		system        System
		today         GregorianDate
		wantDate      GregorianDate
		wantDaysUntil int
	}{
		{
			name:          "gregorian anniversary already passed this year",
			anniversary:   "15/03",
			system:        SystemGregorian,
			today:         today,
			wantDate:      GregorianDate{2025, time.March, 15},
			wantDaysUntil: 360,
		},
		{
			name:          "gregorian anniversary today",
			anniversary:   "20/03/1950",
			system:        SystemGregorian,
			today:         today,
			wantDate:      today,
			wantDaysUntil: 0,
		},
		{
			name:          "leap day in a common year",
			anniversary:   "29/02",
			system:        SystemGregorian,
			today:         GregorianDate{2024, time.March, 1},
			wantDate:      GregorianDate{2025, time.February, 28},
			wantDaysUntil: 364,
		},
		{
			name:          "hebrew anniversary later this hebrew year",
			anniversary:   "15 Nisan",
			system:        SystemHebrew,
			today:         today,
			wantDate:      GregorianDate{2024, time.April, 23},
			wantDaysUntil: 34,
		},
		{
			name:          "hebrew anniversary today",
			anniversary:   "ב10 אדר ב",
			system:        SystemHebrew,
			today:         today,
			wantDate:      today,
			wantDaysUntil: 0,
		},
		{
			name:          "adar II falls back to adar in the next common year",
			anniversary:   "9 Adar II",
			system:        SystemHebrew,
			today:         today,
			wantDate:      GregorianDate{2025, time.March, 9},
			wantDaysUntil: 354,
		},
		{
			name:          "tishrei rolls into the next hebrew year",
			anniversary:   "1 Tishrei",
			system:        SystemHebrew,
			today:         today,
			wantDate:      GregorianDate{2024, time.October, 3},
			wantDaysUntil: 197,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NextOccurrence(tt.anniversary, tt.system, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, got.Date)
			assert.Equal(t, tt.wantDaysUntil, got.DaysUntil)
		})
	}
}

func TestNextOccurrence_Errors(t *testing.T) {
	t.Parallel()

	today := GregorianDate{2024, time.March, 20}

	_, err := NextOccurrence("not a date", SystemGregorian, today)
	assert.ErrorIs(t, err, ErrDateParse)

	_, err = NextOccurrence("15 Smarch", SystemHebrew, today)
	assert.ErrorIs(t, err, ErrDateParse)

	_, err = NextOccurrence("15/03", System("julian"), today)
	assert.ErrorIs(t, err, ErrDateParse)
}

func TestNextOccurrence_Bounds(t *testing.T) {
	t.Parallel()

	hebrew := []HebrewAnniversary{
		{1, Tishrei}, {30, Cheshvan}, {30, Kislev}, {15, Adar}, {30, AdarI},
		{14, AdarII}, {15, Nisan}, {29, Elul},
	}
	gregorian := []GregorianAnniversary{
		{time.January, 1}, {time.February, 29}, {time.March, 15}, {time.December, 31},
	}

	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 366*4; i++ {
		today := DateOf(start.AddDate(0, 0, i))

		for _, a := range hebrew {
			occ, err := NextHebrewOccurrence(a, today)
			require.NoError(t, err, "%s on %s", a, today)
			require.GreaterOrEqual(t, occ.DaysUntil, 0, "%s on %s", a, today)
			require.Less(t, occ.DaysUntil, 386, "%s on %s", a, today)
			require.Equal(t, occ.DaysUntil, occ.Date.DaysSince(today))
		}
		for _, a := range gregorian {
			occ := NextGregorianOccurrence(a, today)
			require.GreaterOrEqual(t, occ.DaysUntil, 0, "%s on %s", a, today)
			require.Less(t, occ.DaysUntil, 366, "%s on %s", a, today)
		}
	}
}

func TestObservedDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		anniv HebrewAnniversary
		year  int
		want  GregorianDate
	}{
		{"adar II kept in adar", HebrewAnniversary{14, AdarII}, 5785, GregorianDate{2025, time.March, 14}},
		{"adar I kept in adar", HebrewAnniversary{14, AdarI}, 5785, GregorianDate{2025, time.March, 14}},
		{"adar II in a leap year", HebrewAnniversary{14, AdarII}, 5784, GregorianDate{2024, time.March, 24}},
		{"missing thirtieth moves to the first", HebrewAnniversary{30, Cheshvan}, 5784, GregorianDate{2023, time.November, 14}},
		{"existing thirtieth", HebrewAnniversary{30, Cheshvan}, 5785, GregorianDate{2024, time.December, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ObservedDate(tt.anniv, tt.year)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ObservedDate(HebrewAnniversary{31, Nisan}, 5784)
	assert.ErrorIs(t, err, ErrDateParse)
}

func TestCompareOccurrences(t *testing.T) {
	t.Parallel()

	soon := &Occurrence{DaysUntil: 3}
	later := &Occurrence{DaysUntil: 40}

	assert.Negative(t, CompareOccurrences(soon, later))
	assert.Positive(t, CompareOccurrences(later, soon))
	assert.Zero(t, CompareOccurrences(soon, soon))
	assert.Negative(t, CompareOccurrences(later, nil))
	assert.Positive(t, CompareOccurrences(nil, soon))
	assert.Zero(t, CompareOccurrences(nil, nil))
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "20/03/2024", Display("2024-03-20", "ב10 אדר ב", SystemGregorian))
	assert.Equal(t, "ב10 אדר ב", Display("2024-03-20", "10 באדר ב׳", SystemHebrew))
	assert.Equal(t, "10 Adar II", Display("", "Adar II 10", SystemHebrew))
	assert.Equal(t, "unknown", Display("unknown", "", SystemGregorian))
	assert.Equal(t, "", Display("20/03/2024", "", SystemHebrew))
}
