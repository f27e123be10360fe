package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHebrewAnniversary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    HebrewAnniversary
		wantErr bool
	}{
		{input: "15 Adar II", want: HebrewAnniversary{15, AdarII}},
		{input: "15 adar 2", want: HebrewAnniversary{15, AdarII}},
		{input: "Adar II 15", want: HebrewAnniversary{15, AdarII}},
		{input: "1 Tishrei", want: HebrewAnniversary{1, Tishrei}},
		{input: "  3   Marcheshvan ", want: HebrewAnniversary{3, Cheshvan}},
		{input: "ב15 אדר ב", want: HebrewAnniversary{15, AdarII}},
		{input: "ב15 אדר", want: HebrewAnniversary{15, Adar}},
		{input: "15 באדר א׳", want: HebrewAnniversary{15, AdarI}},
		{input: "ב3 מרחשוון", want: HebrewAnniversary{3, Cheshvan}},
		{input: "ב30 שבט", want: HebrewAnniversary{30, Shevat}},
		{input: "", wantErr: true},
		{input: "Nisan", wantErr: true},
		{input: "31 Nisan", wantErr: true},
		{input: "0 Nisan", wantErr: true},
		{input: "15 Smarch", wantErr: true},
		{input: "Adar Nisan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseHebrewAnniversary(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDateParse)
				var dateErr *DateError
				require.True(t, errors.As(err, &dateErr))
				assert.Equal(t, tt.input, dateErr.Input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHebrewAnniversaryFormatting(t *testing.T) {
	t.Parallel()

	a := HebrewAnniversary{Day: 15, Month: AdarII}
	assert.Equal(t, "15 Adar II", a.String())
	assert.Equal(t, "ב15 אדר ב", a.HebrewString())

	parsed, err := ParseHebrewAnniversary(a.HebrewString())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)

	assert.Equal(t, "Unknown", HebrewMonth(0).String())
}

func TestNormalizeHebrew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ב15 אדר", NormalizeHebrew("15 אדר"))
	assert.Equal(t, "ב15 אדר", NormalizeHebrew(" ב15 אדר "))
	assert.Equal(t, "15 Adar", NormalizeHebrew("15 Adar"))
	assert.Equal(t, "", NormalizeHebrew("   "))
}

func TestParseGregorianDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    GregorianDate
		wantErr bool
	}{
		{input: "20/03/2024", want: GregorianDate{2024, time.March, 20}},
		{input: "1/2/2020", want: GregorianDate{2020, time.February, 1}},
		{input: "29.02.2024", want: GregorianDate{2024, time.February, 29}},
		{input: "2024-03-20", want: GregorianDate{2024, time.March, 20}},
		{input: " 2024-3-5 ", want: GregorianDate{2024, time.March, 5}},
		{input: "29/02/2023", wantErr: true},
		{input: "32/01/2024", wantErr: true},
		{input: "01/13/2024", wantErr: true},
		{input: "03/20", wantErr: true},
		{input: "yesterday", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseGregorianDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDateParse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGregorianAnniversary(t *testing.T) {
	t.Parallel()

	a, err := ParseGregorianAnniversary("15/03")
	require.NoError(t, err)
	assert.Equal(t, GregorianAnniversary{Month: time.March, Day: 15}, a)
	assert.Equal(t, "15/03", a.String())

	a, err = ParseGregorianAnniversary("29/02")
	require.NoError(t, err)
	assert.Equal(t, GregorianDate{2023, time.February, 28}, a.In(2023))
	assert.Equal(t, GregorianDate{2024, time.February, 29}, a.In(2024))

	a, err = ParseGregorianAnniversary("07/11/1950")
	require.NoError(t, err)
	assert.Equal(t, GregorianAnniversary{Month: time.November, Day: 7}, a)

	_, err = ParseGregorianAnniversary("30/02")
	assert.ErrorIs(t, err, ErrDateParse)
}

func TestNormalizeGregorian(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "05/03/2024", NormalizeGregorian("2024-03-05"))
	assert.Equal(t, "05/03/2024", NormalizeGregorian("5.3.2024"))
	assert.Equal(t, "sometime in spring", NormalizeGregorian("sometime in spring"))
}

func TestGregorianDateText(t *testing.T) {
	t.Parallel()

	d := GregorianDate{2024, time.March, 20}
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "20/03/2024", string(text))

	var decoded GregorianDate
	require.NoError(t, decoded.UnmarshalText([]byte("2024-03-20")))
	assert.Equal(t, d, decoded)
	assert.Error(t, decoded.UnmarshalText([]byte("not a date")))

	assert.True(t, GregorianDate{}.IsZero())
	assert.False(t, d.IsZero())
}
