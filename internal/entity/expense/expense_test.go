package expense

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseDate_ShouldAcceptDayMonthYear(t *testing.T) {
	for _, in := range []string{"05.03.2024", "5.3.2024"} {
		d, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), d)
	}
}

func Test_ParseDate_ShouldRejectGarbage(t *testing.T) {
	for _, in := range []string{"not-a-date", "2024-03-05", "31.02.2024", "15/03/2024", ""} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
	}
}

func Test_NormalizeDate_ShouldDropTimeAndZone(t *testing.T) {
	kyiv := time.FixedZone("EET", 2*60*60)

	d := NormalizeDate(time.Date(2024, time.March, 5, 23, 30, 0, 0, kyiv))

	assert.Equal(t, "2024-03-05", d.Format(ISODateLayout))
	assert.Equal(t, time.UTC, d.Location())
	assert.Zero(t, d.Hour())
}

func Test_Range_ShouldBeInclusive(t *testing.T) {
	from, _ := ParseDate("01.01.2024")
	to, _ := ParseDate("31.01.2024")
	r := Range{From: from, To: to}

	assert.True(t, r.Contains(from))
	assert.True(t, r.Contains(to))
	assert.False(t, r.Contains(to.AddDate(0, 0, 1)))
	assert.True(t, Range{}.Contains(to))
}

func Test_NameLength_ShouldCountRunes(t *testing.T) {
	assert.Equal(t, 4, NameLength("кава"))
}

func Test_CheckAmount(t *testing.T) {
	cases := []struct {
		in  string
		err error
	}{
		{"50", nil},
		{"10.17", nil},
		{"999999999999.99", nil},
		{"0", ErrAmountNotPositive},
		{"-1", ErrAmountNotPositive},
		{"10.165", ErrAmountPrecision},
		{"1e-99999999", ErrAmountPrecision},
		{"1000000000000", ErrAmountTooLarge},
		{"1e99999999", ErrAmountTooLarge},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.err, CheckAmount(decimal.RequireFromString(c.in)))
		})
	}
}
