package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{3500, "3.500,00\u00a0€"},
		{2030, "2.030,00\u00a0€"},
		{0, "0,00\u00a0€"},
		{1120.5, "1.120,50\u00a0€"},
		{728350, "728.350,00\u00a0€"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Currency(tt.value))
	}
}

func TestCurrencyCompact(t *testing.T) {
	assert.Equal(t, "38.500\u00a0€", CurrencyCompact(38500))
	assert.Equal(t, "0\u00a0€", CurrencyCompact(0))
}

func TestNumberAndDistance(t *testing.T) {
	assert.Equal(t, "45.230", Number(45230))
	assert.Equal(t, "27,3", Number(27.3))
	assert.Equal(t, "2.500 km", Distance(2500))
}

func TestApply(t *testing.T) {
	assert.Equal(t, Currency(5800), Apply(CodeCurrency, 5800))
	assert.Equal(t, Distance(5200), Apply(CodeDistance, 5200))
	assert.Equal(t, "28,2", Apply(CodePlain, 28.2))
	assert.Equal(t, "3200", Apply(CodePlain, 3200))
}

func TestDate(t *testing.T) {
	d := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01.04.2025", Date(d))
	assert.Equal(t, "TBD", DateOr(nil, "TBD"))
	assert.Equal(t, "01.04.2025", DateOr(&d, "TBD"))
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.April, 7, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 6, DaysBetween(start, end))
	assert.Equal(t, 6, DaysBetween(end, start))
	assert.Equal(t, 1, DaysBetween(start, start.Add(2*time.Hour)))
	assert.Equal(t, 0, DaysBetween(start, start))
}
