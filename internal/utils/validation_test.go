package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResult(t *testing.T) {
	assert.NoError(t, ValidateResult(0))
	assert.NoError(t, ValidateResult(99))
	assert.Error(t, ValidateResult(-1))
	assert.Error(t, ValidateResult(100))
}

func TestParseResult(t *testing.T) {
	v, err := ParseResult(" 45 ")
	require.NoError(t, err)
	assert.Equal(t, 45, v)

	_, err = ParseResult("abc")
	assert.Error(t, err)
	_, err = ParseResult("101")
	assert.Error(t, err)
}

func TestParseResultDate(t *testing.T) {
	d, err := ParseResultDate("25/12/2024")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseResultDate("25-12-2024")
	require.NoError(t, err)
	assert.Equal(t, 25, d.Day())

	// Leap day accepted
	_, err = ParseResultDate("29/02/2024")
	assert.NoError(t, err)
}

func TestParseResultDateRejectsImpossibleDates(t *testing.T) {
	for _, input := range []string{"30/02/2024", "31/04/2024", "29/02/2023", "00/01/2024", "2024/12/25", "garbage"} {
		_, err := ParseResultDate(input)
		assert.Error(t, err, "expected %q to be rejected", input)
	}
}

func TestNormalizeScheduledTime(t *testing.T) {
	cases := map[string]string{
		"14:30":    "14:30",
		"2:30 PM":  "14:30",
		"2:30pm":   "14:30",
		"09:15 AM": "09:15",
		"12:00 AM": "00:00",
	}
	for input, want := range cases {
		got, err := NormalizeScheduledTime(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := NormalizeScheduledTime("25:99")
	assert.Error(t, err)
}

func TestUsernameSlug(t *testing.T) {
	assert.Equal(t, "johndoe1", UsernameSlug("John.Doe+1@example.com"))
	assert.Equal(t, "admin", UsernameSlug("admin@site.in"))
	assert.Equal(t, "", UsernameSlug("___@x.com"))
}

func TestDateOnly(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC is already the next day in Kolkata
	ts := time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)
	d := DateOnly(ts, loc)
	assert.Equal(t, 2, d.Day())
	assert.Equal(t, 0, d.Hour())
}
