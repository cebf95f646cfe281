package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-14 ")
	require.NoError(t, err)
	assert.Equal(t, Date("2024-02-14"), d)

	for _, raw := range []string{"", "14/02/2024", "2024-02-30", "tomorrow"} {
		_, err := ParseDate(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := map[string]TimeOfDay{
		"21:18:00":        "21:18:00",
		"07:05":           "07:05:00",
		"23:59:59.250000": "23:59:59",
	}
	for raw, want := range tests {
		got, err := ParseTimeOfDay(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "25:00", "noon", "21h18"} {
		_, err := ParseTimeOfDay(raw)
		assert.Error(t, err, raw)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Date("2024-02-14"), d)

	require.NoError(t, d.Scan([]byte("2024-03-01")))
	assert.Equal(t, Date("2024-03-01"), d)

	require.NoError(t, d.Scan("2024-03-02T00:00:00Z"))
	assert.Equal(t, Date("2024-03-02"), d)

	assert.Error(t, d.Scan(42))
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan([]byte("21:18:00")))
	assert.Equal(t, TimeOfDay("21:18:00"), tod)

	require.NoError(t, tod.Scan("08:30:00.000001"))
	assert.Equal(t, TimeOfDay("08:30:00"), tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 12, 1, 2, 0, time.UTC)))
	assert.Equal(t, TimeOfDay("12:01:02"), tod)

	assert.Error(t, tod.Scan(3.14))
}

func TestDietValid(t *testing.T) {
	assert.True(t, DietIn.Valid())
	assert.True(t, DietOut.Valid())
	assert.False(t, Diet("maybe").Valid())
	assert.False(t, Diet("").Valid())
}

func TestUserSummaryOmitsHash(t *testing.T) {
	u := &User{ID: "u-1", Name: "Ana", Email: "ana@example.com", PasswordHash: "hash"}
	assert.Equal(t, UserSummary{ID: "u-1", Name: "Ana", Email: "ana@example.com"}, u.Summary())
}
