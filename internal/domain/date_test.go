package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2024, 1, 2, 3, 30, 0, 0, time.UTC)

	assert.Equal(t, NewDate(2024, time.January, 2), DateOf(instant, time.UTC))
	// 03:30 UTC is 22:30 the previous evening in New York
	assert.Equal(t, NewDate(2024, time.January, 1), DateOf(instant, newYork))
}

func TestDateAddDays(t *testing.T) {
	t.Run("crosses month boundary", func(t *testing.T) {
		assert.Equal(t, NewDate(2024, time.February, 2), NewDate(2024, time.January, 31).AddDays(2))
	})

	t.Run("negative crosses year boundary", func(t *testing.T) {
		assert.Equal(t, NewDate(2023, time.December, 29), NewDate(2024, time.January, 3).AddDays(-5))
	})

	t.Run("leap day", func(t *testing.T) {
		assert.Equal(t, NewDate(2024, time.February, 29), NewDate(2024, time.February, 28).AddDays(1))
	})

	t.Run("spans a DST transition unchanged", func(t *testing.T) {
		// US spring-forward happened on 2024-03-10
		assert.Equal(t, NewDate(2024, time.March, 12), NewDate(2024, time.March, 8).AddDays(4))
	})
}

func TestDateBefore(t *testing.T) {
	assert.True(t, NewDate(2023, time.December, 31).Before(NewDate(2024, time.January, 1)))
	assert.False(t, NewDate(2024, time.January, 1).Before(NewDate(2024, time.January, 1)))
	assert.False(t, NewDate(2024, time.February, 1).Before(NewDate(2024, time.January, 15)))
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, d, parsed)

	assert.Error(t, json.Unmarshal([]byte(`"05-03-2024"`), &parsed))
}

func TestTimeOfDayFromOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"zero", 0, "00:00:00"},
		{"positive", 7*time.Hour + 30*time.Minute, "07:30:00"},
		{"negative wraps to evening", -30 * time.Minute, "23:30:00"},
		{"exactly a day", 24 * time.Hour, "00:00:00"},
		{"more than a day", 25 * time.Hour, "01:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeOfDayFromOffset(tt.offset).String())
		})
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	tod := TimeOfDayFromOffset(6*time.Hour + 5*time.Minute + 4*time.Second)

	data, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"06:05:04"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, tod, parsed)
}
