package compare

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) time.Time {
	return now.Add(-d)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		expression string
		timestamp  time.Time
		expected   bool
	}{
		{"10", ago(10 * day), true},
		{"10", ago(10*day + time.Hour), true},
		{"10", ago(9 * day), false},
		{"10 days", ago(10 * day), true},
		{">2 days", ago(10 * day), true},
		{">2 days", ago(3 * day), true},
		{">2 days", ago(2 * day), false},
		{"<10 days", ago(9 * day), true},
		{"<10 days", ago(0), true},
		{"<10 days", ago(10 * day), false},
		{">=2d", ago(2 * day), true},
		{"<=2d", ago(2*day + time.Minute), true},
		{">8h", ago(9 * time.Hour), true},
		{">8h", ago(2 * time.Hour), false},
		{"<3h", ago(2 * time.Hour), true},
		{"<3h", ago(10 * time.Hour), false},
		{"=1h", ago(time.Hour), true},
		{"=1h", ago(0), false},
		{"=1h", ago(2 * time.Hour), false},
		{"< 10 minutes", ago(5 * time.Minute), true},
		{"> 1 week", ago(15 * day), true},
		{"< 1 day", now.Add(time.Hour), true},
	}
	for _, tt := range tests {
		matches, err := ParseDate(tt.expression, now)
		require.NoError(t, err, "expression: %s", tt.expression)
		assert.Equal(t, tt.expected, matches(tt.timestamp), "expression: %s, timestamp: %v", tt.expression, tt.timestamp)
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, expression := range []string{"< 2 fortnights", "two days", "<<2"} {
		_, err := ParseDate(expression, now)
		assert.Error(t, err, "expression: %s", expression)
	}
}

func TestMustParseDate(t *testing.T) {
	recent := MustParseDate("<2h", now)
	assert.True(t, recent(ago(time.Hour)))
	assert.False(t, recent(ago(3*time.Hour)))
	assert.Panics(t, func() { MustParseDate("< 2 fortnights", now) })
}

func TestAgeRoundsDown(t *testing.T) {
	assert.Equal(t, int64(0), age(59*time.Minute, time.Hour))
	assert.Equal(t, int64(1), age(time.Hour, time.Hour))
	assert.Equal(t, int64(-1), age(-time.Minute, time.Hour))
	assert.Equal(t, int64(-1), age(-time.Hour, time.Hour))
}
