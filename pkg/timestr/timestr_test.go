package timestr

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"09:00", "09:00", false},
		{"00:00", "00:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"09:60", "", true},
		{"9:00", "", true},
		{"0900", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidTimeOfDay, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestFromMinutesClamps(t *testing.T) {
	assert.Equal(t, "00:00", FromMinutes(-10).String())
	assert.Equal(t, "23:59", FromMinutes(2000).String())
	assert.Equal(t, "08:30", FromMinutes(510).String())
}

func TestAddMinutesSaturates(t *testing.T) {
	start := MustParse("23:30")
	assert.Equal(t, "23:59", start.AddMinutes(60).String())
	assert.Equal(t, "23:45", start.AddMinutes(15).String())
}

func TestComparisons(t *testing.T) {
	a := MustParse("09:00")
	b := MustParse("09:30")

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParse("09:00")))
}

func TestOverlapsHalfOpen(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint", "09:00", "10:00", "11:00", "12:00", false},
		{"touching boundaries do not overlap", "09:00", "10:00", "10:00", "11:00", false},
		{"partial overlap", "09:00", "10:00", "09:30", "10:30", true},
		{"containment", "09:00", "12:00", "10:00", "11:00", true},
		{"identical", "09:00", "10:00", "09:00", "10:00", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlaps(MustParse(tt.aStart), MustParse(tt.aEnd), MustParse(tt.bStart), MustParse(tt.bEnd))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	original := MustParse("14:45")
	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Equal(t, `"14:45"`, string(data))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded))
}

func TestScanDropsSeconds(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("08:15:00"))
	assert.Equal(t, "08:15", tod.String())

	require.NoError(t, tod.Scan([]byte("17:30")))
	assert.Equal(t, "17:30", tod.String())
}
