package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09-00", wantErr: true},
		{in: "+1:30", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "12:+5", wantErr: true},
		{in: "1 :30", wantErr: true},
		{in: "", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			assert.True(t, IsValidation(err), "input %q should fail validation", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "09:05", Clock(545).String())
	assert.Equal(t, "00:00", Clock(0).String())
}

func TestWindowContainsBoundariesInclusive(t *testing.T) {
	w, err := NewWindow("09:00", "17:00")
	require.NoError(t, err)

	open, _ := ParseClock("09:00")
	closeAt, _ := ParseClock("17:00")
	before, _ := ParseClock("08:59")
	after, _ := ParseClock("17:01")
	mid, _ := ParseClock("12:30")

	assert.True(t, w.Contains(open), "opening minute is inside")
	assert.True(t, w.Contains(closeAt), "closing minute is inside")
	assert.True(t, w.Contains(mid))
	assert.False(t, w.Contains(before))
	assert.False(t, w.Contains(after))
}

func TestWindowElapsedIsStrict(t *testing.T) {
	w, err := NewWindow("09:00", "17:00")
	require.NoError(t, err)

	closeAt, _ := ParseClock("17:00")
	justAfter, _ := ParseClock("17:01")

	assert.False(t, w.Elapsed(closeAt), "window has not elapsed at the exact closing minute")
	assert.True(t, w.Elapsed(justAfter))
}

func TestNewWindowRejectsMidnightCrossing(t *testing.T) {
	_, err := NewWindow("22:00", "06:00")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
