package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "midnight", input: "00:00", want: 0, wantOK: true},
		{name: "morning", input: "09:30", want: 570, wantOK: true},
		{name: "unpadded hour", input: "9:30", want: 570, wantOK: true},
		{name: "last minute", input: "23:59", want: 1439, wantOK: true},
		{name: "with seconds", input: "18:00:00", want: 1080, wantOK: true},
		{name: "surrounding spaces", input: " 10:00 ", want: 600, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "abc", wantOK: false},
		{name: "hour out of range", input: "24:00", wantOK: false},
		{name: "minute out of range", input: "10:60", wantOK: false},
		{name: "single digit minute", input: "10:5", wantOK: false},
		{name: "negative", input: "-1:00", wantOK: false},
		{name: "too many parts", input: "10:00:00:00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToMinutes(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNewTimeStringFromString_Canonicalises(t *testing.T) {
	ts, err := NewTimeStringFromString("9:05")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(17 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), ts)

	_, err = FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").Equal("9:00"))
	assert.False(t, TimeString("09:00").Equal("09:01"))
	assert.False(t, TimeString("bad").Equal("bad"))

	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:59"))
	assert.False(t, TimeString("").IsAfter("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:00").AddMinutes(8 * 60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), ts)

	_, err = TimeString("20:00").AddMinutes(8 * 60)
	assert.ErrorIs(t, err, ErrTimeOverflow)

	_, err = TimeString("").AddMinutes(10)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_ScanAndValue(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("18:30:00"))
	assert.Equal(t, TimeString("18:30"), ts)

	require.NoError(t, ts.Scan([]byte("7:15")))
	assert.Equal(t, TimeString("07:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 13, 45, 10, 0, time.UTC)))
	assert.Equal(t, TimeString("13:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))

	v, err := TimeString("9:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
