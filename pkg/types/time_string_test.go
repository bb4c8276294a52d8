package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "09:30"},
		{name: "midnight", input: "00:00"},
		{name: "not padded", input: "9:30", wantErr: true},
		{name: "bad hour", input: "25:00", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TimeString(tt.input), got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:15"), got)

	_, err = TimeString("23:30").AddMinutes(45)
	assert.ErrorIs(t, err, ErrTimeOverflow)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("12:00").IsAfter("11:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("14:05:00"))
	assert.Equal(t, TimeString("14:05"), ts)

	require.NoError(t, ts.Scan([]byte("08:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 7, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("07:15"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_On(t *testing.T) {
	at, err := TimeString("12:30").On("2024-03-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), at)
}
