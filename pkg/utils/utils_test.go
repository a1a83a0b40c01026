package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndParseTimestamp(t *testing.T) {
	ts := time.Date(2024, 2, 29, 23, 59, 59, 5, time.FixedZone("JST", 9*60*60))

	formatted := FormatTimestamp(ts)
	assert.Equal(t, "2024-02-29T14:59:59.000000005Z", formatted)

	parsed, err := ParseTimestamp(formatted)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestFormatTimestamp_Sortable(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := FormatTimestamp(base.Add(900 * time.Millisecond))
	b := FormatTimestamp(base.Add(time.Second))

	assert.Less(t, a, b)
	assert.Len(t, a, len(b))
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-01-01T12:00:00Z", want: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{in: "2024-01-01T21:00:00+09:00", want: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{in: "2024-01-01T12:00:00.123456", want: time.Date(2024, 1, 1, 12, 0, 0, 123456000, time.UTC)},
		{in: "2024-01-01T12:00:00", want: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{in: "2024-01-01", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateStruct(t *testing.T) {
	type request struct {
		Title string `json:"title" validate:"required,max=5"`
		Note  string `json:"note" validate:"omitempty,min=2"`
	}

	assert.NoError(t, ValidateStruct(request{Title: "ok"}))

	err := ValidateStruct(request{})
	require.Error(t, err)
	assert.Equal(t, "title is required", err.Error())

	err = ValidateStruct(request{Title: "too long", Note: "x"})
	require.Error(t, err)
	assert.Equal(t, "title must be at most 5 characters; note must be at least 2 characters", err.Error())
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var clock Clock = ClockFunc(func() time.Time { return fixed })
	assert.Equal(t, fixed, clock.Now())
	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}
