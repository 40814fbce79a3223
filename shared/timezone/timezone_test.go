package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowAndLocation(t *testing.T) {
	assert.False(t, timezone.Now().IsZero())
	assert.NotNil(t, timezone.GetLocation())
}

func TestFormat(t *testing.T) {
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.NotEmpty(t, timezone.Format(testTime, "2006-01-02 15:04:05 MST"))
}

func TestParseFirst(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
		wantDay int
	}{
		{name: "rfc3339 timestamp", value: "2024-01-04T10:00:00Z", wantDay: 4},
		{name: "plain day", value: "2024-01-05", wantDay: 5},
		{name: "garbage", value: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := timezone.ParseFirst(tt.value, time.RFC3339, "2006-01-02")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDay, parsed.Day())
		})
	}
}

func TestParseFirst_NoLayouts(t *testing.T) {
	_, err := timezone.ParseFirst("2024-01-01")

	assert.Error(t, err)
}
