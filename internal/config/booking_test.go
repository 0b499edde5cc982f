package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBooking_DefaultsWhenNoPath(t *testing.T) {
	b, err := LoadBooking("")
	require.NoError(t, err)

	assert.Equal(t, 7, b.WindowDays)
	assert.Len(t, b.SlotTimes, 15)
	assert.True(t, b.HasSlot("10:00"))
	assert.False(t, b.HasSlot("12:00"))
	assert.Len(t, b.CancelReasons, 4)
}

func TestLoadBooking_FileOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking.yaml")
	content := `
window_days: 14
slot_times: ["10:00", "10:45"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	b, err := LoadBooking(path)
	require.NoError(t, err)

	assert.Equal(t, 14, b.WindowDays)
	assert.Equal(t, []string{"10:00", "10:45"}, b.SlotTimes)
	assert.Equal(t, "America/Argentina/Buenos_Aires", b.Timezone)
	assert.NotEmpty(t, b.CashConcepts.Income)
}

func TestLoadBooking_RejectsBadSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "booking.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`slot_times: ["25:99"]`), 0o600))

	_, err := LoadBooking(path)
	assert.Error(t, err)
}

func TestLoadBooking_MissingFile(t *testing.T) {
	_, err := LoadBooking(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
