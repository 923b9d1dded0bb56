package updater

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jswitch/internal/config"
)

func TestShouldCheck(t *testing.T) {
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	enabled := config.UpdateConfig{Enabled: true, AutoCheck: true}

	tests := []struct {
		name    string
		cfg     config.UpdateConfig
		version string
		want    bool
	}{
		{"never checked", enabled, "1.2.0", true},
		{"dev build", enabled, DevVersion, false},
		{"disabled", config.UpdateConfig{AutoCheck: true}, "1.2.0", false},
		{"auto check off", config.UpdateConfig{Enabled: true}, "1.2.0", false},
		{"checked recently", config.UpdateConfig{Enabled: true, AutoCheck: true, LastCheck: now.Add(-time.Hour)}, "1.2.0", false},
		{"checked yesterday", config.UpdateConfig{Enabled: true, AutoCheck: true, LastCheck: now.Add(-25 * time.Hour)}, "1.2.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldCheck(tt.cfg, tt.version, now))
		})
	}
}

func TestNewUpdaterRequiresRepository(t *testing.T) {
	_, err := NewUpdater(config.Default(""), "1.0.0", " ")
	assert.ErrorIs(t, err, ErrNoRepository)
}

func TestCleanVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", cleanVersion("v1.2.3"))
	assert.Equal(t, "1.2.3", cleanVersion(" 1.2.3\n"))
	assert.Equal(t, DevVersion, cleanVersion(DevVersion))
}

func TestTruncateChangelog(t *testing.T) {
	assert.Equal(t, "See release notes on GitHub for details.", truncateChangelog("  ", 10))
	assert.Equal(t, "short", truncateChangelog("short", 10))

	long := "first line of notes\n" + strings.Repeat("x", 50)
	assert.Equal(t, "first line of notes...", truncateChangelog(long, 30))

	words := "alpha beta gamma delta epsilon"
	assert.Equal(t, "alpha beta gamma...", truncateChangelog(words, 20))
}
