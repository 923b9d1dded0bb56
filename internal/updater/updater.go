package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creativeprojects/go-selfupdate"

	"jswitch/internal/config"
	"jswitch/internal/logging"
)

const (
	// CheckInterval is minimum time between background update checks
	CheckInterval = 24 * time.Hour

	// UpdateTimeout is maximum time for update operations
	UpdateTimeout = 5 * time.Minute

	// DevVersion is the version string of unreleased builds
	DevVersion = "dev"
)

// ErrNoRepository is returned when the binary was built without a release source
var ErrNoRepository = errors.New("no release repository configured for this build")

// Updater checks GitHub releases and replaces the running binary
type Updater struct {
	config         *config.Config
	repository     string
	currentVersion string
	selfUpdater    *selfupdate.Updater
}

// NewUpdater creates an Updater for owner/name releases
func NewUpdater(cfg *config.Config, version, repository string) (*Updater, error) {
	if strings.TrimSpace(repository) == "" {
		return nil, ErrNoRepository
	}

	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{
			UniqueFilename: "SHA256SUMS.txt",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create updater: %w", err)
	}

	return &Updater{
		config:         cfg,
		repository:     repository,
		currentVersion: cleanVersion(version),
		selfUpdater:    su,
	}, nil
}

// CurrentVersion returns the running version without a v prefix
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// ShouldCheckForUpdate reports whether a background check is due
func (u *Updater) ShouldCheckForUpdate() bool {
	return shouldCheck(u.config.Update, u.currentVersion, time.Now())
}

func shouldCheck(cfg config.UpdateConfig, version string, now time.Time) bool {
	if !cfg.Enabled || !cfg.AutoCheck || version == DevVersion {
		return false
	}
	return now.Sub(cfg.LastCheck) >= CheckInterval
}

// CheckForUpdate queries GitHub for the latest release.
// Returns nil when up to date or when the user skipped that version.
func (u *Updater) CheckForUpdate(ctx context.Context) (*selfupdate.Release, error) {
	logger := logging.GetLogger("updater")

	latest, found, err := u.selfUpdater.DetectLatest(ctx, selfupdate.ParseSlug(u.repository))
	if err != nil {
		return nil, fmt.Errorf("check for updates: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no releases found for %s", u.repository)
	}

	u.config.Update.LastCheck = time.Now()
	if err := u.config.Save(); err != nil {
		logger.Warn().Err(err).Msg("Failed to record update check time")
	}

	if latest.LessOrEqual(u.currentVersion) {
		return nil, nil
	}
	if u.config.Update.SkipVersion == latest.Version() {
		logger.Debug().Str("version", latest.Version()).Msg("Skipped version")
		return nil, nil
	}

	return latest, nil
}

// PerformUpdate downloads and installs release, restoring a backup on failure
func (u *Updater) PerformUpdate(ctx context.Context, release *selfupdate.Release) error {
	logger := logging.GetLogger("updater")

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return fmt.Errorf("create backup: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		if rollbackErr := os.Rename(backup, exe); rollbackErr != nil {
			return fmt.Errorf("update failed and rollback failed: update error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("update failed (rolled back): %w", err)
	}

	if err := os.Remove(backup); err != nil {
		logger.Debug().Err(err).Str("backup", backup).Msg("Backup left in place")
	}
	logger.Info().Str("version", release.Version()).Msg("Binary updated")
	return nil
}

// SkipVersion marks a version as skipped by the user
func (u *Updater) SkipVersion(version string) error {
	u.config.Update.SkipVersion = version
	return u.config.Save()
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0755)
}

// cleanVersion removes 'v' prefix if present for consistent comparison
func cleanVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
