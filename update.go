package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"jswitch/internal/logging"
	"jswitch/internal/theme"
	"jswitch/internal/updater"
)

// backgroundCheckTimeout bounds the update check run after other commands
const backgroundCheckTimeout = 5 * time.Second

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check for and install a newer jswitch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.Update.Enabled {
				a.println(theme.WarningStyle.Render("Updates are disabled in configuration."))
				a.println(theme.Faint.Render(fmt.Sprintf("To enable, set enabled = true under [update] in %s", a.cfg.Path())))
				return nil
			}

			upd, err := updater.NewUpdater(a.cfg, Version, Repository)
			if err != nil {
				if errors.Is(err, updater.ErrNoRepository) {
					a.println(theme.WarningStyle.Render("This build has no release source; update with the tool you installed it with."))
					return nil
				}
				return fmt.Errorf("initialize updater: %w", err)
			}

			a.println(theme.InfoStyle.Render("Checking for updates..."))

			ctx, cancel := context.WithTimeout(cmd.Context(), updater.UpdateTimeout)
			defer cancel()

			release, err := upd.CheckForUpdate(ctx)
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if release == nil {
				updater.ShowAlreadyUpToDate(upd.CurrentVersion())
				return nil
			}

			if !a.interactive {
				updater.ShowUpdateNotification(upd.CurrentVersion(), release.Version())
				return nil
			}

			action, err := upd.PromptForUpdate(release)
			if err != nil {
				a.println(theme.WarningStyle.Render("Update cancelled."))
				return nil
			}
			switch action {
			case updater.ActionSkip:
				a.println(theme.InfoMessage(fmt.Sprintf("Skipped version %s", release.Version())))
				return nil
			case updater.ActionLater:
				a.println(theme.InfoMessage("Update postponed"))
				return nil
			}

			a.println(theme.InfoStyle.Render(fmt.Sprintf("Downloading jswitch %s...", release.Version())))
			if err := upd.PerformUpdate(ctx, release); err != nil {
				return fmt.Errorf("update failed: %w", err)
			}

			updater.ShowUpdateSuccess(release.Version())
			return nil
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.printf("%s %s %s\n",
				theme.Subtitle.Render("jswitch"),
				theme.Faint.Render("version"),
				theme.HighlightText(Version))
			a.printf("%s %s\n", theme.Faint.Render("platform:"), a.ops.Name())
			if Repository != "" {
				a.println(theme.Faint.Render("https://github.com/" + Repository))
			}
		},
	}
}

// checkForUpdateBackground prints a hint when a newer release exists.
// It only runs in a terminal and at most once per check interval.
func (a *app) checkForUpdateBackground() {
	if !a.interactive || Repository == "" || a.cfg == nil {
		return
	}

	upd, err := updater.NewUpdater(a.cfg, Version, Repository)
	if err != nil || !upd.ShouldCheckForUpdate() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), backgroundCheckTimeout)
	defer cancel()

	release, err := upd.CheckForUpdate(ctx)
	if err != nil {
		logger := logging.GetLogger("updater")
		logger.Debug().Err(err).Msg("Background update check failed")
		return
	}
	if release != nil {
		updater.ShowUpdateNotification(upd.CurrentVersion(), release.Version())
	}
}
