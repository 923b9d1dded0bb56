package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jswitch/internal/config"
	"jswitch/internal/platform"
	"jswitch/internal/theme"
)

func newAddCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "add <path>",
		Short:   "Register a JDK installed outside the standard locations",
		Example: "  jswitch add ~/tools/jdk-21 --name temurin-21",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := platform.ExpandPath(args[0])
			layout := a.ops.Layout()
			if !layout.IsValidJdkRoot(path) {
				return fmt.Errorf("invalid JDK path %s: %s not found", path, layout.LauncherPath(path))
			}
			if a.cfg.HasJdk(path) {
				a.println(theme.WarningStyle.Render("This JDK is already registered."))
				return nil
			}

			version, ok := a.ops.RuntimeVersionAt(path)
			if !ok {
				version = "unknown version"
			}

			if a.interactive {
				confirmed, err := a.confirm(fmt.Sprintf("Add JDK %s?", version), fmt.Sprintf("Path: %s", path))
				if err != nil || !confirmed {
					a.println(theme.WarningStyle.Render("Operation cancelled."))
					return nil
				}
			}

			if err := a.cfg.AddJdk(name, path); err != nil {
				return err
			}
			if err := a.saveConfig(); err != nil {
				return err
			}

			entry, _ := a.cfg.FindJdk(path)
			a.println(theme.SuccessMessage(fmt.Sprintf("Added %s (%s)", entry.Name, version)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (default: directory name)")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [name|path]",
		Short: "Forget a registered JDK",
		Long:  "Forget a registered JDK. Nothing is deleted from disk.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.Jdks) == 0 {
				a.println(theme.WarningStyle.Render("No JDKs are registered."))
				return nil
			}

			var entry config.JdkEntry
			if len(args) == 1 {
				found, ok := a.cfg.FindJdk(args[0])
				if !ok {
					return fmt.Errorf("%s: %w", args[0], config.ErrJdkNotFound)
				}
				entry = found
			} else {
				active, _ := a.ops.ActiveHome()
				selected, err := a.selectJdk(fromEntries(a.cfg.Jdks), active)
				if err != nil {
					if isCancelled(err) {
						a.println(theme.WarningStyle.Render("Selection cancelled."))
						return nil
					}
					return err
				}
				entry, _ = a.cfg.FindJdk(selected.InstallPath)
			}

			if a.interactive {
				confirmed, err := a.confirm(fmt.Sprintf("Remove %s?", entry.Name), fmt.Sprintf("Path: %s", entry.Path))
				if err != nil || !confirmed {
					a.println(theme.WarningStyle.Render("Operation cancelled."))
					return nil
				}
			}

			a.cfg.RemoveJdk(entry.Path)
			if err := a.saveConfig(); err != nil {
				return err
			}
			a.println(theme.SuccessMessage(fmt.Sprintf("Removed %s", entry.Name)))
			return nil
		},
	}
}

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name|path> <new-name>",
		Short: "Change the display name of a registered JDK",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RenameJdk(args[0], args[1]); err != nil {
				if errors.Is(err, config.ErrJdkNotFound) {
					return fmt.Errorf("%w; run 'jswitch list' to see the known JDKs", err)
				}
				return err
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			a.println(theme.SuccessMessage(fmt.Sprintf("Renamed %s to %s", args[0], args[1])))
			return nil
		},
	}
}
