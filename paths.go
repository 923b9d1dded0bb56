package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jswitch/internal/java"
	"jswitch/internal/platform"
	"jswitch/internal/theme"
)

func newAddPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "add-path <dir>",
		Short:   "Add a directory whose subdirectories are scanned for JDKs",
		Example: "  jswitch add-path ~/jdks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := platform.ExpandPath(args[0])

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("directory does not exist: %s", path)
			}
			if !info.IsDir() {
				return fmt.Errorf("not a directory: %s", path)
			}

			if !a.cfg.AddSearchPath(path) {
				a.println(theme.WarningStyle.Render("This path is already in the search paths list."))
				return nil
			}
			if err := a.saveConfig(); err != nil {
				return err
			}

			a.println(theme.SuccessMessage(fmt.Sprintf("Added search path: %s", path)))

			found := java.NewDetector(a.ops).Scan(path)
			a.println(theme.Faint.Render(fmt.Sprintf("  %d JDKs visible there; run 'jswitch scan --save' to register them", countUnder(found, path, a.ops.Layout()))))
			return nil
		},
	}
}

func newRemovePathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-path [dir]",
		Short: "Remove a directory from the search paths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.SearchPaths) == 0 {
				a.println(theme.WarningStyle.Render("No custom search paths configured."))
				return nil
			}

			var path string
			if len(args) == 1 {
				path = platform.ExpandPath(args[0])
			} else {
				if !a.interactive {
					return errNoTerminal
				}
				selected, err := a.selectPath("Select search path to remove", a.cfg.SearchPaths)
				if err != nil {
					if isCancelled(err) {
						a.println(theme.WarningStyle.Render("Selection cancelled."))
						return nil
					}
					return err
				}
				path = selected
			}

			if !a.cfg.RemoveSearchPath(path) {
				return fmt.Errorf("not a configured search path: %s", path)
			}
			if err := a.saveConfig(); err != nil {
				return err
			}
			a.println(theme.SuccessMessage(fmt.Sprintf("Removed search path: %s", path)))
			return nil
		},
	}
}

func newListPathsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-paths",
		Short: "Show every location searched for JDKs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.println(theme.Title.Render("Search Locations"))
			a.println()

			a.println(theme.Subtitle.Render("Built in"))
			for _, root := range a.ops.CandidateRoots("") {
				a.printf("  %s %s\n", theme.PathStyle.Render(root.Path), theme.Faint.Render("("+rootModeLabel(root.Mode)+")"))
			}
			a.println()

			a.println(theme.Subtitle.Render("Custom"))
			if len(a.cfg.SearchPaths) == 0 {
				a.println(theme.Faint.Render("  none; add one with 'jswitch add-path <dir>'"))
			}
			for _, p := range a.cfg.SearchPaths {
				status := theme.SuccessStyle.Render("✓")
				if _, err := os.Stat(p); err != nil {
					status = theme.ErrorStyle.Render("✗ missing")
				}
				a.printf("  %s %s\n", theme.PathStyle.Render(p), status)
			}
			a.println()

			a.println(theme.Subtitle.Render("Registered JDKs"))
			a.printf("  %d %s\n", len(a.cfg.Jdks), theme.Faint.Render("(see 'jswitch list')"))
			return nil
		},
	}
}

func rootModeLabel(m java.RootMode) string {
	switch m {
	case java.Exact:
		return "JAVA_HOME"
	case java.Children:
		return "subfolders"
	case java.ChildrenAndSelf:
		return "folder and subfolders"
	case java.Bundles:
		return "bundles"
	default:
		return "unknown"
	}
}

// countUnder counts the records that are dir or one of its children
func countUnder(records []java.JdkRecord, dir string, layout java.Layout) int {
	n := 0
	for _, r := range records {
		if layout.SamePath(r.InstallPath, dir) || layout.SamePath(filepath.Dir(r.InstallPath), dir) {
			n++
		}
	}
	return n
}
