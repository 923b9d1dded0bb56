package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/platform"
	"jswitch/internal/theme"
)

// diagnosis collects the findings of doctor
type diagnosis struct {
	issues   []string
	warnings []string
}

func (d *diagnosis) issue(format string, args ...any) {
	d.issues = append(d.issues, fmt.Sprintf(format, args...))
}

func (d *diagnosis) warn(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the Java environment for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.println(theme.Title.Render("jswitch - System Diagnostics"))
			a.println()

			d := a.diagnose(os.Getenv("PATH"), env.IsAdmin())
			a.printSummary(d)
			return nil
		},
	}
}

// diagnose runs every check, printing each as it goes. searchPath is the
// search path of the current process.
func (a *app) diagnose(searchPath string, isAdmin bool) *diagnosis {
	d := &diagnosis{}
	layout := a.ops.Layout()
	state := platform.Active(a.ops)

	a.println(theme.LabelStyle.Render("Checking active JDK..."))
	switch {
	case state.JavaHome == "":
		a.println("  " + theme.ErrorMessage("No active JDK"))
		d.issue("No active JDK; run 'jswitch use'")
	case layout.IsValidJdkRoot(state.JavaHome):
		a.printf("  %s %s\n", theme.SuccessMessage("Active JDK is valid:"), theme.PathStyle.Render(state.JavaHome))
	default:
		a.printf("  %s %s\n", theme.ErrorStyle.Render("✗ Active JDK is invalid:"), theme.PathStyle.Render(state.JavaHome))
		d.issue("Active JDK points to an invalid location: %s", state.JavaHome)
	}
	a.println()

	a.println(theme.LabelStyle.Render("Checking search path..."))
	if state.JavaHome != "" {
		bin := filepath.Join(state.JavaHome, "bin")
		if env.HasEntry(searchPath, bin, string(os.PathListSeparator), layout.FoldCase) {
			a.println("  " + theme.SuccessMessage(bin+" is on the search path"))
		} else if a.ops.HasScopes() {
			a.println("  " + theme.WarningMessage(bin+" is not on this terminal's search path"))
			d.warn("%s is not on this terminal's search path; open a new terminal after switching", bin)
		}
	}
	if state.RuntimeVersion == "" {
		a.println("  " + theme.ErrorMessage("No java launcher runs from the search path"))
		d.issue("java could not be run from the search path")
	} else {
		a.println("  " + theme.SuccessMessage("java runs: version "+state.RuntimeVersion))
		if state.JavaHome != "" {
			if homeVersion, ok := a.ops.RuntimeVersionAt(state.JavaHome); ok && homeVersion != state.RuntimeVersion {
				a.println("  " + theme.WarningMessage(fmt.Sprintf("java on the search path is %s but the active JDK is %s", state.RuntimeVersion, homeVersion)))
				d.warn("java on the search path (%s) is not the active JDK (%s)", state.RuntimeVersion, homeVersion)
			}
		}
	}
	a.println()

	a.println(theme.LabelStyle.Render("Checking JDK installations..."))
	found := a.scan("")
	if len(found) == 0 {
		a.println("  " + theme.WarningMessage("No JDK installations found"))
		d.warn("No JDK installations detected; register one with 'jswitch add <path>'")
	} else {
		a.printf("  %s %d\n", theme.SuccessMessage("Found installations:"), len(found))
		a.println(a.installationsTable(found, state.JavaHome))
	}
	unregistered := 0
	for _, r := range found {
		if !a.cfg.HasJdk(r.InstallPath) {
			unregistered++
		}
	}
	if unregistered > 0 && len(a.cfg.Jdks) > 0 {
		d.warn("%d installed JDKs are not registered; run 'jswitch scan --save'", unregistered)
	}
	a.println()

	a.println(theme.LabelStyle.Render("Checking configuration..."))
	if _, err := os.Stat(a.cfg.Path()); err != nil {
		a.println("  " + theme.WarningMessage("Configuration file does not exist yet (created when needed)"))
	} else {
		a.printf("  %s %s\n", theme.SuccessMessage("Configuration file:"), theme.PathStyle.Render(a.cfg.Path()))
	}
	for _, j := range a.cfg.Jdks {
		if !layout.IsValidJdkRoot(j.Path) {
			a.println("  " + theme.ErrorMessage(fmt.Sprintf("Registered JDK %s is missing: %s", j.Name, j.Path)))
			d.issue("Registered JDK %s no longer exists; run 'jswitch remove %s'", j.Name, j.Name)
		}
	}
	for _, p := range a.cfg.SearchPaths {
		if _, err := os.Stat(p); err != nil {
			a.println("  " + theme.WarningMessage("Search path is missing: "+p))
			d.warn("Search path %s does not exist", p)
		}
	}
	a.println()

	a.println(theme.LabelStyle.Render("Checking privileges..."))
	if isAdmin {
		a.println("  " + theme.SuccessMessage("Running with administrator privileges"))
	} else {
		a.println("  " + theme.WarningMessage("Not running as administrator"))
		if a.ops.HasScopes() {
			d.warn("Administrator privileges are required for 'jswitch use --scope machine'")
		}
	}
	a.println()

	return d
}

func (a *app) installationsTable(records []java.JdkRecord, active string) string {
	layout := a.ops.Layout()

	rows := []string{lipgloss.JoinHorizontal(lipgloss.Left,
		theme.TableHeader.Width(9).Render("Current"),
		theme.TableHeader.Width(nameColumn).Render("Name"),
		theme.TableHeader.Render("Path"),
	)}
	for _, r := range records {
		mark := ""
		name := r.Name
		if layout.SamePath(r.InstallPath, active) {
			mark = theme.SuccessMessage("")
			name = theme.CurrentStyle.Render(name)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
			theme.TableCell.Width(9).Align(lipgloss.Center).Render(mark),
			theme.TableCell.Width(nameColumn).Render(name),
			theme.TableCell.Render(r.InstallPath),
		))
	}
	return theme.Box.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a *app) printSummary(d *diagnosis) {
	a.println(theme.Title.Render("Diagnostics Summary"))
	a.println()

	if len(d.issues) == 0 && len(d.warnings) == 0 {
		a.println(theme.SuccessBox.Render(theme.SuccessMessage("All checks passed!") + "\n\nYour Java environment is properly configured."))
		return
	}

	var b strings.Builder
	if len(d.issues) > 0 {
		b.WriteString(theme.ErrorStyle.Render(fmt.Sprintf("Issues Found: %d", len(d.issues))) + "\n\n")
		for _, issue := range d.issues {
			b.WriteString(theme.ErrorMessage(issue) + "\n")
		}
	}
	if len(d.warnings) > 0 {
		if len(d.issues) > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.WarningStyle.Render(fmt.Sprintf("Warnings: %d", len(d.warnings))) + "\n\n")
		for _, w := range d.warnings {
			b.WriteString(theme.WarningMessage(w) + "\n")
		}
	}
	a.println(theme.Box.Render(strings.TrimRight(b.String(), "\n")))
}
