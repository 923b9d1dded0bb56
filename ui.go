package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"jswitch/internal/config"
	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/logging"
	"jswitch/internal/theme"
)

// nameColumn is the width names are padded to in listings
const nameColumn = 24

// errNoTerminal is returned by prompts when nobody can answer them
var errNoTerminal = errors.New("not running in a terminal; pass the value as an argument")

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// isCancelled reports whether a prompt was aborted by the user
func isCancelled(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

// scan runs the detector, behind a spinner when attached to a terminal
func (a *app) scan(extraRoot string) []java.JdkRecord {
	detector := java.NewDetector(a.ops).WithSearchPaths(a.cfg.SearchPaths...)

	var found []java.JdkRecord
	run := func() { found = detector.Scan(extraRoot) }

	if !a.interactive {
		run()
		return found
	}
	if err := java.WithScanner("Scanning for JDKs...", run); err != nil {
		logger := logging.GetLogger("cli")
		logger.Debug().Err(err).Msg("Spinner failed")
	}
	return found
}

// records returns the persisted JDK list. An empty list is filled by a scan
// and the result is saved.
func (a *app) records() []java.JdkRecord {
	if len(a.cfg.Jdks) > 0 {
		return fromEntries(a.cfg.Jdks)
	}

	found := a.scan("")
	if len(found) == 0 {
		return nil
	}
	a.cfg.SetJdks(toEntries(found))
	if err := a.cfg.Save(); err != nil {
		logger := logging.GetLogger("cli")
		logger.Warn().Err(err).Msg("Failed to save scanned JDKs")
	}
	return found
}

func fromEntries(entries []config.JdkEntry) []java.JdkRecord {
	records := make([]java.JdkRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, java.JdkRecord{Name: e.Name, InstallPath: e.Path})
	}
	return records
}

func toEntries(records []java.JdkRecord) []config.JdkEntry {
	entries := make([]config.JdkEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, config.JdkEntry{Name: r.Name, Path: r.InstallPath})
	}
	return entries
}

// recordLine renders one JDK for listings and pickers
func recordLine(r java.JdkRecord, isActive bool, version string) string {
	marker := "  "
	name := r.Name
	if isActive {
		marker = "→ "
		name = theme.CurrentStyle.Render(r.Name)
	}

	pad := 0
	if w := lipgloss.Width(name); w < nameColumn {
		pad = nameColumn - w
	}

	line := fmt.Sprintf("%s%s%s %s", marker, name, strings.Repeat(" ", pad), r.InstallPath)
	if version != "" {
		line += " " + theme.Faint.Render("("+version+")")
	}
	return line
}

// promptJdk shows an interactive selector with the active JDK first
func (a *app) promptJdk(records []java.JdkRecord, active string) (java.JdkRecord, error) {
	if !a.interactive {
		return java.JdkRecord{}, errNoTerminal
	}

	layout := a.ops.Layout()
	ordered := make([]java.JdkRecord, 0, len(records))
	for _, r := range records {
		if layout.SamePath(r.InstallPath, active) {
			ordered = append(ordered, r)
		}
	}
	for _, r := range records {
		if !layout.SamePath(r.InstallPath, active) {
			ordered = append(ordered, r)
		}
	}

	options := make([]huh.Option[int], len(ordered))
	for i, r := range ordered {
		isActive := layout.SamePath(r.InstallPath, active)
		label := recordLine(r, isActive, "")
		if isActive {
			label += " " + theme.Faint.Render("[current]")
		}
		options[i] = huh.NewOption(label, i)
	}

	var selected int
	err := huh.NewSelect[int]().
		Title(theme.Subtitle.Render("Select JDK")).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&selected).
		Run()
	if err != nil {
		return java.JdkRecord{}, err
	}
	return ordered[selected], nil
}

func promptPath(title string, paths []string) (string, error) {
	if !stdoutIsTerminal() {
		return "", errNoTerminal
	}

	options := make([]huh.Option[string], len(paths))
	for i, p := range paths {
		options[i] = huh.NewOption(p, p)
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(theme.Subtitle.Render(title)).
		Options(options...).
		Value(&selected).
		Run()
	return selected, err
}

func confirmAction(title, description string) (bool, error) {
	var confirmed bool

	err := huh.NewConfirm().
		Title(theme.Subtitle.Render(title)).
		Description(theme.Faint.Render(description)).
		Affirmative(theme.SuccessStyle.Render("Yes")).
		Negative(theme.ErrorStyle.Render("No")).
		Value(&confirmed).
		Run()

	return confirmed, err
}

// printOutcome prints every log line of an environment change
func (a *app) printOutcome(o env.Outcome) {
	lines := o.Log
	if len(lines) == 0 {
		lines = []string{o.Message}
	}
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "Successfully"):
			a.println(theme.SuccessMessage(line))
		case strings.HasPrefix(line, "Warning"):
			a.println(theme.WarningMessage(line))
		case strings.HasPrefix(line, "Error"):
			a.println(theme.ErrorMessage(line))
		default:
			a.println(outcomeStyle(o.Status)(line))
		}
	}
}

func outcomeStyle(s env.Status) func(string) string {
	switch s {
	case env.Success:
		return theme.SuccessMessage
	case env.Warning:
		return theme.WarningMessage
	default:
		return theme.ErrorMessage
	}
}
