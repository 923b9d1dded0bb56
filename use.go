package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/logging"
	"jswitch/internal/platform"
	"jswitch/internal/theme"
)

const scopeBoth = "both"

func newUseCmd(a *app) *cobra.Command {
	var (
		scope  string
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "use [name|version|path]",
		Short: "Make a JDK the active one",
		Long: `Make a JDK the active one. The argument may be a registered name, a version
such as 17 or 1.8, or the path of a JDK root. Without an argument a picker is
shown.

On Windows JAVA_HOME is set and the JDK's bin directory is put first on Path
at the chosen scope. On Linux the java alternative is switched with
update-alternatives.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return a.runUse(query, scope, dryRun, yes)
		},
	}

	cmd.Flags().StringVar(&scope, "scope", scopeBoth, "where to apply the change: user, machine or both (Windows)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without changing it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *app) runUse(query, scope string, dryRun, yes bool) error {
	logger := logging.GetLogger("cli")

	scopes, err := parseScopes(scope)
	if err != nil {
		return err
	}

	active, _ := a.ops.ActiveHome()
	target, err := a.resolveTarget(query, active)
	if err != nil {
		if isCancelled(err) {
			a.println(theme.WarningStyle.Render("Selection cancelled."))
			return nil
		}
		return err
	}

	layout := a.ops.Layout()
	if !layout.IsValidJdkRoot(target.InstallPath) {
		return fmt.Errorf("%s is not a JDK: %s not found", target.InstallPath, layout.LauncherPath(target.InstallPath))
	}

	if dryRun {
		return a.printPlans(target, scopes)
	}

	if a.selectedEverywhere(target.InstallPath, scopes) {
		a.println(theme.InfoStyle.Render(fmt.Sprintf("Already using %s. No changes needed.", target.Name)))
		return nil
	}

	if !yes && a.interactive {
		confirmed, err := a.confirm(
			fmt.Sprintf("Switch to %s?", target.Name),
			fmt.Sprintf("Path: %s", target.InstallPath),
		)
		if err != nil || !confirmed {
			a.println(theme.WarningStyle.Render("Operation cancelled."))
			return nil
		}
	}

	if a.ops.HasScopes() && containsScope(scopes, env.Machine) && !env.IsAdmin() {
		a.println(theme.Faint.Render("Note: writing machine scope usually requires an elevated terminal."))
	}

	a.println(theme.InfoStyle.Render(fmt.Sprintf("Switching to %s...", target.Name)))
	outcome := a.apply(target.InstallPath, scopes)
	a.printOutcome(outcome)
	if outcome.Status == env.Error {
		logger.Warn().Str("jdk", target.InstallPath).Str("message", outcome.Message).Msg("Switch failed")
		return errReported
	}

	a.ops.Notify()

	state := platform.Active(a.ops)
	a.println()
	a.printf("%s %s\n", theme.LabelStyle.Render("Active:"), theme.PathStyle.Render(valueOr(state.JavaHome, "unknown")))
	if state.RuntimeVersion != "" {
		a.printf("%s %s\n", theme.LabelStyle.Render("Version:"), theme.CurrentStyle.Render(state.RuntimeVersion))
	}
	if a.ops.HasScopes() {
		a.println()
		a.println(theme.Faint.Render("Note: open a new terminal for the change to take effect there."))
	}
	return nil
}

// selectedEverywhere reports whether jdkRoot is already JAVA_HOME at every
// requested scope
func (a *app) selectedEverywhere(jdkRoot string, scopes []env.Scope) bool {
	layout := a.ops.Layout()
	for _, scope := range scopes {
		home, ok := a.ops.HomeAt(scope)
		if !ok || !layout.SamePath(jdkRoot, home) {
			return false
		}
	}
	return true
}

func (a *app) apply(jdkRoot string, scopes []env.Scope) env.Outcome {
	if len(scopes) == 2 {
		return a.ops.SetActiveBothScopes(jdkRoot)
	}
	return a.ops.SetActive(jdkRoot, scopes[0])
}

// resolveTarget turns the use argument into a JDK. An empty query opens the picker.
func (a *app) resolveTarget(query, active string) (java.JdkRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		records := a.records()
		if len(records) == 0 {
			return java.JdkRecord{}, fmt.Errorf("no JDK installations found")
		}
		return a.selectJdk(records, active)
	}

	layout := a.ops.Layout()
	records := a.records()

	if path := platform.ExpandPath(query); layout.IsValidJdkRoot(path) {
		for _, r := range records {
			if layout.SamePath(r.InstallPath, path) {
				return r, nil
			}
		}
		return java.JdkRecord{Name: filepath.Base(path), InstallPath: path}, nil
	}

	if r, ok := matchRecord(records, query, layout); ok {
		return r, nil
	}
	return java.JdkRecord{}, fmt.Errorf("JDK %q not found; run 'jswitch list' to see the known JDKs", query)
}

// matchRecord finds a JDK by exact name, then install path, then version,
// then by a name containing the query.
func matchRecord(records []java.JdkRecord, query string, layout java.Layout) (java.JdkRecord, bool) {
	for _, r := range records {
		if strings.EqualFold(r.Name, query) {
			return r, true
		}
	}
	for _, r := range records {
		if layout.SamePath(r.InstallPath, query) {
			return r, true
		}
	}

	if want := java.SortKey(query); !want.IsZero() && isVersionQuery(query) {
		for _, r := range records {
			if versionMatches(java.SortKey(r.Name), want) {
				return r, true
			}
		}
	}

	lower := strings.ToLower(query)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), lower) {
			return r, true
		}
	}
	return java.JdkRecord{}, false
}

func isVersionQuery(q string) bool {
	return strings.Trim(q, "0123456789.") == ""
}

// versionMatches compares a JDK's key with a requested version. A bare major
// below 9 also matches the legacy 1.x naming, so 8 finds jdk1.8.0_321.
func versionMatches(have, want java.VersionKey) bool {
	if want.Minor == 0 {
		if have.Major == want.Major {
			return true
		}
		return want.Major < 9 && have.Major == 1 && have.Minor == want.Major
	}
	return have == want
}

func parseScopes(s string) ([]env.Scope, error) {
	if strings.EqualFold(strings.TrimSpace(s), scopeBoth) {
		return []env.Scope{env.User, env.Machine}, nil
	}
	scope, err := env.ParseScope(s)
	if err != nil {
		return nil, err
	}
	return []env.Scope{scope}, nil
}

func containsScope(scopes []env.Scope, s env.Scope) bool {
	for _, sc := range scopes {
		if sc == s {
			return true
		}
	}
	return false
}

// printPlans shows, per scope, the search path change as a unified diff,
// or the command that would run on platforms without scopes.
func (a *app) printPlans(target java.JdkRecord, scopes []env.Scope) error {
	if !a.ops.HasScopes() {
		scopes = scopes[len(scopes)-1:]
	}

	a.println(theme.Title.Render(fmt.Sprintf("Dry run: switch to %s", target.Name)))
	for _, scope := range scopes {
		plan, err := a.ops.Plan(target.InstallPath, scope)
		if err != nil {
			return fmt.Errorf("plan %s scope: %w", scope, err)
		}

		a.println()
		if a.ops.HasScopes() {
			a.println(theme.Subtitle.Render(fmt.Sprintf("%s scope", scope)))
			a.printf("%s %s → %s\n", theme.LabelStyle.Render("JAVA_HOME:"), valueOr(plan.OldHome, "(unset)"), target.InstallPath)
		} else {
			a.printf("%s %s\n", theme.LabelStyle.Render("Current:"), valueOr(plan.OldHome, "(none)"))
		}

		if len(plan.Command) > 0 {
			a.printf("%s %s\n", theme.LabelStyle.Render("Would run:"), theme.CommandStyle.Render(strings.Join(plan.Command, " ")))
			continue
		}
		a.println(renderDiff(plan))
	}
	return nil
}

// renderDiff formats the Path change of a plan as a colored unified diff
func renderDiff(plan platform.Plan) string {
	diff := strings.TrimSpace(udiff.Unified(
		fmt.Sprintf("Path (%s, current)", plan.Scope),
		fmt.Sprintf("Path (%s, after switch)", plan.Scope),
		plan.Before,
		plan.After,
	))
	if diff == "" {
		return theme.Faint.Render("Path unchanged")
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = theme.Bold.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = theme.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = theme.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = theme.DiffRemove.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
