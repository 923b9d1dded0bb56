package env

import (
	"fmt"
	"strings"

	"jswitch/internal/logging"
)

// Status classifies the result of an environment change
type Status int

const (
	Success Status = iota
	Warning
	Error
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Outcome reports an environment change. Failures are reported here
// instead of being returned as errors.
type Outcome struct {
	Status  Status
	Scope   Scope
	Message string
	Log     []string
}

// OK reports whether the change was applied and verified
func (o Outcome) OK() bool {
	return o.Status == Success
}

func (o Outcome) String() string {
	return strings.Join(o.Log, "\n")
}

func newOutcome(status Status, scope Scope, format string, args ...any) Outcome {
	msg := fmt.Sprintf(format, args...)
	return Outcome{Status: status, Scope: scope, Message: msg, Log: []string{msg}}
}

// PathChange is the rewrite SetActive would perform at one scope
type PathChange struct {
	Scope   Scope
	OldHome string
	NewHome string
	Before  string
	After   string
}

// Switcher points JAVA_HOME and Path at a JDK using a scoped Store.
// This is the Windows model: both variables live in the registry per scope.
// Concurrent SetActive calls for the same scope race; the last write wins.
type Switcher struct {
	store Store
}

// NewSwitcher creates a Switcher writing to store
func NewSwitcher(store Store) *Switcher {
	return &Switcher{store: store}
}

// BinDir returns the Path entry for a JDK root
func (s *Switcher) BinDir(jdkRoot string) string {
	return windowsBinDir(jdkRoot)
}

// Plan computes the Path rewrite for jdkRoot at scope without writing anything
func (s *Switcher) Plan(jdkRoot string, scope Scope) (PathChange, error) {
	oldHome, err := lookup(s.store, scope, JavaHomeVar)
	if err != nil {
		return PathChange{}, fmt.Errorf("read %s %s: %w", scope, JavaHomeVar, err)
	}
	current, err := lookup(s.store, scope, PathVar)
	if err != nil {
		return PathChange{}, fmt.Errorf("read %s %s: %w", scope, PathVar, err)
	}

	return PathChange{
		Scope:   scope,
		OldHome: oldHome,
		NewHome: jdkRoot,
		Before:  current,
		After:   RebuildPath(current, oldHome, s.BinDir(jdkRoot), WindowsListSeparator, true),
	}, nil
}

// SetActive makes jdkRoot the JAVA_HOME at scope and puts its bin first on Path,
// dropping entries that pointed at the previous JAVA_HOME.
func (s *Switcher) SetActive(jdkRoot string, scope Scope) Outcome {
	logger := logging.GetLogger("switcher")

	change, err := s.Plan(jdkRoot, scope)
	if err != nil {
		logger.Warn().Err(err).Str("scope", scope.String()).Msg("Cannot read environment")
		return newOutcome(Error, scope, "Error setting JDK at %s scope: %v", scope, err)
	}

	if err := s.store.Set(scope, JavaHomeVar, jdkRoot); err != nil {
		logger.Warn().Err(err).Str("scope", scope.String()).Msg("Cannot write JAVA_HOME")
		return newOutcome(Error, scope, "Error setting JDK at %s scope: %v", scope, err)
	}
	if err := s.store.Set(scope, PathVar, change.After); err != nil {
		logger.Warn().Err(err).Str("scope", scope.String()).Msg("Cannot write Path")
		return newOutcome(Error, scope, "Error setting JDK at %s scope: %v", scope, err)
	}

	bin := s.BinDir(jdkRoot)
	gotHome, homeErr := lookup(s.store, scope, JavaHomeVar)
	gotPath, pathErr := lookup(s.store, scope, PathVar)
	switch {
	case homeErr != nil || pathErr != nil:
		return newOutcome(Warning, scope, "Warning: could not verify %s environment after writing: JAVA_HOME error %v, Path error %v", scope, homeErr, pathErr)
	case gotHome != jdkRoot:
		return newOutcome(Warning, scope, "Warning: failed to properly set JDK to %s at %s scope; JAVA_HOME is %q", jdkRoot, scope, gotHome)
	case !contains(gotPath, bin, true):
		return newOutcome(Warning, scope, "Warning: failed to properly set JDK to %s at %s scope; Path does not contain %s", jdkRoot, scope, bin)
	}

	logger.Info().
		Str("scope", scope.String()).
		Str("old", change.OldHome).
		Str("new", jdkRoot).
		Msg("JAVA_HOME updated")

	return newOutcome(Success, scope, "Successfully set JDK to %s at %s scope; JAVA_HOME updated and Path adjusted", jdkRoot, scope)
}

// SetActiveBothScopes applies SetActive at user then machine scope.
// The machine outcome is returned, carrying both log lines.
func (s *Switcher) SetActiveBothScopes(jdkRoot string) Outcome {
	user := s.SetActive(jdkRoot, User)
	machine := s.SetActive(jdkRoot, Machine)

	log := make([]string, 0, len(user.Log)+len(machine.Log))
	log = append(log, user.Log...)
	log = append(log, machine.Log...)
	machine.Log = log
	return machine
}
