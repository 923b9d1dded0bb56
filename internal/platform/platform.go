// Package platform selects how JDKs are found, resolved and switched on the
// running operating system.
package platform

import (
	"runtime"

	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/runner"
)

// Ops is the per-platform strategy used by the CLI
type Ops interface {
	java.Platform

	// Name identifies the platform, e.g. "windows", "linux"
	Name() string

	// HasScopes reports whether SetActive distinguishes user and machine scope
	HasScopes() bool

	// ActiveHome returns the JDK root currently selected
	ActiveHome() (string, bool)

	// HomeAt returns the JDK root selected at scope. Platforms without
	// scopes answer with ActiveHome.
	HomeAt(scope env.Scope) (string, bool)

	// RuntimeVersion returns the version banner of the java found first
	RuntimeVersion() (string, bool)

	// RuntimeVersionAt returns the version banner of the launcher under root
	RuntimeVersionAt(root string) (string, bool)

	// SetActive selects jdkRoot at scope and reports the result
	SetActive(jdkRoot string, scope env.Scope) env.Outcome

	// SetActiveBothScopes selects jdkRoot at every scope the platform has
	SetActiveBothScopes(jdkRoot string) env.Outcome

	// Plan describes what SetActive would change, without changing it
	Plan(jdkRoot string, scope env.Scope) (Plan, error)

	// Notify tells running programs the environment changed
	Notify()
}

// ActiveState is a snapshot of the selected JDK. Empty fields are unknown.
type ActiveState struct {
	JavaHome       string `json:"java_home,omitempty" yaml:"java_home,omitempty"`
	RuntimeVersion string `json:"runtime_version,omitempty" yaml:"runtime_version,omitempty"`
}

// Plan is a dry-run preview of a switch
type Plan struct {
	Scope   env.Scope
	OldHome string
	Before  string   // search path before, one entry per line
	After   string   // search path after, one entry per line
	Command []string // privileged command that would run, if any
}

// Active queries the platform for the current state. Nothing is cached.
func Active(o Ops) ActiveState {
	var state ActiveState
	if home, ok := o.ActiveHome(); ok {
		state.JavaHome = home
	}
	if version, ok := o.RuntimeVersion(); ok {
		state.RuntimeVersion = version
	}
	return state
}

// Current returns the Ops for the running system
func Current() Ops {
	r := runner.ExecRunner{}
	if runtime.GOOS == "windows" {
		return NewWindows(env.NewSystemStore(), r, env.NewNotifier())
	}
	return NewUnix(r, runtime.GOOS)
}

// bannerFrom runs a launcher with -version and extracts the quoted version.
// A launch failure yields no version; the exit code is ignored.
func bannerFrom(r runner.Runner, launcher string) (string, bool) {
	res, err := r.Run(launcher, "-version")
	if err != nil {
		return "", false
	}
	return java.ExtractVersionFromBanner(res.Combined())
}
