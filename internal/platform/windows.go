package platform

import (
	"strings"

	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/runner"
)

// Standard Windows install parents. Each is scanned for versioned
// subfolders and is also probed itself.
var windowsStandardPaths = []string{
	`C:\Program Files\Java`,
	`C:\Program Files (x86)\Java`,
	`C:\Program Files\Microsoft\jdk`,
	`C:\Program Files (x86)\Microsoft\jdk`,
	`C:\Program Files\Eclipse Adoptium`,
	`C:\Program Files\Eclipse Foundation`,
	`C:\Program Files\Zulu`,
	`C:\Program Files\Amazon Corretto`,
	`C:\Program Files\Microsoft`,
}

// Windows keeps JAVA_HOME and Path per scope in a Store
type Windows struct {
	store    env.Store
	runner   runner.Runner
	notifier env.Notifier
	switcher *env.Switcher
}

// NewWindows creates Windows ops over the given store
func NewWindows(store env.Store, r runner.Runner, n env.Notifier) *Windows {
	return &Windows{
		store:    store,
		runner:   r,
		notifier: n,
		switcher: env.NewSwitcher(store),
	}
}

// StandardPaths returns the built-in install parents
func (w *Windows) StandardPaths() []string {
	return append([]string(nil), windowsStandardPaths...)
}

func (w *Windows) Name() string        { return "windows" }
func (w *Windows) HasScopes() bool     { return true }
func (w *Windows) Layout() java.Layout { return java.WindowsLayout }

// CandidateRoots lists user then machine JAVA_HOME (probed as-is), then the
// standard install parents, then extraRoot when given.
func (w *Windows) CandidateRoots(extraRoot string) []java.Root {
	roots := make([]java.Root, 0, len(windowsStandardPaths)+3)
	for _, scope := range []env.Scope{env.User, env.Machine} {
		if home := w.javaHome(scope); home != "" {
			roots = append(roots, java.Root{Path: home, Mode: java.Exact})
		}
	}
	for _, p := range windowsStandardPaths {
		roots = append(roots, java.Root{Path: p, Mode: java.ChildrenAndSelf})
	}
	if extraRoot != "" {
		roots = append(roots, java.Root{Path: extraRoot, Mode: java.ChildrenAndSelf})
	}
	return roots
}

// ActiveHome prefers machine JAVA_HOME over user JAVA_HOME
func (w *Windows) ActiveHome() (string, bool) {
	if home := w.javaHome(env.Machine); home != "" {
		return home, true
	}
	if home := w.javaHome(env.User); home != "" {
		return home, true
	}
	return "", false
}

func (w *Windows) HomeAt(scope env.Scope) (string, bool) {
	home := w.javaHome(scope)
	return home, home != ""
}

// RuntimeVersion runs java.exe under JAVA_HOME, falling back to java on Path
func (w *Windows) RuntimeVersion() (string, bool) {
	if home, ok := w.ActiveHome(); ok && w.Layout().IsValidJdkRoot(home) {
		if res, err := w.runner.Run(w.Layout().LauncherPath(home), "-version"); err == nil {
			return java.ExtractVersionFromBanner(res.Combined())
		}
	}
	return bannerFrom(w.runner, "java")
}

func (w *Windows) RuntimeVersionAt(root string) (string, bool) {
	return bannerFrom(w.runner, w.Layout().LauncherPath(root))
}

func (w *Windows) SetActive(jdkRoot string, scope env.Scope) env.Outcome {
	return w.switcher.SetActive(jdkRoot, scope)
}

func (w *Windows) SetActiveBothScopes(jdkRoot string) env.Outcome {
	return w.switcher.SetActiveBothScopes(jdkRoot)
}

func (w *Windows) Plan(jdkRoot string, scope env.Scope) (Plan, error) {
	change, err := w.switcher.Plan(jdkRoot, scope)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Scope:   scope,
		OldHome: change.OldHome,
		Before:  perLine(change.Before),
		After:   perLine(change.After),
	}, nil
}

func (w *Windows) Notify() {
	w.notifier.Broadcast()
}

func (w *Windows) javaHome(scope env.Scope) string {
	home, err := w.store.Get(scope, env.JavaHomeVar)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(home)
}

func perLine(path string) string {
	entries := env.SplitPathList(path, env.WindowsListSeparator)
	if len(entries) == 0 {
		return ""
	}
	return strings.Join(entries, "\n") + "\n"
}
