package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/runner"
)

// fakeRunner returns canned results keyed by the full command line
type fakeRunner struct {
	results map[string]runner.Result
	errs    map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{results: map[string]runner.Result{}, errs: map[string]error{}}
}

func (f *fakeRunner) on(cmd string, res runner.Result) *fakeRunner {
	f.results[cmd] = res
	return f
}

func (f *fakeRunner) fail(cmd string, err error) *fakeRunner {
	f.errs[cmd] = err
	return f
}

func (f *fakeRunner) Run(name string, args ...string) (runner.Result, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	if err, ok := f.errs[cmd]; ok {
		return runner.Result{ExitCode: -1}, err
	}
	if res, ok := f.results[cmd]; ok {
		return res, nil
	}
	return runner.Result{}, errors.New("exec: " + name + ": executable file not found")
}

type countingNotifier struct{ n int }

func (c *countingNotifier) Broadcast() { c.n++ }

const openjdk17Banner = "openjdk version \"17.0.2\" 2022-01-18\nOpenJDK Runtime Environment (build 17.0.2+8-86)\n"

func makeJdk(t *testing.T, root string, layout java.Layout) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0755))
	require.NoError(t, os.WriteFile(layout.LauncherPath(root), nil, 0755))
	return root
}

func TestWindowsActiveHomePrefersMachine(t *testing.T) {
	store := env.NewMemoryStore()
	w := NewWindows(store, newFakeRunner(), env.NopNotifier{})

	_, ok := w.ActiveHome()
	assert.False(t, ok)

	require.NoError(t, store.Set(env.User, env.JavaHomeVar, `C:\user-jdk`))
	home, ok := w.ActiveHome()
	assert.True(t, ok)
	assert.Equal(t, `C:\user-jdk`, home)

	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, `C:\machine-jdk`))
	home, _ = w.ActiveHome()
	assert.Equal(t, `C:\machine-jdk`, home)
}

func TestHomeAt(t *testing.T) {
	store := env.NewMemoryStore()
	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, `C:\machine-jdk`))
	w := NewWindows(store, newFakeRunner(), env.NopNotifier{})

	home, ok := w.HomeAt(env.Machine)
	assert.True(t, ok)
	assert.Equal(t, `C:\machine-jdk`, home)

	_, ok = w.HomeAt(env.User)
	assert.False(t, ok)

	r := newFakeRunner().on("sh -c "+resolveJavaCmd, runner.Result{Stdout: "/opt/jdk-21/bin/java\n"})
	home, ok = (&Unix{runner: r, goos: "linux"}).HomeAt(env.User)
	assert.True(t, ok)
	assert.Equal(t, "/opt/jdk-21", home)
}

func TestWindowsCandidateRoots(t *testing.T) {
	store := env.NewMemoryStore()
	require.NoError(t, store.Set(env.User, env.JavaHomeVar, `C:\user-jdk`))
	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, `C:\machine-jdk`))
	w := NewWindows(store, newFakeRunner(), env.NopNotifier{})

	roots := w.CandidateRoots(`D:\tools\java`)
	require.Len(t, roots, 2+len(windowsStandardPaths)+1)
	assert.Equal(t, java.Root{Path: `C:\user-jdk`, Mode: java.Exact}, roots[0])
	assert.Equal(t, java.Root{Path: `C:\machine-jdk`, Mode: java.Exact}, roots[1])
	assert.Equal(t, java.Root{Path: `C:\Program Files\Java`, Mode: java.ChildrenAndSelf}, roots[2])
	assert.Equal(t, `D:\tools\java`, roots[len(roots)-1].Path)
}

func TestWindowsScanFindsJavaHome(t *testing.T) {
	home := makeJdk(t, filepath.Join(t.TempDir(), "jdk-17.0.2"), java.WindowsLayout)
	store := env.NewMemoryStore()
	require.NoError(t, store.Set(env.User, env.JavaHomeVar, home))
	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, home))
	w := NewWindows(store, newFakeRunner(), env.NopNotifier{})

	records := java.NewDetector(w).Scan("")
	require.Len(t, records, 1)
	assert.Equal(t, "jdk-17.0.2", records[0].Name)
}

func TestWindowsRuntimeVersionUsesJavaHome(t *testing.T) {
	home := makeJdk(t, filepath.Join(t.TempDir(), "jdk17"), java.WindowsLayout)
	store := env.NewMemoryStore()
	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, home))

	r := newFakeRunner().on(java.WindowsLayout.LauncherPath(home)+" -version", runner.Result{Stderr: openjdk17Banner})
	w := NewWindows(store, r, env.NopNotifier{})

	version, ok := w.RuntimeVersion()
	assert.True(t, ok)
	assert.Equal(t, "17.0.2", version)
	assert.Len(t, r.calls, 1)
}

func TestWindowsRuntimeVersionFallsBackToPath(t *testing.T) {
	store := env.NewMemoryStore()
	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, filepath.Join(t.TempDir(), "gone")))

	r := newFakeRunner().on("java -version", runner.Result{Stderr: "java version \"1.8.0_321\"\n", ExitCode: 0})
	w := NewWindows(store, r, env.NopNotifier{})

	version, ok := w.RuntimeVersion()
	assert.True(t, ok)
	assert.Equal(t, "1.8.0_321", version)
	assert.Equal(t, []string{"java -version"}, r.calls)
}

func TestWindowsRuntimeVersionAbsent(t *testing.T) {
	w := NewWindows(env.NewMemoryStore(), newFakeRunner(), env.NopNotifier{})
	_, ok := w.RuntimeVersion()
	assert.False(t, ok)
}

func TestWindowsSetActiveAndNotify(t *testing.T) {
	store := env.NewMemoryStore()
	require.NoError(t, store.Set(env.Machine, env.JavaHomeVar, `C:\jdk-11`))
	require.NoError(t, store.Set(env.Machine, env.PathVar, `C:\jdk-11\bin;C:\Windows`))
	notifier := &countingNotifier{}
	w := NewWindows(store, newFakeRunner(), notifier)

	plan, err := w.Plan(`C:\jdk-17`, env.Machine)
	require.NoError(t, err)
	assert.Equal(t, "C:\\jdk-11\\bin\nC:\\Windows\n", plan.Before)
	assert.Equal(t, "C:\\jdk-17\\bin\nC:\\Windows\n", plan.After)
	assert.Empty(t, plan.Command)

	out := w.SetActiveBothScopes(`C:\jdk-17`)
	assert.True(t, out.OK(), out.String())
	w.Notify()
	assert.Equal(t, 1, notifier.n)

	home, ok := w.ActiveHome()
	assert.True(t, ok)
	assert.Equal(t, `C:\jdk-17`, home)
}

func TestUnixCandidateRoots(t *testing.T) {
	u := &Unix{runner: newFakeRunner(), goos: "linux", home: "/home/dev"}

	roots := u.CandidateRoots("")
	assert.Equal(t, []java.Root{
		{Path: "/usr/lib/jvm", Mode: java.Children},
		{Path: "/opt/java/openjdk", Mode: java.Children},
		{Path: "/usr/local/openjdk", Mode: java.Children},
		{Path: "/usr/java", Mode: java.Children},
		{Path: "/home/dev/.sdkman/candidates/java", Mode: java.Children},
	}, roots)

	roots = u.CandidateRoots("/srv/jdks/")
	assert.Equal(t, java.Root{Path: "/srv/jdks", Mode: java.Children}, roots[0])

	mac := &Unix{runner: newFakeRunner(), goos: "darwin", home: "/Users/dev"}
	roots = mac.CandidateRoots("")
	assert.Equal(t, java.Root{Path: "/Library/Java/JavaVirtualMachines", Mode: java.Bundles}, roots[len(roots)-2])
	assert.Equal(t, "/Users/dev/Library/Java/JavaVirtualMachines", roots[len(roots)-1].Path)
}

func TestUnixActiveHome(t *testing.T) {
	r := newFakeRunner().on("sh -c "+resolveJavaCmd, runner.Result{Stdout: "/usr/lib/jvm/java-17-openjdk-amd64/bin/java\n"})
	u := &Unix{runner: r, goos: "linux"}

	home, ok := u.ActiveHome()
	assert.True(t, ok)
	assert.Equal(t, "/usr/lib/jvm/java-17-openjdk-amd64", home)
}

func TestUnixActiveHomeAbsent(t *testing.T) {
	tests := []struct {
		name string
		r    *fakeRunner
	}{
		{"no shell", newFakeRunner().fail("sh -c "+resolveJavaCmd, errors.New("exec: sh: not found"))},
		{"no java", newFakeRunner().on("sh -c "+resolveJavaCmd, runner.Result{ExitCode: 1})},
		{"empty output", newFakeRunner().on("sh -c "+resolveJavaCmd, runner.Result{Stdout: "\n"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &Unix{runner: tt.r, goos: "linux"}
			_, ok := u.ActiveHome()
			assert.False(t, ok)
		})
	}
}

func TestUnixActiveHomeDarwinPrefersJavaHomeHelper(t *testing.T) {
	r := newFakeRunner().on(macJavaHome, runner.Result{Stdout: "/Library/Java/JavaVirtualMachines/temurin-21.jdk/Contents/Home\n"})
	u := &Unix{runner: r, goos: "darwin"}

	home, ok := u.ActiveHome()
	assert.True(t, ok)
	assert.Equal(t, "/Library/Java/JavaVirtualMachines/temurin-21.jdk/Contents/Home", home)
}

func TestUnixRuntimeVersion(t *testing.T) {
	r := newFakeRunner().on("java -version", runner.Result{Stderr: openjdk17Banner, ExitCode: 0})
	u := &Unix{runner: r, goos: "linux"}

	version, ok := u.RuntimeVersion()
	assert.True(t, ok)
	assert.Equal(t, "17.0.2", version)

	_, ok = (&Unix{runner: newFakeRunner(), goos: "linux"}).RuntimeVersion()
	assert.False(t, ok)
}

func TestUnixSetActive(t *testing.T) {
	cmd := "sudo update-alternatives --set java /usr/lib/jvm/jdk-17/bin/java"

	ok := newFakeRunner().on(cmd, runner.Result{Stdout: "update-alternatives: using /usr/lib/jvm/jdk-17/bin/java to provide /usr/bin/java (java) in manual mode\n"})
	u := &Unix{runner: ok, goos: "linux"}
	out := u.SetActiveBothScopes("/usr/lib/jvm/jdk-17")
	assert.True(t, out.OK())
	assert.Contains(t, out.Message, "manual mode")
	assert.Equal(t, []string{cmd}, ok.calls)

	denied := newFakeRunner().on(cmd, runner.Result{Stderr: "sudo: a terminal is required to read the password\n", ExitCode: 1})
	out = (&Unix{runner: denied, goos: "linux"}).SetActive("/usr/lib/jvm/jdk-17", env.Machine)
	assert.Equal(t, env.Error, out.Status)
	assert.Contains(t, out.Message, "terminal is required")

	missing := newFakeRunner().fail(cmd, errors.New("exec: \"sudo\": executable file not found in $PATH"))
	out = (&Unix{runner: missing, goos: "linux"}).SetActive("/usr/lib/jvm/jdk-17", env.Machine)
	assert.Equal(t, env.Error, out.Status)
	assert.Contains(t, out.Message, "sudo")
}

func TestUnixPlan(t *testing.T) {
	u := &Unix{runner: newFakeRunner(), goos: "linux"}
	plan, err := u.Plan("/usr/lib/jvm/jdk-17", env.Machine)
	require.NoError(t, err)
	assert.Equal(t, []string{"sudo", "update-alternatives", "--set", "java", "/usr/lib/jvm/jdk-17/bin/java"}, plan.Command)
	assert.Empty(t, plan.OldHome)
}

func TestActive(t *testing.T) {
	r := newFakeRunner().
		on("sh -c "+resolveJavaCmd, runner.Result{Stdout: "/opt/jdk-21/bin/java"}).
		on("java -version", runner.Result{Stderr: "openjdk version \"21.0.1\" 2023-10-17\n"})

	state := Active(&Unix{runner: r, goos: "linux"})
	assert.Equal(t, ActiveState{JavaHome: "/opt/jdk-21", RuntimeVersion: "21.0.1"}, state)
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/srv/jdks", ExpandPath(" /srv/jdks/ "))
	home, err := os.UserHomeDir()
	if err == nil {
		assert.Equal(t, filepath.Join(home, "jdks"), ExpandPath("~/jdks"))
	}
}
