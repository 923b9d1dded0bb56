package platform

import (
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"jswitch/internal/env"
	"jswitch/internal/java"
	"jswitch/internal/logging"
	"jswitch/internal/runner"
)

const (
	defaultJvmRoot = "/usr/lib/jvm"
	resolveJavaCmd = `readlink -f "$(command -v java)"`
	macJavaHome    = "/usr/libexec/java_home"
)

var unixAdditionalRoots = []string{
	"/opt/java/openjdk",
	"/usr/local/openjdk",
	"/usr/java",
}

// Unix selects java through the alternatives mechanism
type Unix struct {
	runner runner.Runner
	goos   string
	home   string
}

// NewUnix creates ops for a Unix-like system named goos
func NewUnix(r runner.Runner, goos string) *Unix {
	home, err := homedir.Dir()
	if err != nil {
		home = ""
	}
	return &Unix{runner: r, goos: goos, home: home}
}

func (u *Unix) Name() string        { return u.goos }
func (u *Unix) HasScopes() bool     { return false }
func (u *Unix) Layout() java.Layout { return java.UnixLayout }

// CandidateRoots lists extraRoot (or /usr/lib/jvm) first, then the other
// conventional install parents. Every root is searched one level deep.
func (u *Unix) CandidateRoots(extraRoot string) []java.Root {
	first := defaultJvmRoot
	if extraRoot != "" {
		first = ExpandPath(extraRoot)
	}

	roots := []java.Root{{Path: first, Mode: java.Children}}
	for _, p := range unixAdditionalRoots {
		roots = append(roots, java.Root{Path: p, Mode: java.Children})
	}
	if u.home != "" {
		roots = append(roots, java.Root{Path: filepath.Join(u.home, ".sdkman", "candidates", "java"), Mode: java.Children})
	}
	if u.goos == "darwin" {
		roots = append(roots, java.Root{Path: "/Library/Java/JavaVirtualMachines", Mode: java.Bundles})
		if u.home != "" {
			roots = append(roots, java.Root{Path: filepath.Join(u.home, "Library", "Java", "JavaVirtualMachines"), Mode: java.Bundles})
		}
	}
	return roots
}

// ActiveHome resolves the java on PATH through its symlinks and strips bin/java.
// On macOS the java_home helper is asked first, since /usr/bin/java is a stub.
func (u *Unix) ActiveHome() (string, bool) {
	logger := logging.GetLogger("resolver")

	if u.goos == "darwin" {
		if res, err := u.runner.Run(macJavaHome); err == nil && res.ExitCode == 0 {
			if home := strings.TrimSpace(res.Stdout); home != "" {
				return home, true
			}
		}
	}

	res, err := u.runner.Run("sh", "-c", resolveJavaCmd)
	if err != nil {
		logger.Debug().Err(err).Msg("Cannot resolve java on PATH")
		return "", false
	}
	launcher := strings.TrimSpace(res.Stdout)
	if res.ExitCode != 0 || launcher == "" {
		return "", false
	}
	return filepath.Dir(filepath.Dir(launcher)), true
}

func (u *Unix) HomeAt(env.Scope) (string, bool) {
	return u.ActiveHome()
}

func (u *Unix) RuntimeVersion() (string, bool) {
	return bannerFrom(u.runner, "java")
}

func (u *Unix) RuntimeVersionAt(root string) (string, bool) {
	return bannerFrom(u.runner, u.Layout().LauncherPath(root))
}

// SetActive points the java alternative at jdkRoot. Scope does not apply.
// The tool's output is the only signal; stderr text marks a failure.
func (u *Unix) SetActive(jdkRoot string, scope env.Scope) env.Outcome {
	logger := logging.GetLogger("switcher")
	args := u.alternativesCommand(jdkRoot)

	res, err := u.runner.Run(args[0], args[1:]...)

	message := strings.TrimSpace(res.Stdout)
	if errText := strings.TrimSpace(res.Stderr); errText != "" {
		message = joinLines(message, errText)
	}
	if err != nil {
		message = joinLines(message, err.Error())
	}

	status := env.Success
	if err != nil || strings.TrimSpace(res.Stderr) != "" {
		status = env.Error
		logger.Warn().Str("output", message).Msg("update-alternatives failed")
	} else {
		logger.Info().Str("jdk", jdkRoot).Msg("java alternative updated")
	}
	if message == "" {
		message = "java alternative set to " + u.Layout().LauncherPath(jdkRoot)
	}

	return env.Outcome{Status: status, Scope: scope, Message: message, Log: []string{message}}
}

func (u *Unix) SetActiveBothScopes(jdkRoot string) env.Outcome {
	return u.SetActive(jdkRoot, env.Machine)
}

func (u *Unix) Plan(jdkRoot string, scope env.Scope) (Plan, error) {
	plan := Plan{Scope: scope, Command: u.alternativesCommand(jdkRoot)}
	if home, ok := u.ActiveHome(); ok {
		plan.OldHome = home
	}
	return plan, nil
}

func (u *Unix) Notify() {}

func (u *Unix) alternativesCommand(jdkRoot string) []string {
	return []string{"sudo", "update-alternatives", "--set", "java", u.Layout().LauncherPath(jdkRoot)}
}

func joinLines(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n" + b
}

// ExpandPath expands a leading ~ and cleans the result
func ExpandPath(p string) string {
	expanded, err := homedir.Expand(strings.TrimSpace(p))
	if err != nil {
		expanded = p
	}
	return filepath.Clean(expanded)
}
