package runner

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"

	"jswitch/internal/logging"
)

// Result is the captured output of a finished process
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr. The java launcher prints
// its version banner on stderr.
func (r Result) Combined() string {
	switch {
	case r.Stdout == "":
		return r.Stderr
	case r.Stderr == "":
		return r.Stdout
	default:
		return strings.TrimRight(r.Stdout, "\n") + "\n" + r.Stderr
	}
}

// Runner starts external programs and waits for them
type Runner interface {
	Run(name string, args ...string) (Result, error)
}

// ExecRunner runs programs with os/exec. A non-zero exit is not an error;
// err is set only when the program could not be started.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (Result, error) {
	logging.LogCommand(name, args)

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		result.ExitCode = -1
		return result, err
	}
	return result, nil
}
