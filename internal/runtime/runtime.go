package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command describes one external process invocation.
type Command struct {
	// Dir is the working directory; empty means the current directory.
	Dir  string
	Name string
	Args []string
	// Env holds extra variables layered over the inherited environment.
	Env map[string]string
	// Quiet captures output without streaming it to the runner's writers.
	Quiet bool
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Output captures the result of a process execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external processes. Every call blocks until the process exits.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) (*Output, error)

// Run calls f(ctx, cmd).
func (f RunnerFunc) Run(ctx context.Context, cmd Command) (*Output, error) {
	return f(ctx, cmd)
}

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Command string
	Output  *Output
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Command, e.Output.ExitCode)
	if stderr := strings.TrimSpace(e.Output.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// ErrNotInstalled is wrapped when the requested executable is not on PATH.
var ErrNotInstalled = errors.New("executable not found")

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd. A non-zero exit yields the captured output together with
// an *ExitError so callers can inspect both.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, fmt.Errorf("%s is required: %w", c.Name, ErrNotInstalled)
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = buildEnv(os.Environ(), c.Env)

	var stdoutBuf, stderrBuf bytes.Buffer
	if c.Quiet {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	} else {
		stdout := r.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		stderr := r.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)
	}

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ExitError{Command: c.String(), Output: output}
		}
		return output, fmt.Errorf("running %s: %w", c.String(), err)
	}

	return output, nil
}

// buildEnv layers extra over base in a stable key order.
func buildEnv(base []string, extra map[string]string) []string {
	env := append([]string(nil), base...)
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnv(env, k, extra[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
