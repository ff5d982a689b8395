// Package command runs external tools and records what happened.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// maxLoggedOutput caps the stdout/stderr kept in a Log.
const maxLoggedOutput = 4096

// Spec describes one process invocation.
type Spec struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the caller's.
	Dir string
	// Env entries are appended to the current environment.
	Env   []string
	Stdin io.Reader
	// Stdout receives standard output when set; otherwise it is captured
	// into the Log.
	Stdout io.Writer
}

// Log captures one invocation result.
type Log struct {
	Command  string   `json:"command"`
	Args     []string `json:"args"`
	Dir      string   `json:"dir,omitempty"`
	ExitCode int      `json:"exitCode"`
	Stdout   string   `json:"stdout,omitempty"`
	Stderr   string   `json:"stderr,omitempty"`
}

// Error is returned when a process fails to start or exits non-zero.
type Error struct {
	Log Log
	Err error
}

func (e *Error) Error() string {
	detail := strings.TrimSpace(e.Log.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(e.Log.Stdout)
	}
	if detail == "" {
		return fmt.Sprintf("%s: %v", e.Log.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Log.Command, e.Err, detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Runner executes processes. Tests substitute fakes.
type Runner interface {
	Run(ctx context.Context, spec Spec) (Log, error)
}

// ExecRunner executes processes via os/exec.
type ExecRunner struct{}

// Run starts spec and waits for it to exit. A non-zero exit returns an *Error.
func (ExecRunner) Run(ctx context.Context, spec Spec) (Log, error) {
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...) //nolint:gosec
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(cmd.Environ(), spec.Env...)
	}
	cmd.Stdin = spec.Stdin

	var stdout, stderr bytes.Buffer
	if spec.Stdout != nil {
		cmd.Stdout = spec.Stdout
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	err := cmd.Run()
	log := Log{
		Command: spec.Name,
		Args:    append([]string(nil), spec.Args...),
		Dir:     spec.Dir,
		Stdout:  truncate(stdout.String()),
		Stderr:  truncate(stderr.String()),
	}
	if err != nil {
		log.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.ExitCode = exitErr.ExitCode()
		}
		return log, &Error{Log: log, Err: err}
	}
	return log, nil
}

// String renders the invocation as a shell-like line for logs.
func (l Log) String() string {
	parts := make([]string, 0, len(l.Args)+1)
	parts = append(parts, l.Command)
	for _, arg := range l.Args {
		if strings.ContainsAny(arg, " '\"") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// truncate keeps the tail, where tools usually print the failure reason.
func truncate(s string) string {
	if len(s) <= maxLoggedOutput {
		return s
	}
	return "..." + s[len(s)-maxLoggedOutput:]
}
