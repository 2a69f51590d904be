// Package runner wraps external command execution behind a small
// interface so callers can be tested with a fake.
package runner

import (
	"context"
	"os/exec"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// CommandRunner executes a command and returns its combined output.
type CommandRunner interface {
	RunCommand(ctx context.Context, args ...string) (string, error)
}

// DefaultCommandRunner runs commands on the host.
type DefaultCommandRunner struct {
	Log zerolog.Logger
}

var _ CommandRunner = &DefaultCommandRunner{}

func (d *DefaultCommandRunner) RunCommand(ctx context.Context, args ...string) (string, error) {
	if len(args) == 0 {
		return "", pkgerrors.New("no command given")
	}
	d.Log.Debug().Str("command", strings.Join(args, " ")).Msg("running command")
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), pkgerrors.Wrapf(err, "command %q failed", args[0])
	}
	return string(out), nil
}

// FakeCommandRunner returns canned output for tests.
type FakeCommandRunner struct {
	Output string
	ErrStr string
	// Calls records each invocation's argv.
	Calls [][]string
}

var _ CommandRunner = &FakeCommandRunner{}

func (f *FakeCommandRunner) RunCommand(ctx context.Context, args ...string) (string, error) {
	f.Calls = append(f.Calls, args)
	if f.ErrStr != "" {
		return f.Output, pkgerrors.New(f.ErrStr)
	}
	return f.Output, nil
}
