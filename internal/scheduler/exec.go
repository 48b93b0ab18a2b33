package scheduler

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// runnerFunc invokes an external command and returns its stdout and stderr.
// Backends default to execRunner; tests substitute fakes.
type runnerFunc func(ctx context.Context, name string, args ...string) (string, string, error)

func execRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// cmdError wraps a subprocess failure, attaching trimmed stderr when present.
func cmdError(op, stderr string, err error) error {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%s: %w: %s", op, err, msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
