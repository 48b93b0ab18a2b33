package scheduler

import (
	"context"
	"runtime"

	"github.com/BrunoTulio/logr"
	"github.com/cronman/cronman/internal/crontab"
)

// Scheduler synchronizes a list of entries with one scheduling backend.
// Load returns the entries the backend currently holds; Save replaces them
// wholesale. Callers must not run two Saves against the same target
// concurrently.
type Scheduler interface {
	Load(ctx context.Context) ([]crontab.Entry, error)
	Save(ctx context.Context, entries []crontab.Entry) error
	BackendName() string
}

// New selects the backend once at construction time. When useSystem is
// false the file backend is returned, wired to the platform scheduler for
// its first-run import. When true the platform scheduler itself is
// returned: launchd on macOS, the crontab tool elsewhere.
func New(useSystem bool, log logr.Logger, opts ...func(*Options)) Scheduler {
	return newForOS(runtime.GOOS, useSystem, log, opts...)
}

func newForOS(goos string, useSystem bool, log logr.Logger, opts ...func(*Options)) Scheduler {
	system := newSystem(goos, log, opts...)
	if useSystem {
		return system
	}
	return NewFile(system, log, opts...)
}

func newSystem(goos string, log logr.Logger, opts ...func(*Options)) Scheduler {
	if goos == "darwin" {
		return NewLaunchd(log, opts...)
	}
	return NewCron(log)
}
