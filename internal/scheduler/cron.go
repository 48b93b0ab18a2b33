package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/cronman/cronman/internal/crontab"
)

// Cron synchronizes entries with the user's crontab through the crontab
// command line tool.
type Cron struct {
	run runnerFunc
	log logr.Logger
}

func NewCron(log logr.Logger) *Cron {
	return &Cron{
		run: execRunner,
		log: log,
	}
}

func (c *Cron) Load(ctx context.Context) ([]crontab.Entry, error) {
	stdout, stderr, err := c.run(ctx, "crontab", "-l")
	if err != nil {
		// crontab -l exits non-zero when the user has no crontab yet.
		if strings.Contains(stderr, "no crontab") {
			return nil, nil
		}
		return nil, cmdError("crontab -l", stderr, err)
	}

	return crontab.Parse(stdout), nil
}

// Save installs the serialized entries through `crontab <file>`. The
// intermediate file is created with a random name and owner-only
// permissions and removed once the install attempt finishes.
func (c *Cron) Save(ctx context.Context, entries []crontab.Entry) error {
	tmp, err := os.CreateTemp("", "cronman-crontab-*")
	if err != nil {
		return fmt.Errorf("create temp crontab: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.WriteString(crontab.Serialize(entries)); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if _, stderr, err := c.run(ctx, "crontab", tmp.Name()); err != nil {
		return cmdError("install crontab", stderr, err)
	}
	return nil
}

func (c *Cron) BackendName() string {
	return "Cron"
}
