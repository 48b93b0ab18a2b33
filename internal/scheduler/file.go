package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BrunoTulio/logr"
	"github.com/cronman/cronman/internal/crontab"
)

// File persists entries as crontab-format text at a fixed path. The first
// Load, when the path does not exist yet, imports whatever the platform
// scheduler currently holds so existing jobs are not lost.
type File struct {
	path   string
	system Scheduler
	log    logr.Logger
}

func NewFile(system Scheduler, log logr.Logger, opts ...func(*Options)) *File {
	opt := defaultOptions()
	for _, fn := range opts {
		fn(opt)
	}

	return &File{
		path:   opt.FilePath,
		system: system,
		log:    log,
	}
}

func (f *File) Load(ctx context.Context) ([]crontab.Entry, error) {
	data, err := os.ReadFile(f.path)
	if err == nil {
		return crontab.Parse(string(data)), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	return f.importFromSystem(ctx)
}

// importFromSystem seeds the backing file from the platform scheduler. A
// failing or empty system load just means there is nothing to import.
func (f *File) importFromSystem(ctx context.Context) ([]crontab.Entry, error) {
	if f.system == nil {
		return nil, nil
	}

	entries, err := f.system.Load(ctx)
	if err != nil || len(entries) == 0 {
		return nil, nil
	}

	if err := f.write(entries); err != nil {
		return nil, err
	}

	f.log.Infof("📥 Imported %d entries from %s into %s", len(entries), f.system.BackendName(), f.path)
	return entries, nil
}

func (f *File) Save(ctx context.Context, entries []crontab.Entry) error {
	return f.write(entries)
}

func (f *File) write(entries []crontab.Entry) error {
	if err := os.WriteFile(f.path, []byte(crontab.Serialize(entries)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) BackendName() string {
	return "File"
}
