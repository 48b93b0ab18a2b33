package crontab

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Entry is one named scheduled shell command.
type Entry struct {
	Name     string
	Schedule string // 5-field cron expression
	Command  string
	Enabled  bool
}

func New(name, schedule, command string) Entry {
	return Entry{
		Name:     name,
		Schedule: schedule,
		Command:  command,
		Enabled:  true,
	}
}

// CrontabLine renders the cron line for this entry, commented out when disabled.
func (e Entry) CrontabLine() string {
	if e.Enabled {
		return fmt.Sprintf("%s %s", e.Schedule, e.Command)
	}
	return fmt.Sprintf("# %s %s", e.Schedule, e.Command)
}

// ScheduleValid reports whether the schedule parses as a standard cron
// expression. This is a plausibility check for display and warnings only;
// backends apply their own stricter rules on save.
func (e Entry) ScheduleValid() bool {
	_, err := cron.ParseStandard(e.Schedule)
	return err == nil
}

// NextRun returns the next time the entry would fire after now.
func (e Entry) NextRun(now time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(e.Schedule)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse schedule %q: %w", e.Schedule, err)
	}
	return sched.Next(now), nil
}
