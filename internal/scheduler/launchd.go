package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BrunoTulio/logr"
	"github.com/cronman/cronman/internal/crontab"
)

const (
	stagedSuffix = ".new"
	backupSuffix = ".bak"
)

// Launchd synchronizes entries with macOS launchd, one launch agent plist
// per enabled entry in the user's LaunchAgents directory. Saves replace the
// whole managed set through a staged protocol so a half-failed launchctl
// round never leaves the directory worse than it was.
type Launchd struct {
	agentsDir     string
	logDir        string
	labelPrefix   string
	rollbackRatio float64
	run           runnerFunc
	log           logr.Logger
}

func NewLaunchd(log logr.Logger, opts ...func(*Options)) *Launchd {
	opt := defaultOptions()
	for _, fn := range opts {
		fn(opt)
	}

	return &Launchd{
		agentsDir:     opt.AgentsDir,
		logDir:        opt.LogDir,
		labelPrefix:   opt.LabelPrefix,
		rollbackRatio: opt.RollbackRatio,
		run:           execRunner,
		log:           log,
	}
}

func (l *Launchd) BackendName() string {
	return "Launchd"
}

func (l *Launchd) plistPath(label string) string {
	return filepath.Join(l.agentsDir, label+".plist")
}

// listAgents returns the labels of every descriptor we manage, recognized by
// the label prefix. Staged and backup files carry extra suffixes and are
// never listed.
func (l *Launchd) listAgents() ([]string, error) {
	dirEntries, err := os.ReadDir(l.agentsDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.agentsDir, err)
	}

	var labels []string
	for _, dirEntry := range dirEntries {
		name := dirEntry.Name()
		if filepath.Ext(name) != ".plist" {
			continue
		}
		stem := strings.TrimSuffix(name, ".plist")
		if strings.HasPrefix(stem, l.labelPrefix) {
			labels = append(labels, stem)
		}
	}
	return labels, nil
}

func (l *Launchd) Load(ctx context.Context) ([]crontab.Entry, error) {
	labels, err := l.listAgents()
	if err != nil {
		return nil, err
	}

	var entries []crontab.Entry
	for _, label := range labels {
		path := l.plistPath(label)
		data, err := os.ReadFile(path)
		if err != nil {
			l.log.Warnf("⚠️  Skipping unreadable launch agent %s: %v", path, err)
			continue
		}
		entries = append(entries, parsePlist(string(data), l.labelPrefix))
	}
	return entries, nil
}

// Save replaces the managed launch agents with descriptors for the enabled
// entries:
//
//  1. stage every new descriptor under a .new suffix, validating first
//  2. back up the live descriptors under a .bak suffix
//  3. deregister the live agents (best-effort)
//  4. remove the live descriptor files
//  5. rename staged descriptors into place
//  6. register the new agents, collecting failures
//  7. roll everything back if more than rollbackRatio of registrations
//     failed, otherwise discard the backups
//
// Validation problems abort in step 1 before live state is touched. A
// rename or removal failure in the middle is returned immediately; the
// directory is then in a defined but incomplete state. Entries sharing a
// name collapse to the same label; the last one wins.
func (l *Launchd) Save(ctx context.Context, entries []crontab.Entry) error {
	if err := os.MkdirAll(l.agentsDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", l.agentsDir, err)
	}
	if err := os.MkdirAll(l.logDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", l.logDir, err)
	}

	staged, err := l.stageDescriptors(entries)
	if err != nil {
		return err
	}

	previous, err := l.listAgents()
	if err != nil {
		l.removeStaged(staged)
		return err
	}

	if err := l.backupDescriptors(previous); err != nil {
		l.removeStaged(staged)
		return err
	}

	for _, label := range previous {
		l.bootoutAgent(ctx, label)
	}
	for _, label := range previous {
		if err := os.Remove(l.plistPath(label)); err != nil {
			return fmt.Errorf("remove %s: %w", l.plistPath(label), err)
		}
	}

	for _, label := range staged {
		live := l.plistPath(label)
		if err := os.Rename(live+stagedSuffix, live); err != nil {
			return fmt.Errorf("activate %s: %w", live, err)
		}
	}

	var failed []string
	for _, label := range staged {
		if err := l.bootstrapAgent(ctx, label); err != nil {
			l.log.Warnf("⚠️  Failed to register %s: %v", label, err)
			failed = append(failed, label)
		}
	}

	if len(staged) > 0 && float64(len(failed)) > l.rollbackRatio*float64(len(staged)) {
		l.rollback(ctx, staged, previous)
		return fmt.Errorf("%d of %d launch agents failed to register; previous agents restored", len(failed), len(staged))
	}

	if len(failed) > 0 {
		l.log.Warnf("⚠️  %d of %d launch agents failed to register; their descriptors stay installed but inactive", len(failed), len(staged))
	}

	l.discardBackups(previous)
	return nil
}

// stageDescriptors validates and writes a .new descriptor for every enabled
// entry. Any validation or write failure removes what was staged so far and
// aborts the save with live state untouched.
func (l *Launchd) stageDescriptors(entries []crontab.Entry) ([]string, error) {
	var staged []string
	seen := make(map[string]bool)

	for _, entry := range entries {
		if !entry.Enabled {
			continue
		}

		if err := validateCommand(entry.Command); err != nil {
			l.removeStaged(staged)
			return nil, fmt.Errorf("entry %q: %w", entry.Name, err)
		}
		trigger, err := scheduleToTrigger(entry.Schedule)
		if err != nil {
			l.removeStaged(staged)
			return nil, fmt.Errorf("entry %q: %w", entry.Name, err)
		}

		label := entryLabel(l.labelPrefix, entry.Name)
		doc := buildPlist(label, entry.Name, entry.Command, trigger, l.logDir)

		path := l.plistPath(label) + stagedSuffix
		if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
			l.removeStaged(staged)
			return nil, fmt.Errorf("stage %s: %w", path, err)
		}

		if !seen[label] {
			seen[label] = true
			staged = append(staged, label)
		}
	}

	return staged, nil
}

func (l *Launchd) removeStaged(staged []string) {
	for _, label := range staged {
		_ = os.Remove(l.plistPath(label) + stagedSuffix)
	}
}

// backupDescriptors copies each live descriptor to its .bak path so a failed
// registration round can be undone.
func (l *Launchd) backupDescriptors(labels []string) error {
	for _, label := range labels {
		live := l.plistPath(label)
		data, err := os.ReadFile(live)
		if err != nil {
			return fmt.Errorf("back up %s: %w", live, err)
		}
		if err := os.WriteFile(live+backupSuffix, data, 0644); err != nil {
			return fmt.Errorf("back up %s: %w", live, err)
		}
	}
	return nil
}

func (l *Launchd) discardBackups(labels []string) {
	for _, label := range labels {
		_ = os.Remove(l.plistPath(label) + backupSuffix)
	}
}

// rollback undoes a save whose registrations mostly failed: the new agents
// are deregistered and deleted, the backed-up descriptors are restored and
// re-registered. Problems here are logged rather than returned; the save is
// already failing with the registration error.
func (l *Launchd) rollback(ctx context.Context, staged, previous []string) {
	l.log.Warnf("⚠️  Rolling back to the previous %d launch agents", len(previous))

	for _, label := range staged {
		l.bootoutAgent(ctx, label)
		if err := os.Remove(l.plistPath(label)); err != nil {
			l.log.Warnf("⚠️  Rollback: remove %s: %v", l.plistPath(label), err)
		}
	}

	for _, label := range previous {
		live := l.plistPath(label)
		if err := os.Rename(live+backupSuffix, live); err != nil {
			l.log.Warnf("⚠️  Rollback: restore %s: %v", live, err)
			continue
		}
		if err := l.bootstrapAgent(ctx, label); err != nil {
			l.log.Warnf("⚠️  Rollback: re-register %s: %v", label, err)
		}
	}
}

func (l *Launchd) uid(ctx context.Context) (string, error) {
	stdout, stderr, err := l.run(ctx, "id", "-u")
	if err != nil {
		return "", cmdError("id -u", stderr, err)
	}
	return strings.TrimSpace(stdout), nil
}

// bootstrapAgent registers a descriptor with the user's launchd domain. An
// agent that is already loaded counts as success.
func (l *Launchd) bootstrapAgent(ctx context.Context, label string) error {
	uid, err := l.uid(ctx)
	if err != nil {
		return err
	}

	domain := "gui/" + uid
	_, stderr, err := l.run(ctx, "launchctl", "bootstrap", domain, l.plistPath(label))
	if err != nil {
		if strings.Contains(stderr, "Already loaded") || strings.Contains(stderr, "service already loaded") {
			return nil
		}
		return cmdError("bootstrap launch agent "+label, stderr, err)
	}
	return nil
}

// bootoutAgent removes a label from the running launchd. Errors are
// ignored; the agent may simply not be loaded right now.
func (l *Launchd) bootoutAgent(ctx context.Context, label string) {
	uid, err := l.uid(ctx)
	if err != nil {
		l.log.Warnf("⚠️  Cannot resolve uid for bootout of %s: %v", label, err)
		return
	}

	target := fmt.Sprintf("gui/%s/%s", uid, label)
	_, _, _ = l.run(ctx, "launchctl", "bootout", target)
}
