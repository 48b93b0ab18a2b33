package lock

import (
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// FileLock serializes saves across cronman processes so two invocations
// cannot interleave their read-modify-write cycles.
type FileLock struct {
	flock *flock.Flock
}

func (f *FileLock) IsSaveRunning() bool {
	locked, err := f.flock.TryLock()
	if err != nil || !locked {
		return true
	}
	_ = f.flock.Unlock()
	return false
}

func (f *FileLock) LockForSave() error {
	for {
		locked, err := f.flock.TryLock()
		if err != nil {
			return err
		}
		if locked {
			return nil
		}
		time.Sleep(1 * time.Second)
	}
}

func (f *FileLock) UnlockForSave() error {
	return f.flock.Unlock()
}

func New() Locker {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}

	lockDir := filepath.Join(cacheDir, "cronman")
	if err := os.MkdirAll(lockDir, os.ModePerm); err != nil {
		lockDir = cacheDir
	}

	lockFile := filepath.Join(lockDir, "save.lock")

	return &FileLock{
		flock: flock.New(lockFile),
	}
}
