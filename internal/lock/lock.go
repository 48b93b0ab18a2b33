package lock

type Locker interface {
	IsSaveRunning() bool
	LockForSave() error
	UnlockForSave() error
}
