package main

import (
	"github.com/gofrs/flock"

	"github.com/catnapper321/downd/internal/config"
)

// AcquireLock tries to take the single-instance lock at the runtime
// directory's lock file, the same role surge/cmd/server.go gives
// gofrs/flock for its own background-server singleton. It reports
// whether this process became the lock holder.
func AcquireLock() (*flock.Flock, bool, error) {
	fl := flock.New(config.LockFilePath())
	ok, err := fl.TryLock()
	if err != nil {
		return nil, false, err
	}
	return fl, ok, nil
}

// ReleaseLock unlocks a lock previously returned by AcquireLock.
func ReleaseLock(fl *flock.Flock) error {
	if fl == nil {
		return nil
	}
	return fl.Unlock()
}
