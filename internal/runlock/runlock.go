// Package runlock keeps two runs from sharing one interchange file.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"jellyboxd/internal/services"
)

// Lock is an exclusive advisory lock on "<path>.lock".
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file guarding target.
func PathFor(target string) string {
	return target + ".lock"
}

// Acquire takes the lock guarding target without blocking. A lock held by
// another process fails with services.ErrPrecondition.
func Acquire(target string) (*Lock, error) {
	lockPath := PathFor(target)
	if dir := filepath.Dir(lockPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure lock directory: %w", err)
		}
	}

	l := &Lock{path: lockPath, lock: flock.New(lockPath)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrPrecondition, "run", "acquire lock", "another run is using "+target, nil)
	}
	return l, nil
}

// Path reports the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks the lock. The file stays on disk: removing it would let a
// waiter holding the old inode and a newcomer on a fresh file both succeed.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release run lock: %w", err)
	}
	return nil
}
