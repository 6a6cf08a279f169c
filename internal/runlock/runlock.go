// Package runlock keeps two musiclink runs from populating the same
// destination tree at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the destination lock.
var ErrLocked = errors.New("destination is locked by another musiclink run")

// Lock is an acquired per-destination lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for destRoot inside lockDir.
func PathFor(lockDir, destRoot string) string {
	abs, err := filepath.Abs(destRoot)
	if err != nil {
		abs = filepath.Clean(destRoot)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:])[:16]+".lock")
}

// Acquire takes the lock for destRoot without blocking. It fails with an
// error wrapping ErrLocked when another run holds it.
func Acquire(lockDir, destRoot string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := PathFor(lockDir, destRoot)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s (lock %s)", ErrLocked, destRoot, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks the destination. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
