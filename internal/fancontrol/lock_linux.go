//go:build linux

package fancontrol

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Lock is an exclusive daemon instance lock.
//
// Two fanctl daemons writing the same pwmN_enable/pwmN pair would fight
// each other invisibly; the lock makes the second one fail fast instead.
// It does not coordinate against other tools or the chip's own automatic
// control.
type Lock struct {
	f *os.File
}

// AcquireLock takes a non-blocking exclusive flock on path, creating the
// file if needed. The lock is released on Release or process exit.
func AcquireLock(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("fancontrol: open lock file %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("fancontrol: lock %s (is another instance running?): %w", path, err)
	}
	return &Lock{f: f}, nil
}

func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
