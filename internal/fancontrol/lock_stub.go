//go:build !linux

package fancontrol

// Lock is a no-op on platforms without flock; the daemon itself only
// makes sense on Linux anyway.
type Lock struct{}

func AcquireLock(path string) (*Lock, error) { return &Lock{}, nil }

func (l *Lock) Release() error { return nil }
