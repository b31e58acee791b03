package hwmon

import (
	"os"
	"path/filepath"
)

// DefaultKernelModule is the driver that exposes the Super-I/O PWM
// attributes. Without it loaded there is nothing to control.
const DefaultKernelModule = "nct6775"

var moduleRoot = "/sys/module"

// ModuleLoaded reports whether the named kernel module appears loaded.
// Callers use this as a startup advisory only; absence never blocks a
// command, since attribute access fails with a precise error anyway.
func ModuleLoaded(name string) bool {
	_, err := os.Stat(filepath.Join(moduleRoot, name))
	return err == nil
}
