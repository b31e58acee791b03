// Package hwmon provides access to the Linux hwmon sysfs tree
// (/sys/class/hwmon).
//
// Chip directories are located by the content of their "name" attribute,
// never by path: the numeric hwmonN suffix assigned to a chip instance is
// not stable across boots or kernel versions. Every operation performs a
// fresh lookup; nothing is cached.
package hwmon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultRoot is the standard hwmon class directory.
const DefaultRoot = "/sys/class/hwmon"

var (
	// ErrNotFound means no chip directory matched the requested name(s).
	ErrNotFound = errors.New("hwmon: no matching device")
	// ErrInvalidData means an attribute file did not contain the expected
	// numeric content.
	ErrInvalidData = errors.New("hwmon: invalid attribute data")
	// ErrInvalidInput means a caller-supplied value is outside the
	// enumerated set (e.g. a PWM mode string).
	ErrInvalidInput = errors.New("hwmon: invalid input")
)

// Device is a located hwmon chip directory.
type Device struct {
	// Path is the chip directory, e.g. /sys/class/hwmon/hwmon3.
	Path string
	// Name is the trimmed content of the chip's name attribute.
	Name string
}

// Find returns the first chip under root whose name attribute equals name.
func Find(root, name string) (Device, error) {
	dev, err := locate(root, func(n string) bool { return n == name })
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Device{}, fmt.Errorf("hwmon: sensor %q: %w", name, ErrNotFound)
		}
		return Device{}, err
	}
	return dev, nil
}

// FindAny returns the first chip under root whose name attribute matches
// any of the candidate names.
//
// Directory iteration order decides which chip wins when several match;
// that order is filesystem-dependent and not guaranteed stable.
func FindAny(root string, candidates []string) (Device, error) {
	dev, err := locate(root, func(n string) bool {
		for _, c := range candidates {
			if n == c {
				return true
			}
		}
		return false
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Device{}, fmt.Errorf("hwmon: none of %v found: %w", candidates, ErrNotFound)
		}
		return Device{}, err
	}
	return dev, nil
}

func locate(root string, match func(name string) bool) (Device, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return Device{}, fmt.Errorf("hwmon: read %s: %w", root, err)
	}
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())
		b, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil {
			// Entries without a readable name attribute are skipped, not
			// fatal: the class directory can contain unrelated nodes.
			continue
		}
		name := strings.TrimSpace(string(b))
		if match(name) {
			return Device{Path: dir, Name: name}, nil
		}
	}
	return Device{}, ErrNotFound
}

// ReadAttr reads the named attribute file and returns its content with
// surrounding whitespace trimmed.
func (d Device) ReadAttr(attr string) (string, error) {
	b, err := os.ReadFile(filepath.Join(d.Path, attr))
	if err != nil {
		return "", fmt.Errorf("hwmon: read %s/%s: %w", d.Name, attr, err)
	}
	return strings.TrimSpace(string(b)), nil
}

// ReadIntAttr reads the named attribute and parses it as a signed integer.
func (d Device) ReadIntAttr(attr string) (int, error) {
	s, err := d.ReadAttr(attr)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("hwmon: %s/%s=%q: %w", d.Name, attr, s, ErrInvalidData)
	}
	return n, nil
}

// WriteAttr writes value to the named attribute file.
//
// The file is opened O_WRONLY without truncation flags: sysfs attributes
// reject O_TRUNC/O_CREATE even when mode bits allow writes, resulting in
// confusing EACCES at open() time.
func (d Device) WriteAttr(attr, value string) error {
	p := filepath.Join(d.Path, attr)
	f, err := os.OpenFile(p, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("hwmon: open %s/%s: %w", d.Name, attr, err)
	}
	_, werr := f.WriteString(value)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("hwmon: write %s/%s: %w", d.Name, attr, werr)
	}
	if cerr != nil {
		return fmt.Errorf("hwmon: write %s/%s: %w", d.Name, attr, cerr)
	}
	return nil
}

// HasAttr reports whether the named attribute file exists.
func (d Device) HasAttr(attr string) bool {
	_, err := os.Stat(filepath.Join(d.Path, attr))
	return err == nil
}
