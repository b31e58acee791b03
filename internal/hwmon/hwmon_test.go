package hwmon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeChip creates a fake hwmon chip directory under root with the given
// name attribute and extra attribute files.
func writeChip(t *testing.T, root, dir, name string, attrs map[string]string) string {
	t.Helper()
	p := filepath.Join(root, dir)
	if err := os.MkdirAll(p, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(p, "name"), []byte(name+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	for attr, val := range attrs {
		if err := os.WriteFile(filepath.Join(p, attr), []byte(val), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return p
}

func TestFind_MatchesNameContent(t *testing.T) {
	root := t.TempDir()
	writeChip(t, root, "hwmon0", "acpitz", nil)
	want := writeChip(t, root, "hwmon1", "k10temp", nil)

	dev, err := Find(root, "k10temp")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if dev.Path != want {
		t.Fatalf("path=%q want %q", dev.Path, want)
	}
	if dev.Name != "k10temp" {
		t.Fatalf("name=%q want k10temp", dev.Name)
	}
}

func TestFind_NotFound(t *testing.T) {
	root := t.TempDir()
	writeChip(t, root, "hwmon0", "acpitz", nil)

	_, err := Find(root, "k10temp")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestFind_UnreadableRoot(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing"), "k10temp")
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("unreadable root should not report ErrNotFound, got %v", err)
	}
}

func TestFind_SkipsEntriesWithoutName(t *testing.T) {
	root := t.TempDir()
	// A directory without a name attribute must be skipped, not fatal.
	if err := os.MkdirAll(filepath.Join(root, "hwmon0"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	writeChip(t, root, "hwmon1", "nct6775", nil)

	dev, err := FindAny(root, DefaultPWMChips)
	if err != nil {
		t.Fatalf("FindAny: %v", err)
	}
	if dev.Name != "nct6775" {
		t.Fatalf("name=%q want nct6775", dev.Name)
	}
}

func TestFindAny_NoCandidateMatches(t *testing.T) {
	root := t.TempDir()
	writeChip(t, root, "hwmon0", "k10temp", nil)
	writeChip(t, root, "hwmon1", "acpitz", nil)

	_, err := FindAny(root, DefaultPWMChips)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestReadIntAttr(t *testing.T) {
	root := t.TempDir()
	writeChip(t, root, "hwmon0", "nct6775", map[string]string{
		"pwm1": "128\n",
		"junk": "not-a-number\n",
	})

	dev, err := Find(root, "nct6775")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	n, err := dev.ReadIntAttr("pwm1")
	if err != nil {
		t.Fatalf("ReadIntAttr: %v", err)
	}
	if n != 128 {
		t.Fatalf("n=%d want 128", n)
	}

	if _, err := dev.ReadIntAttr("junk"); !errors.Is(err, ErrInvalidData) {
		t.Fatalf("err=%v want ErrInvalidData", err)
	}
	if _, err := dev.ReadIntAttr("absent"); err == nil {
		t.Fatalf("expected error for missing attribute")
	}
}

func TestWriteAttr_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeChip(t, root, "hwmon0", "nct6775", map[string]string{"pwm1": "0"})

	dev, err := Find(root, "nct6775")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if err := dev.WriteAttr("pwm1", "200"); err != nil {
		t.Fatalf("WriteAttr: %v", err)
	}
	got, err := dev.ReadAttr("pwm1")
	if err != nil {
		t.Fatalf("ReadAttr: %v", err)
	}
	if got != "200" {
		t.Fatalf("pwm1=%q want 200", got)
	}
}

func TestWriteAttr_MissingFile(t *testing.T) {
	root := t.TempDir()
	writeChip(t, root, "hwmon0", "nct6775", nil)

	dev, err := Find(root, "nct6775")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if err := dev.WriteAttr("pwm1", "200"); err == nil {
		t.Fatalf("expected error writing missing attribute")
	}
}

func TestModuleLoaded(t *testing.T) {
	old := moduleRoot
	moduleRoot = t.TempDir()
	t.Cleanup(func() { moduleRoot = old })

	if ModuleLoaded("nct6775") {
		t.Fatalf("module should not appear loaded")
	}
	if err := os.MkdirAll(filepath.Join(moduleRoot, "nct6775"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if !ModuleLoaded("nct6775") {
		t.Fatalf("module should appear loaded")
	}
}
