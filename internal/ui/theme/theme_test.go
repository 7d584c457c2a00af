package theme

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAvailableIsSorted(t *testing.T) {
	if diff := cmp.Diff([]string{"gruvbox", "nord", "tokyonight"}, Available()); diff != "" {
		t.Fatalf("available mismatch (-want +got):\n%s", diff)
	}
}

func TestSetAndCycle(t *testing.T) {
	original := CurrentName()
	t.Cleanup(func() { Set(original) })

	if Set("missing") {
		t.Fatal("unknown palette should not be set")
	}
	if !Set("nord") || CurrentName() != "nord" {
		t.Fatalf("expected nord, got %s", CurrentName())
	}
	if Current().Primary.Dark != "#88C0D0" {
		t.Fatalf("unexpected palette %+v", Current().Primary)
	}
	if got := Cycle(); got != "tokyonight" {
		t.Fatalf("cycle from nord = %q", got)
	}
	if got := Cycle(); got != "gruvbox" {
		t.Fatalf("cycle should wrap, got %q", got)
	}
}

func TestPalettesAreComplete(t *testing.T) {
	for _, name := range Available() {
		Set(name)
		p := Current()
		for label, col := range map[string]string{
			"primary": p.Primary.Dark, "error": p.Error.Dark, "text": p.Text.Light,
			"surface": p.Surface.Dark, "border": p.Border.Light,
		} {
			if col == "" {
				t.Errorf("%s: %s color missing", name, label)
			}
		}
	}
	Set("tokyonight")
}
