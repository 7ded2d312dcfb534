package theme

import "testing"

func TestResolveFallsBackToDefault(t *testing.T) {
	if got := Resolve("unknown").Key; got != DefaultKey {
		t.Fatalf("expected fallback to %s, got %s", DefaultKey, got)
	}
	if got := Resolve("  NIGHT ").Key; got != "night" {
		t.Fatalf("expected night theme, got %s", got)
	}
}

func TestOptionsAreRegistered(t *testing.T) {
	for _, option := range Options() {
		if !Valid(option.Value) {
			t.Fatalf("option %q has no registered theme", option.Value)
		}
	}
	if Valid("sepia") {
		t.Fatal("expected unregistered theme to be invalid")
	}
}
