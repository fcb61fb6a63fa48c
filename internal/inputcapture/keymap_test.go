package inputcapture

import "testing"

func TestKeyForPrintableCharsResolveThroughKeychar(t *testing.T) {
	cases := []struct {
		char rune
		want string
	}{
		{'a', "a"},
		{'Z', "z"},
		{'7', "7"},
		{'/', "slash"},
		{' ', "space"},
	}
	for _, c := range cases {
		got := keyFor(c, 0)
		if got.String() != c.want {
			t.Errorf("keyFor(%q, 0) = %q, want %q", c.char, got.String(), c.want)
		}
	}
}

func TestKeyForNonPrintableResolvesThroughKeycode(t *testing.T) {
	got := keyFor(0, 9) // escape
	if got.String() != "escape" {
		t.Fatalf("keyFor(0, 9) = %q, want escape", got.String())
	}
}

func TestKeyForUnrecognizedFallsBackToUnknownWithCode(t *testing.T) {
	got := keyFor(0, 65535)
	if !got.IsUnknown() {
		t.Fatalf("expected unrecognized keycode to fall back to unknown, got %+v", got)
	}
	if got.Code() != 65535 {
		t.Fatalf("Code() = %d, want 65535", got.Code())
	}
}
