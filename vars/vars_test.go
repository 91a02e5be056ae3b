package vars

import "testing"

func TestFirstNonZero(t *testing.T) {
	if v := FirstNonZero("", "", "gpt-4", "mock"); v != "gpt-4" {
		t.Fatalf("got %q", v)
	}
	if v := FirstNonZero(0, 0); v != 0 {
		t.Fatalf("got %v", v)
	}
}

func TestDerefOrZero(t *testing.T) {
	if v := DerefOrZero[int](nil); v != 0 {
		t.Fatalf("got %v", v)
	}
	if v := DerefOrZero(PtrTo(42)); v != 42 {
		t.Fatalf("got %v", v)
	}
}

func TestStrToBool(t *testing.T) {
	for str, expected := range map[string]bool{
		"true": true,
		"Yes":  true,
		"on":   true,
		"no":   false,
		"":     false,
		"foo":  false,
	} {
		if got := StrToBool(str); got != expected {
			t.Fatalf("%q: got %v", str, got)
		}
	}
}
