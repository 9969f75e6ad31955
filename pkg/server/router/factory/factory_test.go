package factory

import "testing"

func TestNewRouter(t *testing.T) {
	for _, rt := range []string{"", "gin", "GIN", " gorilla "} {
		r, err := NewRouter(rt)
		if err != nil {
			t.Fatalf("NewRouter(%q): unexpected error: %v", rt, err)
		}
		if r == nil {
			t.Fatalf("NewRouter(%q): expected non-nil router", rt)
		}
	}
}

func TestNewRouter_Unsupported(t *testing.T) {
	if _, err := NewRouter("echo"); err == nil {
		t.Fatal("expected error for unsupported router type")
	}
}

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	if len(types) != 2 {
		t.Fatalf("expected 2 supported types, got %v", types)
	}
	if types[0] != "gin" || types[1] != "gorilla" {
		t.Fatalf("unexpected supported types: %v", types)
	}
}
