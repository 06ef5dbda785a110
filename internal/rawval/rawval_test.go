package rawval

import "testing"

func TestString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"text", "text"},
		{42, "42"},
		{true, "true"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	if _, ok := List([]any{"a", "b"}); !ok {
		t.Error("List should accept []any")
	}
	if _, ok := List("scalar"); ok {
		t.Error("List should reject scalars")
	}
	if _, ok := List(map[string]any{}); ok {
		t.Error("List should reject mappings")
	}
}

func TestMapping(t *testing.T) {
	if m, ok := Mapping(map[string]any{"k": 1}); !ok || m["k"] != 1 {
		t.Error("Mapping should accept map[string]any")
	}

	m, ok := Mapping(map[any]any{"k": "v", 2: "w"})
	if !ok || m["k"] != "v" || m["2"] != "w" {
		t.Errorf("Mapping should normalize map[any]any, got %v", m)
	}

	if _, ok := Mapping([]any{}); ok {
		t.Error("Mapping should reject sequences")
	}
}

func TestSortedKeys(t *testing.T) {
	got := SortedKeys(map[string]any{"b": 1, "a": 2, "c": 3})
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortedKeys = %v, want %v", got, want)
		}
	}
}
