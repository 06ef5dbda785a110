package session

import "testing"

func TestStoreCreateAndFind(t *testing.T) {
	s := NewStore()

	ctx := s.CreateNamed("app")
	if got := s.FindByName("app"); got != ctx {
		t.Error("FindByName should return the created context")
	}
	if s.FindByName("other") != nil {
		t.Error("FindByName should return nil for unknown names")
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	ctx := s.CreateNamed("app")

	s.Delete(ctx)
	if s.FindByName("app") != nil {
		t.Error("deleted context should not be findable")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	// Deleting again is a no-op.
	s.Delete(ctx)
	s.Delete(nil)
}

func TestStoreDeleteStaleHandle(t *testing.T) {
	s := NewStore()
	old := s.CreateNamed("app")
	replacement := s.CreateNamed("app")

	// A handle displaced by CreateNamed no longer owns the slot.
	s.Delete(old)
	if s.FindByName("app") != replacement {
		t.Error("deleting a displaced handle must not remove the replacement")
	}
}

func TestStoreNamesOrder(t *testing.T) {
	s := NewStore()
	s.CreateNamed("b")
	s.CreateNamed("a")
	s.CreateNamed("c")

	names := s.Names()
	want := []string{"b", "a", "c"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestContextPatterns(t *testing.T) {
	s := NewStore()
	ctx := s.CreateNamed("app")

	ctx.AddIncludePattern("https://example.com.*")
	ctx.AddIncludePattern("https://example.com/api/.*")
	ctx.AddExcludePattern(".*logout.*")

	if !ctx.HasIncludePattern("https://example.com.*") {
		t.Error("HasIncludePattern should find registered pattern")
	}
	if ctx.HasIncludePattern(".*logout.*") {
		t.Error("HasIncludePattern must not consult exclude patterns")
	}
	if got := len(ctx.IncludePatterns()); got != 2 {
		t.Errorf("IncludePatterns() len = %d, want 2", got)
	}
	if got := len(ctx.ExcludePatterns()); got != 1 {
		t.Errorf("ExcludePatterns() len = %d, want 1", got)
	}

	// Returned slices are copies.
	ctx.IncludePatterns()[0] = "mutated"
	if ctx.IncludePatterns()[0] != "https://example.com.*" {
		t.Error("IncludePatterns must return a copy")
	}
}
