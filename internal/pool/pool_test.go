package pool

import "testing"

func TestPool_RoundRobin(t *testing.T) {
	p := New([]string{"a", "b", "c"})

	got := []string{p.Next(), p.Next(), p.Next(), p.Next()}
	want := []string{"a", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Next() call %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPool_SkipsFailedEndpoint(t *testing.T) {
	p := New([]string{"a", "b", "c"})

	p.MarkFailed("b")

	seen := map[string]int{}
	for i := 0; i < 6; i++ {
		seen[p.Next()]++
	}
	if seen["b"] != 0 {
		t.Errorf("Expected failed endpoint b to be skipped, got %d hits", seen["b"])
	}
	if seen["a"] == 0 || seen["c"] == 0 {
		t.Errorf("Expected healthy endpoints to keep rotating, got %v", seen)
	}
}

func TestPool_RecoversAfterMarkHealthy(t *testing.T) {
	p := New([]string{"a", "b"})

	p.MarkFailed("b")
	p.MarkHealthy("b")

	seen := map[string]int{}
	for i := 0; i < 4; i++ {
		seen[p.Next()]++
	}
	if seen["b"] != 2 {
		t.Errorf("Expected recovered endpoint back in rotation, got %v", seen)
	}
}

func TestPool_AllFailedResets(t *testing.T) {
	p := New([]string{"a", "b"})

	p.MarkFailed("a")
	p.MarkFailed("b")

	if got := p.Next(); got != "a" {
		t.Errorf("Expected first endpoint when all failed, got %s", got)
	}

	_, healthy, failed := p.Stats()
	if failed != 0 || healthy != 2 {
		t.Errorf("Expected failure map reset, got healthy=%d failed=%d", healthy, failed)
	}
}

func TestPool_Empty(t *testing.T) {
	p := New(nil)
	if got := p.Next(); got != "" {
		t.Errorf("Expected empty string from empty pool, got %s", got)
	}
}

func TestPool_Stats(t *testing.T) {
	p := New([]string{"a", "b", "c"})
	p.MarkFailed("c")

	total, healthy, failed := p.Stats()
	if total != 3 || healthy != 2 || failed != 1 {
		t.Errorf("Expected 3/2/1, got %d/%d/%d", total, healthy, failed)
	}
}
