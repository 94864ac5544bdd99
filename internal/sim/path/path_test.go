package path

import (
	"strings"
	"testing"
)

// gridFromRows builds a test grid from strings: '#' blocks, anything else walks.
type testGrid struct {
	rows []string
}

func gridFromRows(s string) *testGrid {
	return &testGrid{rows: strings.Split(strings.TrimSpace(s), "\n")}
}

func (g *testGrid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g.rows) && x >= 0 && x < len(g.rows[y])
}

func (g *testGrid) Walkable(x, y int) bool {
	return g.InBounds(x, y) && g.rows[y][x] != '#'
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(64)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return s
}

func TestPath_RoutesAroundWall(t *testing.T) {
	g := gridFromRows(`
.....
.###.
.....
`)
	s := newTestService(t)

	r, ok := s.Path(g, Point{0, 0}, Point{4, 0})
	if !ok {
		t.Fatalf("want a path across the top row")
	}
	if r.Cost != 4 || len(r.Steps) != 5 {
		t.Fatalf("top row should be direct: cost=%d steps=%d", r.Cost, len(r.Steps))
	}

	// From below the wall to above it: the detour goes around an end.
	r, ok = s.Path(g, Point{2, 2}, Point{2, 0})
	if !ok {
		t.Fatalf("want a path around the wall")
	}
	if r.Cost != 6 {
		t.Fatalf("detour cost: got %d, want 6", r.Cost)
	}
	if r.Steps[0] != (Point{2, 2}) || r.Steps[len(r.Steps)-1] != (Point{2, 0}) {
		t.Fatalf("steps must run start to goal: %v", r.Steps)
	}
	if r.Cost != len(r.Steps)-1 {
		t.Fatalf("cost %d disagrees with %d steps", r.Cost, len(r.Steps))
	}
	for _, p := range r.Steps {
		if !g.Walkable(p.X, p.Y) {
			t.Fatalf("path crosses blocked tile %v", p)
		}
	}
}

func TestPath_StartEqualsGoal(t *testing.T) {
	g := gridFromRows(`...`)
	s := newTestService(t)
	r, ok := s.Path(g, Point{1, 0}, Point{1, 0})
	if !ok || r.Cost != 0 || len(r.Steps) != 1 {
		t.Fatalf("trivial path: ok=%v r=%+v", ok, r)
	}
}

func TestPath_NoRoute(t *testing.T) {
	g := gridFromRows(`
..#..
..#..
..#..
`)
	s := newTestService(t)
	if _, ok := s.Path(g, Point{0, 1}, Point{4, 1}); ok {
		t.Fatalf("wall spans the map, no path should exist")
	}
	// Blocked or out-of-bounds goals fail without searching.
	if _, ok := s.Path(g, Point{0, 0}, Point{2, 0}); ok {
		t.Fatalf("goal on a wall must fail")
	}
	if _, ok := s.Path(g, Point{0, 0}, Point{9, 9}); ok {
		t.Fatalf("goal outside the grid must fail")
	}
}

func TestPath_CacheCountsHitsAndMisses(t *testing.T) {
	g := gridFromRows(`
.....
.....
`)
	s := newTestService(t)

	s.Path(g, Point{0, 0}, Point{4, 1})
	s.Path(g, Point{0, 0}, Point{4, 1})
	s.Path(g, Point{0, 0}, Point{4, 1})
	if h, m := s.Stats(); h != 2 || m != 1 {
		t.Fatalf("hits=%d misses=%d, want 2/1", h, m)
	}

	s.ResetStats()
	if h, m := s.Stats(); h != 0 || m != 0 {
		t.Fatalf("counters survive reset: %d/%d", h, m)
	}

	// Entries outlive a stats reset but not an invalidation.
	s.Path(g, Point{0, 0}, Point{4, 1})
	if h, _ := s.Stats(); h != 1 {
		t.Fatalf("cached entry should hit after reset, hits=%d", h)
	}
	s.Invalidate()
	s.ResetStats()
	s.Path(g, Point{0, 0}, Point{4, 1})
	if h, m := s.Stats(); h != 0 || m != 1 {
		t.Fatalf("invalidate must force recompute: hits=%d misses=%d", h, m)
	}
}

func TestPath_NegativeResultsCached(t *testing.T) {
	g := gridFromRows(`
.#.
.#.
`)
	s := newTestService(t)

	if _, ok := s.Path(g, Point{0, 0}, Point{2, 0}); ok {
		t.Fatalf("want unreachable")
	}
	if _, ok := s.Path(g, Point{0, 0}, Point{2, 0}); ok {
		t.Fatalf("want unreachable on repeat")
	}
	if h, m := s.Stats(); h != 1 || m != 1 {
		t.Fatalf("failure should be served from cache: hits=%d misses=%d", h, m)
	}
}

func TestBatch_ResolvesEachRequest(t *testing.T) {
	g := gridFromRows(`
....
.##.
....
`)
	s := newTestService(t)
	out := s.Batch(g, []Request{
		{Start: Point{0, 0}, Goal: Point{3, 0}},
		{Start: Point{0, 0}, Goal: Point{1, 1}}, // blocked goal
		{Start: Point{0, 2}, Goal: Point{3, 2}},
	})
	if len(out) != 3 {
		t.Fatalf("got %d results", len(out))
	}
	if out[0] == nil || out[0].Cost != 3 {
		t.Fatalf("first route: %+v", out[0])
	}
	if out[1] != nil {
		t.Fatalf("blocked goal should yield nil, got %+v", out[1])
	}
	if out[2] == nil || out[2].Cost != 3 {
		t.Fatalf("third route: %+v", out[2])
	}
}

func TestPath_DeterministicAcrossServices(t *testing.T) {
	g := gridFromRows(`
......
.#.#..
.#.#..
......
`)
	a := newTestService(t)
	b := newTestService(t)
	ra, okA := a.Path(g, Point{0, 0}, Point{5, 3})
	rb, okB := b.Path(g, Point{0, 0}, Point{5, 3})
	if !okA || !okB {
		t.Fatalf("both searches should succeed")
	}
	if len(ra.Steps) != len(rb.Steps) {
		t.Fatalf("step counts differ: %d vs %d", len(ra.Steps), len(rb.Steps))
	}
	for i := range ra.Steps {
		if ra.Steps[i] != rb.Steps[i] {
			t.Fatalf("routes diverge at %d: %v vs %v", i, ra.Steps[i], rb.Steps[i])
		}
	}
}
