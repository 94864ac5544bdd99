// Package path provides A* pathfinding over a walkability grid with an LRU
// result cache. Movement is 4-directional with uniform step cost; the
// heuristic is Manhattan distance. The cache keeps independent hit/miss
// counters so shells and tests can observe its effectiveness, and must be
// invalidated by the owner whenever the grid changes.
package path

import (
	"container/heap"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Grid is the walkability query surface the service needs. The world's tile
// map implements it; tests use small literal grids.
type Grid interface {
	InBounds(x, y int) bool
	Walkable(x, y int) bool
}

type Point struct{ X, Y int }

// Result is a computed path. Steps includes both start and goal; Cost is the
// number of moves (len(Steps)-1).
type Result struct {
	Steps []Point
	Cost  int
}

// Request pairs a start and goal for batch queries.
type Request struct {
	Start Point
	Goal  Point
}

type cacheKey struct {
	sx, sy, gx, gy int
}

// Service caches path results between grid mutations.
type Service struct {
	mu     sync.Mutex
	cache  *lru.Cache[cacheKey, *Result]
	hits   uint64
	misses uint64
}

func NewService(capacity int) (*Service, error) {
	if capacity < 1 {
		capacity = 1
	}
	c, err := lru.New[cacheKey, *Result](capacity)
	if err != nil {
		return nil, err
	}
	return &Service{cache: c}, nil
}

// Path returns the shortest path from start to goal, or (nil, false) when no
// path exists. Negative results are cached too.
func (s *Service) Path(g Grid, start, goal Point) (*Result, bool) {
	key := cacheKey{start.X, start.Y, goal.X, goal.Y}

	s.mu.Lock()
	if r, ok := s.cache.Get(key); ok {
		s.hits++
		s.mu.Unlock()
		return r, r != nil
	}
	s.misses++
	s.mu.Unlock()

	r := astar(g, start, goal)

	s.mu.Lock()
	s.cache.Add(key, r)
	s.mu.Unlock()
	return r, r != nil
}

// Batch resolves several requests; each is cached independently.
func (s *Service) Batch(g Grid, reqs []Request) []*Result {
	out := make([]*Result, 0, len(reqs))
	for _, r := range reqs {
		res, _ := s.Path(g, r.Start, r.Goal)
		out = append(out, res)
	}
	return out
}

// Invalidate drops all cached results. Call after any walkability change.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cache.Purge()
	s.mu.Unlock()
}

// Stats returns cumulative cache hits and misses.
func (s *Service) Stats() (hits, misses uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits, s.misses
}

// ResetStats zeroes the hit/miss counters without touching cached entries.
func (s *Service) ResetStats() {
	s.mu.Lock()
	s.hits, s.misses = 0, 0
	s.mu.Unlock()
}

func manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

type node struct {
	p     Point
	g     int // cost from start
	f     int // g + heuristic
	index int
}

type openHeap []*node

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	// Deterministic tie-break keeps replays stable.
	if h[i].p.Y != h[j].p.Y {
		return h[i].p.Y < h[j].p.Y
	}
	return h[i].p.X < h[j].p.X
}
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *openHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *openHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*h = old[:len(old)-1]
	return n
}

var dirs = [4]Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

func astar(g Grid, start, goal Point) *Result {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil
	}
	if !g.Walkable(goal.X, goal.Y) {
		return nil
	}
	if start == goal {
		return &Result{Steps: []Point{start}, Cost: 0}
	}

	open := &openHeap{}
	heap.Init(open)
	heap.Push(open, &node{p: start, g: 0, f: manhattan(start, goal)})

	cameFrom := map[Point]Point{}
	best := map[Point]int{start: 0}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.p == goal {
			return &Result{Steps: rebuild(cameFrom, start, goal), Cost: cur.g}
		}
		if cur.g > best[cur.p] {
			continue // stale heap entry
		}
		for _, d := range dirs {
			np := Point{cur.p.X + d.X, cur.p.Y + d.Y}
			if !g.InBounds(np.X, np.Y) || !g.Walkable(np.X, np.Y) {
				continue
			}
			ng := cur.g + 1
			if prev, ok := best[np]; ok && ng >= prev {
				continue
			}
			best[np] = ng
			cameFrom[np] = cur.p
			heap.Push(open, &node{p: np, g: ng, f: ng + manhattan(np, goal)})
		}
	}
	return nil
}

func rebuild(cameFrom map[Point]Point, start, goal Point) []Point {
	steps := []Point{goal}
	for p := goal; p != start; {
		p = cameFrom[p]
		steps = append(steps, p)
	}
	// Reverse into start..goal order.
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}
