package world

import "testing"

// newFlatWorld builds a world whose terrain is entirely floor, so tests can
// carve exactly the walls they need.
func newFlatWorld(t *testing.T, width, height int) *World {
	t.Helper()
	w, err := New(WorldConfig{ID: "test", TickRateHz: 10, Width: width, Height: height, Seed: 7})
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			w.tiles.set(x, y, TileFloor)
		}
	}
	w.paths.Invalidate()
	return w
}

func placeWall(w *World, x, y int) {
	w.tiles.set(x, y, TileWall)
	w.paths.Invalidate()
}

func step(t *testing.T, w *World, acts []ActionEnvelope) string {
	t.Helper()
	_, digest, err := w.StepOnce(acts)
	if err != nil {
		t.Fatalf("step tick %d: %v", w.CurrentTick(), err)
	}
	return digest
}
