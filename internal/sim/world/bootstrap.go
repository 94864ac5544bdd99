package world

// NewDemoWorld builds a small populated camp shared by the TUI shell and
// tests: one miner, one carrier, a catch-all stockpile, and a handful of
// mine designations around the nearest wall cluster.
func NewDemoWorld(cfg WorldConfig) (*World, error) {
	w, err := New(cfg)
	if err != nil {
		return nil, err
	}

	spawn := Vec2i{X: 1, Y: 1}
	w.SpawnWorker("Grak", spawn, true, false)
	w.SpawnWorker("Urok", spawn, false, true)
	w.AddStockpile(Vec2i{X: 3, Y: 3}, nil)

	// Designate the first few walls reachable from spawn, scanning in row
	// order so the demo is identical for a given seed.
	found := 0
	for y := 0; y < w.cfg.Height && found < 4; y++ {
		for x := 0; x < w.cfg.Width && found < 4; x++ {
			if k, _ := w.tiles.Get(x, y); k != TileWall {
				continue
			}
			if !w.hasWalkableNeighbor(Vec2i{X: x, Y: y}) {
				continue
			}
			w.DesignateMine(0, Vec2i{X: x, Y: y})
			found++
		}
	}
	return w, nil
}

func (w *World) hasWalkableNeighbor(p Vec2i) bool {
	for _, n := range [4]Vec2i{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
		if w.tiles.Walkable(n.X, n.Y) {
			return true
		}
	}
	return false
}
