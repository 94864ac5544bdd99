package world

import (
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/path"
)

// systemMovement walks each assigned worker one step toward its job's
// current goal using the path service. Mining targets are walls, so miners
// path to the cheapest walkable neighbor instead of the wall itself.
// No path this tick is not an error; terrain may change and free the route.
func (w *World) systemMovement(nowTick uint64) {
	for _, wk := range w.sortedWorkers() {
		j := w.workerJob(wk)
		if j == nil {
			continue
		}

		var goal Vec2i
		switch j.Kind {
		case jobs.KindMine:
			target := Vec2i{X: j.Target.X, Y: j.Target.Y}
			if Manhattan(wk.Pos, target) <= 1 {
				continue
			}
			g, ok := w.bestAdjacentGoal(wk.Pos, target)
			if !ok {
				continue
			}
			goal = g
		case jobs.KindHaul:
			if wk.Carrying == "" {
				goal = Vec2i{X: j.Source.X, Y: j.Source.Y}
			} else {
				goal = Vec2i{X: j.Dest.X, Y: j.Dest.Y}
			}
			if wk.Pos == goal {
				continue
			}
		default:
			continue
		}

		res, ok := w.paths.Path(w.tiles, path.Point{X: wk.Pos.X, Y: wk.Pos.Y}, path.Point{X: goal.X, Y: goal.Y})
		if !ok || len(res.Steps) < 2 {
			continue
		}
		next := res.Steps[1]
		wk.Pos = Vec2i{X: next.X, Y: next.Y}
	}
}

// bestAdjacentGoal picks the reachable walkable neighbor of target with the
// shortest path from pos, breaking ties in fixed neighbor order.
func (w *World) bestAdjacentGoal(pos, target Vec2i) (Vec2i, bool) {
	neighbors := [4]Vec2i{
		{target.X + 1, target.Y},
		{target.X - 1, target.Y},
		{target.X, target.Y + 1},
		{target.X, target.Y - 1},
	}
	var best Vec2i
	bestCost := -1
	for _, n := range neighbors {
		if !w.tiles.Walkable(n.X, n.Y) {
			continue
		}
		res, ok := w.paths.Path(w.tiles, path.Point{X: pos.X, Y: pos.Y}, path.Point{X: n.X, Y: n.Y})
		if !ok {
			continue
		}
		if bestCost < 0 || res.Cost < bestCost {
			best = n
			bestCost = res.Cost
		}
	}
	return best, bestCost >= 0
}
