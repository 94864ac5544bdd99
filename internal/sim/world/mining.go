package world

import (
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// systemMining advances every assigned Mine job by one tick. The worker
// must stand next to the target (the wall tile itself is unwalkable);
// getting there is the movement system's problem. Raced targets (the wall
// is already gone) cancel through the same paired removal as completion,
// never leaving the job dangling.
func (w *World) systemMining(nowTick uint64) {
	for _, wk := range w.sortedWorkers() {
		j := w.workerJob(wk)
		if j == nil || j.Kind != jobs.KindMine {
			continue
		}
		target := Vec2i{X: j.Target.X, Y: j.Target.Y}
		if Manhattan(wk.Pos, target) > 1 {
			continue
		}

		k, ok := w.tiles.Get(target.X, target.Y)
		if !ok || k != TileWall {
			w.finishJob(nowTick, j, wk, false, "target already mined")
			continue
		}

		w.setTile(nowTick, wk.ID, target, TileFloor, "MINE")
		w.spawnItemEntity(nowTick, wk.ID, target, ItemStone, true, "MINE_DROP")
		w.finishJob(nowTick, j, wk, true, "")
	}
}
