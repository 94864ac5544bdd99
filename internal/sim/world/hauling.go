package world

import (
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// systemHauling advances every assigned Haul job by one tick. Per worker,
// exactly one of three mutually exclusive branches applies:
//
//   - inventory empty, not at source: nothing here; movement closes the gap.
//   - inventory empty, at source: pick up a carriable item still lying
//     there, or cancel the job outright when it vanished. Cancelling goes
//     through the paired removal, so the worker is idle again next
//     assignment pass instead of the job rotting in the active table.
//   - carrying, at destination: drop the item, clear the slot, complete.
//
// No branch touches the active table without the paired worker update.
func (w *World) systemHauling(nowTick uint64) {
	for _, wk := range w.sortedWorkers() {
		j := w.workerJob(wk)
		if j == nil || j.Kind != jobs.KindHaul {
			continue
		}
		source := Vec2i{X: j.Source.X, Y: j.Source.Y}
		dest := Vec2i{X: j.Dest.X, Y: j.Dest.Y}

		if wk.Carrying == "" {
			if wk.Pos != source {
				continue
			}
			e := w.carriableItemAt(source)
			if e == nil {
				w.finishJob(nowTick, j, wk, false, "source item gone")
				continue
			}
			w.pickUpItem(nowTick, wk, e)
			continue
		}

		if wk.Pos != dest {
			continue
		}
		e := w.items[wk.Carrying]
		if e == nil {
			// Carried item destroyed externally mid-haul.
			wk.Carrying = ""
			w.finishJob(nowTick, j, wk, false, "carried item gone")
			continue
		}
		w.putDownItem(nowTick, wk, e, dest)
		w.finishJob(nowTick, j, wk, true, "")
	}
}
