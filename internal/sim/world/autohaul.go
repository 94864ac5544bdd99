package world

import (
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// systemAutoHaul turns items spawned during the current tick into Haul jobs
// toward the nearest accepting stockpile. Only this tick's spawns are
// considered; reprocessing the whole item table would mint duplicate jobs
// every tick. Items with no accepting stockpile are simply left where they
// fell until conditions change.
func (w *World) systemAutoHaul(nowTick uint64) {
	for _, id := range w.spawnedThisTick {
		e := w.items[id]
		if e == nil || !e.Carriable || e.HeldBy != "" {
			continue
		}
		sp := w.nearestStockpile(e.Kind, e.Pos)
		if sp == nil {
			continue
		}
		j := w.addJob(nowTick, &jobs.Job{
			Kind:     jobs.KindHaul,
			Priority: jobs.DefaultPriority,
			Source:   jobs.Vec2i{X: e.Pos.X, Y: e.Pos.Y},
			Dest:     jobs.Vec2i{X: sp.Pos.X, Y: sp.Pos.Y},
		})
		w.auditEvent(nowTick, "WORLD", "AUTO_HAUL", e.Pos, "", map[string]any{
			"job_id":       j.ID,
			"entity_id":    id,
			"stockpile_id": sp.ID,
		})
	}
}
