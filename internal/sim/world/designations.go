package world

import (
	"fmt"
	"sort"

	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

type DesignationState uint8

const (
	DesignationActive DesignationState = iota
	DesignationIgnored
	DesignationConsumed
)

func (s DesignationState) String() string {
	switch s {
	case DesignationActive:
		return "ACTIVE"
	case DesignationIgnored:
		return "IGNORED"
	default:
		return "CONSUMED"
	}
}

// Designation is an overseer intent to mine a tile. Only the lifecycle
// systems mutate it after creation.
type Designation struct {
	ID          string
	Target      Vec2i
	State       DesignationState
	CreatedTick uint64
}

func (w *World) newDesignationID() string {
	n := w.nextDesigNum.Add(1)
	return fmt.Sprintf("D%06d", n)
}

// DesignateMine records a mining intent at pos. Duplicates at the same
// target are allowed here; the dedup system resolves them next tick.
func (w *World) DesignateMine(nowTick uint64, pos Vec2i) *Designation {
	d := &Designation{
		ID:          w.newDesignationID(),
		Target:      pos,
		State:       DesignationActive,
		CreatedTick: nowTick,
	}
	w.designations[d.ID] = d
	return d
}

// DesignationCount reports how many designations are pending, for tests.
func (w *World) DesignationCount() int { return len(w.designations) }

func (w *World) sortedDesignationIDs() []string {
	ids := make([]string, 0, len(w.designations))
	for id := range w.designations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// systemDesignationDedup keeps exactly one Active designation per target
// tile: the lowest id (creation order) stays Active, the rest become
// Ignored. Ignored designations are inert and never convert to jobs.
func (w *World) systemDesignationDedup(nowTick uint64) {
	seen := map[Vec2i]bool{}
	for _, id := range w.sortedDesignationIDs() {
		d := w.designations[id]
		if d.State != DesignationActive {
			continue
		}
		if seen[d.Target] {
			d.State = DesignationIgnored
			continue
		}
		seen[d.Target] = true
	}
}

// systemDesignationToJobs converts each Active designation over a
// still-minable tile into a Mine job and consumes the designation. Stale
// targets (already mined, never a wall) are consumed without a job so old
// intents cannot act on changed terrain. Ignored designations are discarded.
func (w *World) systemDesignationToJobs(nowTick uint64) {
	for _, id := range w.sortedDesignationIDs() {
		d := w.designations[id]
		switch d.State {
		case DesignationIgnored:
			delete(w.designations, id)
		case DesignationActive:
			if k, ok := w.tiles.Get(d.Target.X, d.Target.Y); ok && k == TileWall {
				j := w.addJob(nowTick, &jobs.Job{
					Kind:     jobs.KindMine,
					Priority: jobs.DefaultPriority,
					Target:   jobs.Vec2i{X: d.Target.X, Y: d.Target.Y},
				})
				w.auditEvent(nowTick, "WORLD", "DESIGNATION_CONVERT", d.Target, "", map[string]any{
					"designation_id": id,
					"job_id":         j.ID,
				})
			} else {
				w.auditEvent(nowTick, "WORLD", "DESIGNATION_STALE", d.Target, "target not minable", map[string]any{
					"designation_id": id,
				})
			}
			d.State = DesignationConsumed
			delete(w.designations, id)
		}
	}
}
