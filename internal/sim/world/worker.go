package world

import (
	"fmt"
	"sort"
)

// Worker is a camp agent. JobID is its assignment reference: it must agree
// with the Active Job Table at every tick boundary (verifyJobInvariants).
type Worker struct {
	ID   string
	Name string
	Pos  Vec2i

	Miner   bool
	Carrier bool

	// JobID is empty while idle. Written only by assignJob/finishJob.
	JobID string

	// Carrying holds at most one item entity id (single-slot inventory).
	Carrying string
}

func (w *World) newWorkerID() string {
	n := w.nextWorkerNum.Add(1)
	return fmt.Sprintf("W%06d", n)
}

// SpawnWorker creates a worker at pos. Exposed for bootstrap and tests; the
// server reaches it through the SPAWN_WORKER command.
func (w *World) SpawnWorker(name string, pos Vec2i, miner, carrier bool) *Worker {
	wk := &Worker{
		ID:      w.newWorkerID(),
		Name:    name,
		Pos:     pos,
		Miner:   miner,
		Carrier: carrier,
	}
	w.workers[wk.ID] = wk
	return wk
}

// sortedWorkers returns workers in ascending id order; every per-tick pass
// iterates in this order so outcomes are deterministic.
func (w *World) sortedWorkers() []*Worker {
	out := make([]*Worker, 0, len(w.workers))
	for _, wk := range w.workers {
		out = append(out, wk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// WorkerAssignment reports the job id currently held by the worker, empty
// when idle or unknown. Read-only inspection for diagnostics and tests.
func (w *World) WorkerAssignment(workerID string) string {
	wk := w.workers[workerID]
	if wk == nil {
		return ""
	}
	return wk.JobID
}

// WorkerPos reports a worker's position for shells and tests.
func (w *World) WorkerPos(workerID string) (Vec2i, bool) {
	wk := w.workers[workerID]
	if wk == nil {
		return Vec2i{}, false
	}
	return wk.Pos, true
}

// WorkerCarrying reports the item entity id in the worker's inventory slot.
func (w *World) WorkerCarrying(workerID string) string {
	wk := w.workers[workerID]
	if wk == nil {
		return ""
	}
	return wk.Carrying
}
