package world

import (
	"fmt"
	"sort"

	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// The Job Board / Active Job Table split keeps the original's storage shape,
// but every transition between the two goes through exactly one of the
// functions in this file, always updating the paired structure and the
// owning worker's assignment reference in the same step. Scattered field
// clears are what used to orphan jobs in the active table.

func (w *World) newJobID() string {
	n := w.nextJobNum.Add(1)
	return fmt.Sprintf("J%06d", n)
}

// addJob stamps an id on the job and places it on the board.
func (w *World) addJob(nowTick uint64, j *jobs.Job) *jobs.Job {
	j.ID = w.newJobID()
	j.CreatedTick = nowTick
	j.AssignedTo = ""
	w.board[j.ID] = j
	return j
}

// assignJob moves a board job into the active table and stamps it onto the
// worker, atomically from the tick's point of view.
func (w *World) assignJob(nowTick uint64, j *jobs.Job, wk *Worker) {
	delete(w.board, j.ID)
	w.active[j.ID] = j
	j.AssignedTo = wk.ID
	wk.JobID = j.ID
	w.auditEvent(nowTick, wk.ID, "JOB_ASSIGN", Vec2i{}, "", map[string]any{
		"job_id": j.ID,
		"kind":   string(j.Kind),
	})
}

// finishJob removes the job from the active table and clears the worker's
// assignment reference in the same step, for both completion and
// cancellation. This is the only way an active job ends.
func (w *World) finishJob(nowTick uint64, j *jobs.Job, wk *Worker, completed bool, reason string) {
	delete(w.active, j.ID)
	j.AssignedTo = ""
	wk.JobID = ""

	action := "JOB_DONE"
	evType := "JOB_DONE"
	if !completed {
		action = "JOB_CANCELLED"
		evType = "JOB_CANCELLED"
	}
	w.auditEvent(nowTick, wk.ID, action, Vec2i{}, reason, map[string]any{
		"job_id": j.ID,
		"kind":   string(j.Kind),
	})
	w.addEvent(protocol.Event{
		"t":      nowTick,
		"type":   evType,
		"job_id": j.ID,
		"kind":   string(j.Kind),
		"worker": wk.ID,
	})
}

// BoardSize reports how many jobs wait unassigned.
func (w *World) BoardSize() int { return len(w.board) }

// ActiveJobCount reports how many jobs are held by workers.
func (w *World) ActiveJobCount() int { return len(w.active) }

// BoardJobIDs lists unassigned job ids, ascending, for tests.
func (w *World) BoardJobIDs() []string {
	ids := make([]string, 0, len(w.board))
	for id := range w.board {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActiveJob returns the active-table entry for a job id, or nil.
func (w *World) ActiveJob(id string) *jobs.Job { return w.active[id] }

// sortedBoardJobs returns board jobs in dispatch order: highest priority
// first, lowest id among equals.
func (w *World) sortedBoardJobs() []*jobs.Job {
	out := make([]*jobs.Job, 0, len(w.board))
	for _, j := range w.board {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool {
		if out[i].Priority != out[k].Priority {
			return out[i].Priority > out[k].Priority
		}
		return out[i].ID < out[k].ID
	})
	return out
}

// workerJob resolves the worker's assignment through the active table.
// A dangling reference is an invariant violation detected at the tick
// boundary, so drivers may treat nil as "skip".
func (w *World) workerJob(wk *Worker) *jobs.Job {
	if wk.JobID == "" {
		return nil
	}
	return w.active[wk.JobID]
}

// verifyJobInvariants checks the split-storage discipline after every tick:
// no job id in both tables, no board job claiming a worker, and worker
// assignment references agreeing with the active table in both directions.
// A violation aborts the tick loop; corrupt job state is never carried
// forward silently.
func (w *World) verifyJobInvariants() error {
	for id, j := range w.board {
		if _, ok := w.active[id]; ok {
			return fmt.Errorf("job %s present in both board and active table", id)
		}
		if j.AssignedTo != "" {
			return fmt.Errorf("board job %s claims worker %s", id, j.AssignedTo)
		}
	}
	for id, j := range w.active {
		wk := w.workers[j.AssignedTo]
		if wk == nil {
			return fmt.Errorf("active job %s assigned to unknown worker %q", id, j.AssignedTo)
		}
		if wk.JobID != id {
			return fmt.Errorf("active job %s assigned to worker %s whose reference is %q", id, wk.ID, wk.JobID)
		}
	}
	for _, wk := range w.workers {
		if wk.JobID == "" {
			continue
		}
		if _, ok := w.active[wk.JobID]; !ok {
			return fmt.Errorf("worker %s references job %s missing from active table", wk.ID, wk.JobID)
		}
	}
	return nil
}
