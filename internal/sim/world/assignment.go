package world

import (
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

func workerCanRun(wk *Worker, kind jobs.Kind) bool {
	switch kind {
	case jobs.KindMine:
		return wk.Miner
	case jobs.KindHaul:
		return wk.Carrier
	default:
		return false
	}
}

// systemAssignment offers board jobs to idle workers: at most one job per
// idle worker per tick, highest priority first, lowest job id among equals.
// Workers are visited in ascending id order so equal claims resolve the
// same way every run. Jobs nobody can run stay on the board.
func (w *World) systemAssignment(nowTick uint64) {
	queue := w.sortedBoardJobs()
	taken := map[string]bool{}

	for _, wk := range w.sortedWorkers() {
		if wk.JobID != "" {
			continue
		}
		for _, j := range queue {
			if taken[j.ID] || !workerCanRun(wk, j.Kind) {
				continue
			}
			w.assignJob(nowTick, j, wk)
			taken[j.ID] = true
			break
		}
	}
}
