package world

import (
	"sort"

	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/snapshot"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// ExportSnapshot captures the full sim state at nowTick.
func (w *World) ExportSnapshot(nowTick uint64) snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: snapshot.Version,
			WorldID: w.cfg.ID,
			Tick:    nowTick,
		},
		Seed:       w.cfg.Seed,
		TickRateHz: w.cfg.TickRateHz,
		Width:      w.cfg.Width,
		Height:     w.cfg.Height,
		Counters: snapshot.CountersV1{
			Worker:      w.nextWorkerNum.Load(),
			Job:         w.nextJobNum.Load(),
			Item:        w.nextItemNum.Load(),
			Stockpile:   w.nextStockNum.Load(),
			Designation: w.nextDesigNum.Load(),
		},
	}

	raw := w.tiles.Raw()
	snap.Tiles = make([]uint8, len(raw))
	for i, k := range raw {
		snap.Tiles[i] = uint8(k)
	}

	for _, wk := range w.sortedWorkers() {
		snap.Workers = append(snap.Workers, snapshot.WorkerV1{
			ID:       wk.ID,
			Name:     wk.Name,
			Pos:      wk.Pos.ToArray(),
			Miner:    wk.Miner,
			Carrier:  wk.Carrier,
			JobID:    wk.JobID,
			Carrying: wk.Carrying,
		})
	}

	for _, id := range w.sortedItemIDs() {
		e := w.items[id]
		snap.Items = append(snap.Items, snapshot.ItemV1{
			ID:          e.EntityID,
			Pos:         e.Pos.ToArray(),
			Kind:        e.Kind,
			Carriable:   e.Carriable,
			HeldBy:      e.HeldBy,
			CreatedTick: e.CreatedTick,
		})
	}

	spIDs := make([]string, 0, len(w.stockpiles))
	for id := range w.stockpiles {
		spIDs = append(spIDs, id)
	}
	sort.Strings(spIDs)
	for _, id := range spIDs {
		s := w.stockpiles[id]
		var accepts []string
		for k := range s.Accepts {
			accepts = append(accepts, k)
		}
		sort.Strings(accepts)
		snap.Stockpiles = append(snap.Stockpiles, snapshot.StockpileV1{ID: s.ID, Pos: s.Pos.ToArray(), Accepts: accepts})
	}

	for _, id := range w.sortedDesignationIDs() {
		d := w.designations[id]
		snap.Designations = append(snap.Designations, snapshot.DesignationV1{
			ID:          d.ID,
			Pos:         d.Target.ToArray(),
			State:       uint8(d.State),
			CreatedTick: d.CreatedTick,
		})
	}

	for _, id := range w.BoardJobIDs() {
		snap.BoardJobs = append(snap.BoardJobs, exportJob(w.board[id]))
	}
	activeIDs := make([]string, 0, len(w.active))
	for id := range w.active {
		activeIDs = append(activeIDs, id)
	}
	sort.Strings(activeIDs)
	for _, id := range activeIDs {
		snap.ActiveJobs = append(snap.ActiveJobs, exportJob(w.active[id]))
	}

	return snap
}

func exportJob(j *jobs.Job) snapshot.JobV1 {
	return snapshot.JobV1{
		ID:          j.ID,
		Kind:        string(j.Kind),
		Priority:    j.Priority,
		Target:      [2]int{j.Target.X, j.Target.Y},
		Source:      [2]int{j.Source.X, j.Source.Y},
		Dest:        [2]int{j.Dest.X, j.Dest.Y},
		AssignedTo:  j.AssignedTo,
		CreatedTick: j.CreatedTick,
	}
}
