package world

import (
	"sort"

	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/fov"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

func jobView(j *jobs.Job) protocol.JobView {
	return protocol.JobView{
		ID:         j.ID,
		Kind:       string(j.Kind),
		Priority:   j.Priority,
		Target:     [2]int{j.Target.X, j.Target.Y},
		Source:     [2]int{j.Source.X, j.Source.Y},
		Dest:       [2]int{j.Dest.X, j.Dest.Y},
		AssignedTo: j.AssignedTo,
	}
}

func (w *World) welcome(sessionID string) protocol.WelcomeMsg {
	return protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		WorldParams:     w.worldParams(),
	}
}

func (w *World) worldParams() protocol.WorldParams {
	return protocol.WorldParams{
		TickRateHz: w.cfg.TickRateHz,
		Width:      w.cfg.Width,
		Height:     w.cfg.Height,
		Seed:       w.cfg.Seed,
	}
}

// buildObs assembles the per-tick frame. Terrain is scoped to what the
// camp's workers can currently see (union of per-worker line of sight);
// the rest of the state is the overseer's own bookkeeping and ships whole.
func (w *World) buildObs(nowTick uint64, digest string) protocol.ObsMsg {
	obs := protocol.ObsMsg{
		Type:            protocol.TypeObs,
		ProtocolVersion: protocol.Version,
		Tick:            nowTick,
		Digest:          digest,
		World:           w.worldParams(),
		// Required frame fields encode as [] rather than null when empty.
		Workers: []protocol.WorkerView{},
		Jobs: protocol.JobsView{
			Board:  []protocol.JobView{},
			Active: []protocol.JobView{},
		},
	}

	visible := map[fov.Point]bool{}
	for _, wk := range w.sortedWorkers() {
		caps := workerCaps(wk)
		obs.Workers = append(obs.Workers, protocol.WorkerView{
			ID:           wk.ID,
			Name:         wk.Name,
			Pos:          wk.Pos.ToArray(),
			Capabilities: caps,
			JobID:        wk.JobID,
			Carrying:     wk.Carrying,
		})
		for p := range fov.Visible(w.tiles, fov.Point{X: wk.Pos.X, Y: wk.Pos.Y}, w.cfg.VisionRadius) {
			visible[p] = true
		}
	}

	tiles := make([]fov.Point, 0, len(visible))
	for p := range visible {
		tiles = append(tiles, p)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Y != tiles[j].Y {
			return tiles[i].Y < tiles[j].Y
		}
		return tiles[i].X < tiles[j].X
	})
	for _, p := range tiles {
		k, _ := w.tiles.Get(p.X, p.Y)
		obs.Tiles = append(obs.Tiles, protocol.TileView{Pos: [2]int{p.X, p.Y}, Kind: k.String()})
	}

	for _, id := range w.sortedItemIDs() {
		e := w.items[id]
		if e.HeldBy != "" {
			continue
		}
		obs.Items = append(obs.Items, protocol.ItemView{
			ID:        e.EntityID,
			Pos:       e.Pos.ToArray(),
			Kind:      e.Kind,
			Carriable: e.Carriable,
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
		obs.Stockpiles = append(obs.Stockpiles, protocol.StockpileView{ID: s.ID, Pos: s.Pos.ToArray(), Accepts: accepts})
	}

	for _, id := range w.sortedDesignationIDs() {
		d := w.designations[id]
		obs.Designations = append(obs.Designations, protocol.DesignationView{
			ID:    d.ID,
			Pos:   d.Target.ToArray(),
			State: d.State.String(),
		})
	}

	for _, j := range w.sortedBoardJobs() {
		obs.Jobs.Board = append(obs.Jobs.Board, jobView(j))
	}
	activeIDs := make([]string, 0, len(w.active))
	for id := range w.active {
		activeIDs = append(activeIDs, id)
	}
	sort.Strings(activeIDs)
	for _, id := range activeIDs {
		obs.Jobs.Active = append(obs.Jobs.Active, jobView(w.active[id]))
	}

	obs.Events = append(obs.Events, w.eventsThisTick...)
	return obs
}

func workerCaps(wk *Worker) []string {
	caps := []string{}
	if wk.Miner {
		caps = append(caps, "MINER")
	}
	if wk.Carrier {
		caps = append(caps, "CARRIER")
	}
	return caps
}
