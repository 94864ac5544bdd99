package world

import (
	"fmt"

	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/snapshot"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// ImportSnapshot replaces the world's sim state with the snapshot's.
// The world must have been constructed with a config whose dimensions
// match the snapshot; the id counters and tick resume where the capture
// left off, so continued runs stay collision-free and replayable.
func (w *World) ImportSnapshot(snap snapshot.SnapshotV1) error {
	if snap.Header.Version != snapshot.Version {
		return fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	if snap.Width != w.cfg.Width || snap.Height != w.cfg.Height {
		return fmt.Errorf("snapshot dims %dx%d do not match world %dx%d",
			snap.Width, snap.Height, w.cfg.Width, w.cfg.Height)
	}
	if len(snap.Tiles) != snap.Width*snap.Height {
		return fmt.Errorf("snapshot tiles length %d, want %d", len(snap.Tiles), snap.Width*snap.Height)
	}

	m := NewTileMap(snap.Width, snap.Height)
	for i, k := range snap.Tiles {
		m.tiles[i] = TileKind(k)
	}
	w.tiles = m
	w.paths.Invalidate()

	w.workers = map[string]*Worker{}
	for _, v := range snap.Workers {
		w.workers[v.ID] = &Worker{
			ID:       v.ID,
			Name:     v.Name,
			Pos:      Vec2i{X: v.Pos[0], Y: v.Pos[1]},
			Miner:    v.Miner,
			Carrier:  v.Carrier,
			JobID:    v.JobID,
			Carrying: v.Carrying,
		}
	}

	w.items = map[string]*ItemEntity{}
	w.itemsAt = map[Vec2i][]string{}
	for _, v := range snap.Items {
		e := &ItemEntity{
			EntityID:    v.ID,
			Pos:         Vec2i{X: v.Pos[0], Y: v.Pos[1]},
			Kind:        v.Kind,
			Carriable:   v.Carriable,
			HeldBy:      v.HeldBy,
			CreatedTick: v.CreatedTick,
		}
		w.items[e.EntityID] = e
		if e.HeldBy == "" {
			w.itemsAt[e.Pos] = append(w.itemsAt[e.Pos], e.EntityID)
		}
	}

	w.stockpiles = map[string]*Stockpile{}
	for _, v := range snap.Stockpiles {
		s := &Stockpile{ID: v.ID, Pos: Vec2i{X: v.Pos[0], Y: v.Pos[1]}}
		if len(v.Accepts) > 0 {
			s.Accepts = map[string]bool{}
			for _, k := range v.Accepts {
				s.Accepts[k] = true
			}
		}
		w.stockpiles[s.ID] = s
	}

	w.designations = map[string]*Designation{}
	for _, v := range snap.Designations {
		w.designations[v.ID] = &Designation{
			ID:          v.ID,
			Target:      Vec2i{X: v.Pos[0], Y: v.Pos[1]},
			State:       DesignationState(v.State),
			CreatedTick: v.CreatedTick,
		}
	}

	w.board = map[string]*jobs.Job{}
	for _, v := range snap.BoardJobs {
		j := importJob(v)
		w.board[j.ID] = j
	}
	w.active = map[string]*jobs.Job{}
	for _, v := range snap.ActiveJobs {
		j := importJob(v)
		w.active[j.ID] = j
	}

	w.nextWorkerNum.Store(snap.Counters.Worker)
	w.nextJobNum.Store(snap.Counters.Job)
	w.nextItemNum.Store(snap.Counters.Item)
	w.nextStockNum.Store(snap.Counters.Stockpile)
	w.nextDesigNum.Store(snap.Counters.Designation)
	w.tick.Store(snap.Header.Tick)

	// A snapshot that violates the split discipline is corrupt on arrival.
	if err := w.verifyJobInvariants(); err != nil {
		return fmt.Errorf("snapshot job state corrupt: %w", err)
	}
	return nil
}

func importJob(v snapshot.JobV1) *jobs.Job {
	return &jobs.Job{
		ID:          v.ID,
		Kind:        jobs.Kind(v.Kind),
		Priority:    v.Priority,
		Target:      jobs.Vec2i{X: v.Target[0], Y: v.Target[1]},
		Source:      jobs.Vec2i{X: v.Source[0], Y: v.Source[1]},
		Dest:        jobs.Vec2i{X: v.Dest[0], Y: v.Dest[1]},
		AssignedTo:  v.AssignedTo,
		CreatedTick: v.CreatedTick,
	}
}
