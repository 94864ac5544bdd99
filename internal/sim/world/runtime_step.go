package world

import (
	"encoding/json"
	"fmt"
	"time"
)

// stepInternal runs one tick. The stage order is a hard constraint, not a
// preference: dedup before conversion (else duplicate jobs), conversion
// before assignment (same-tick pickup), mining before auto-haul (this
// tick's drops must be visible to the generator), auto-haul before hauling
// execution, and movement reconciliation last. Each shared structure is
// touched by one stage per tick in this fixed order; that discipline is the
// whole concurrency story.
func (w *World) stepInternal(actions []ActionEnvelope) error {
	stepStart := time.Now()
	nowTick := w.tick.Load()

	w.spawnedThisTick = w.spawnedThisTick[:0]
	w.eventsThisTick = w.eventsThisTick[:0]

	// Apply overseer commands in server receive order.
	recorded := make([]RecordedAction, 0, len(actions))
	for _, env := range actions {
		recorded = append(recorded, RecordedAction{SessionID: env.SessionID, Act: env.Act})
		w.applyAct(env, nowTick)
	}

	w.systemDesignationDedup(nowTick)
	w.systemDesignationToJobs(nowTick)
	w.systemAssignment(nowTick)
	w.systemMining(nowTick)
	w.systemAutoHaul(nowTick)
	w.systemHauling(nowTick)
	w.systemMovement(nowTick)

	if err := w.verifyJobInvariants(); err != nil {
		return fmt.Errorf("tick %d: job state corrupt: %w", nowTick, err)
	}

	digest := w.stateDigest(nowTick)

	// Build + send OBS for each connected client.
	for _, cl := range w.clients {
		obs := w.buildObs(nowTick, digest)
		b, err := json.Marshal(obs)
		if err != nil {
			continue
		}
		sendLatest(cl.Out, b)
	}

	if w.tickLogger != nil {
		_ = w.tickLogger.WriteTick(TickLogEntry{Tick: nowTick, Actions: recorded, Digest: digest})
	}

	if w.snapshotSink != nil && nowTick != 0 && w.cfg.SnapshotEveryTicks > 0 {
		every := uint64(w.cfg.SnapshotEveryTicks)
		if nowTick%every == 0 {
			snap := w.ExportSnapshot(nowTick)
			select {
			case w.snapshotSink <- snap:
			default:
				// Drop snapshot if sink is backed up.
			}
		}
	}

	stepMS := float64(time.Since(stepStart).Microseconds()) / 1000.0
	w.tick.Add(1)

	hits, misses := w.paths.Stats()
	w.metrics.Store(WorldMetrics{
		Tick:         nowTick + 1,
		Workers:      len(w.workers),
		Clients:      len(w.clients),
		Items:        len(w.items),
		Stockpiles:   len(w.stockpiles),
		Designations: len(w.designations),
		BoardJobs:    len(w.board),
		ActiveJobs:   len(w.active),
		PathHits:     hits,
		PathMisses:   misses,
		QueueDepths: QueueDepths{
			Inbox: len(w.inbox),
			Join:  len(w.join),
			Leave: len(w.leave),
		},
		StepMS: stepMS,
	})
	return nil
}
