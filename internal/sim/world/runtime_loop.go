package world

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run drives the world at the configured tick rate until ctx is cancelled,
// Stop is called, or a tick reports an internal-consistency fault. Inputs
// arriving between ticks are buffered and applied at the next boundary.
func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingActions []ActionEnvelope

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			w.handleJoin(req)
		case id := <-w.leave:
			delete(w.clients, id)
		case env := <-w.inbox:
			pendingActions = append(pendingActions, env)
		case <-ticker.C:
			if err := w.stepInternal(pendingActions); err != nil {
				return err
			}
			pendingActions = pendingActions[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

func (w *World) handleJoin(req JoinRequest) {
	id := uuid.NewString()
	w.clients[id] = &clientState{Out: req.Out}
	if req.Resp != nil {
		req.Resp <- JoinResponse{Welcome: w.welcome(id)}
	}
}

// StepOnce advances the world by a single tick with the same ordering
// semantics as the server loop. Intended for deterministic replays, shells
// and tests. Returns the tick that ran and its resulting state digest.
func (w *World) StepOnce(actions []ActionEnvelope) (tick uint64, digest string, err error) {
	tick = w.tick.Load()
	if err := w.stepInternal(actions); err != nil {
		return tick, "", err
	}
	return tick, w.stateDigest(tick), nil
}

func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	// Drop one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
