package world

import (
	"testing"

	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
)

// Full pipeline: overseer commands on tick 0 bootstrap the camp, then the
// systems carry a designated wall all the way to stone in a stockpile with
// nothing left over in either job table.
func TestEndToEnd_MineThenHaulToStockpile(t *testing.T) {
	w := newFlatWorld(t, 10, 10)
	placeWall(w, 6, 2)

	step(t, w, actOf(
		protocol.Command{ID: "c1", Type: protocol.CmdSpawnWorker, Pos: [2]int{1, 1}, Name: "Grak", Capabilities: []string{"MINER", "CARRIER"}},
		protocol.Command{ID: "c2", Type: protocol.CmdAddStockpile, Pos: [2]int{2, 2}},
		protocol.Command{ID: "c3", Type: protocol.CmdDesignateMine, Pos: [2]int{6, 2}},
	))

	settled := false
	for i := 0; i < 60; i++ {
		step(t, w, nil)
		if w.BoardSize() == 0 && w.ActiveJobCount() == 0 && len(w.ItemsAt(Vec2i{X: 2, Y: 2})) == 1 {
			settled = true
			break
		}
	}
	if !settled {
		t.Fatalf("camp did not settle in 60 ticks: board=%d active=%d", w.BoardSize(), w.ActiveJobCount())
	}

	if k, _ := w.Tile(Vec2i{X: 6, Y: 2}); k != TileFloor {
		t.Fatalf("designated wall was not mined")
	}
	if got := w.ItemsAt(Vec2i{X: 2, Y: 2}); len(got) != 1 {
		t.Fatalf("stone not delivered to stockpile: %v", got)
	}
	if got := w.WorkerCarrying("W000001"); got != "" {
		t.Fatalf("worker inventory not empty: %s", got)
	}
	if got := w.WorkerAssignment("W000001"); got != "" {
		t.Fatalf("worker not idle: %s", got)
	}
	if got := w.DesignationCount(); got != 0 {
		t.Fatalf("designations not consumed: %d", got)
	}
}

// OBS frames reflect post-step state and always carry the frame skeleton.
func TestBuildObs_FrameShape(t *testing.T) {
	w := newFlatWorld(t, 10, 10)
	placeWall(w, 6, 2)
	w.SpawnWorker("Grak", Vec2i{X: 1, Y: 1}, true, true)
	w.AddStockpile(Vec2i{X: 2, Y: 2}, nil)
	w.DesignateMine(0, Vec2i{X: 6, Y: 2})
	digest := step(t, w, nil)

	obs := w.buildObs(w.CurrentTick(), digest)
	if obs.Type != protocol.TypeObs || obs.ProtocolVersion != protocol.Version {
		t.Fatalf("bad frame header: %+v", obs)
	}
	if len(obs.Workers) != 1 {
		t.Fatalf("want 1 worker view, got %d", len(obs.Workers))
	}
	if obs.Jobs.Board == nil || obs.Jobs.Active == nil {
		t.Fatalf("jobs views must be non-nil")
	}
	if len(obs.Tiles) == 0 {
		t.Fatalf("worker should see some terrain")
	}
	// Vision-scoped: never more terrain than the full map.
	if len(obs.Tiles) > w.cfg.Width*w.cfg.Height {
		t.Fatalf("tile view larger than the map")
	}
	if len(obs.Stockpiles) != 1 || len(obs.Workers[0].Capabilities) != 2 {
		t.Fatalf("frame views incomplete: %+v", obs)
	}
}
