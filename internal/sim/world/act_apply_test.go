package world

import (
	"testing"

	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
)

func actOf(cmds ...protocol.Command) []ActionEnvelope {
	return []ActionEnvelope{{
		SessionID: "s1",
		Act: protocol.ActMsg{
			Type:            protocol.TypeAct,
			ProtocolVersion: protocol.Version,
			Commands:        cmds,
		},
	}}
}

func rejectionCodes(w *World) []string {
	var codes []string
	for _, ev := range w.eventsThisTick {
		if ev["type"] == "COMMAND_REJECTED" {
			codes = append(codes, ev["code"].(string))
		}
	}
	return codes
}

func TestApplyAct_DesignateMineValidation(t *testing.T) {
	w := newFlatWorld(t, 8, 8)
	placeWall(w, 4, 4)

	step(t, w, actOf(
		protocol.Command{ID: "c1", Type: protocol.CmdDesignateMine, Pos: [2]int{4, 4}},   // ok; converts same tick
		protocol.Command{ID: "c2", Type: protocol.CmdDesignateMine, Pos: [2]int{99, 99}}, // out of bounds
		protocol.Command{ID: "c3", Type: protocol.CmdDesignateMine, Pos: [2]int{2, 2}},   // floor, stale
	))

	if got := w.BoardSize(); got != 1 {
		t.Fatalf("want 1 job from the valid designation, got %d", got)
	}
	codes := rejectionCodes(w)
	if len(codes) != 2 {
		t.Fatalf("want 2 rejections, got %v", codes)
	}
	if codes[0] != protocol.ErrInvalidTarget || codes[1] != protocol.ErrStale {
		t.Fatalf("unexpected rejection codes: %v", codes)
	}
}

func TestApplyAct_StockpileAndWorkerPlacement(t *testing.T) {
	w := newFlatWorld(t, 8, 8)
	placeWall(w, 4, 4)

	step(t, w, actOf(
		protocol.Command{ID: "c1", Type: protocol.CmdAddStockpile, Pos: [2]int{4, 4}}, // wall, blocked
		protocol.Command{ID: "c2", Type: protocol.CmdAddStockpile, Pos: [2]int{2, 2}, Accepts: []string{ItemStone}},
		protocol.Command{ID: "c3", Type: protocol.CmdSpawnWorker, Pos: [2]int{4, 4}, Name: "x", Capabilities: []string{"MINER"}},
		protocol.Command{ID: "c4", Type: protocol.CmdSpawnWorker, Pos: [2]int{1, 1}, Name: "Grak", Capabilities: []string{"miner", "CARRIER"}},
	))

	if len(w.stockpiles) != 1 {
		t.Fatalf("want 1 stockpile, got %d", len(w.stockpiles))
	}
	if len(w.workers) != 1 {
		t.Fatalf("want 1 worker, got %d", len(w.workers))
	}
	wk := w.workers["W000001"]
	if wk == nil || !wk.Miner || !wk.Carrier {
		t.Fatalf("capability parsing should be case-insensitive: %+v", wk)
	}
	codes := rejectionCodes(w)
	if len(codes) != 2 || codes[0] != protocol.ErrBlocked || codes[1] != protocol.ErrBlocked {
		t.Fatalf("unexpected rejection codes: %v", codes)
	}
}

func TestApplyAct_UnknownCommandRejected(t *testing.T) {
	w := newFlatWorld(t, 8, 8)
	step(t, w, actOf(protocol.Command{ID: "c1", Type: "TELEPORT", Pos: [2]int{1, 1}}))

	codes := rejectionCodes(w)
	if len(codes) != 1 || codes[0] != protocol.ErrBadRequest {
		t.Fatalf("unexpected rejection codes: %v", codes)
	}
}
