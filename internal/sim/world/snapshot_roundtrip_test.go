package world

import (
	"testing"

	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/snapshot"
)

func TestSnapshot_RoundTripPreservesDigest(t *testing.T) {
	cfg := WorldConfig{ID: "snap", TickRateHz: 10, Width: 32, Height: 32, Seed: 42}
	w1, err := NewDemoWorld(cfg)
	if err != nil {
		t.Fatalf("world: %v", err)
	}

	// Run mid-activity so the snapshot captures live jobs and items.
	for i := 0; i < 12; i++ {
		step(t, w1, nil)
	}

	snap := w1.ExportSnapshot(w1.CurrentTick())
	if snap.Header.Version != snapshot.Version || snap.Header.WorldID != "snap" {
		t.Fatalf("bad snapshot header: %+v", snap.Header)
	}

	w2, err := New(cfg)
	if err != nil {
		t.Fatalf("world2: %v", err)
	}
	if err := w2.ImportSnapshot(snap); err != nil {
		t.Fatalf("import: %v", err)
	}

	if w1.CurrentTick() != w2.CurrentTick() {
		t.Fatalf("tick not restored: %d vs %d", w1.CurrentTick(), w2.CurrentTick())
	}
	d1 := w1.stateDigest(w1.CurrentTick())
	d2 := w2.stateDigest(w2.CurrentTick())
	if d1 != d2 {
		t.Fatalf("digest mismatch after import:\n  orig=%s\n  rest=%s", d1, d2)
	}

	// The restored world must continue identically, including fresh id
	// allocation (counters resume, so new ids cannot collide).
	for i := 0; i < 10; i++ {
		_, da, err := w1.StepOnce(nil)
		if err != nil {
			t.Fatalf("w1 step: %v", err)
		}
		_, db, err := w2.StepOnce(nil)
		if err != nil {
			t.Fatalf("w2 step: %v", err)
		}
		if da != db {
			t.Fatalf("post-import digest drift at tick %d", w1.CurrentTick())
		}
	}
}

func TestSnapshot_ImportRejectsDimensionMismatch(t *testing.T) {
	w1, err := New(WorldConfig{ID: "a", Width: 16, Height: 16, Seed: 1})
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	snap := w1.ExportSnapshot(0)

	w2, err := New(WorldConfig{ID: "a", Width: 32, Height: 32, Seed: 1})
	if err != nil {
		t.Fatalf("world2: %v", err)
	}
	if err := w2.ImportSnapshot(snap); err == nil {
		t.Fatalf("want dimension mismatch error")
	}
}

func TestSnapshot_ImportVerifiesJobState(t *testing.T) {
	w1 := newFlatWorld(t, 8, 8)
	snap := w1.ExportSnapshot(0)
	// Corrupt: a worker referencing a job absent from the active table.
	snap.Workers = append(snap.Workers, snapshot.WorkerV1{
		ID: "W000009", Pos: [2]int{1, 1}, Miner: true, JobID: "J000042",
	})

	w2 := newFlatWorld(t, 8, 8)
	if err := w2.ImportSnapshot(snap); err == nil {
		t.Fatalf("want job-state error for corrupt snapshot")
	}
}
