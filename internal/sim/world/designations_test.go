package world

import "testing"

func TestDesignationDedup_NDuplicatesOneJob(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		w := newFlatWorld(t, 12, 12)
		placeWall(w, 6, 6)

		for i := 0; i < n; i++ {
			w.DesignateMine(0, Vec2i{X: 6, Y: 6})
		}
		step(t, w, nil)

		if got := w.BoardSize(); got != 1 {
			t.Fatalf("n=%d: want 1 board job, got %d", n, got)
		}
		if got := w.DesignationCount(); got != 0 {
			t.Fatalf("n=%d: want all designations consumed, got %d", n, got)
		}
	}
}

func TestDesignationStale_ConsumedWithoutJob(t *testing.T) {
	w := newFlatWorld(t, 12, 12)

	// Target is floor, so the intent is stale by conversion time.
	w.DesignateMine(0, Vec2i{X: 3, Y: 3})
	step(t, w, nil)

	if got := w.BoardSize(); got != 0 {
		t.Fatalf("stale designation minted a job: board=%d", got)
	}
	if got := w.DesignationCount(); got != 0 {
		t.Fatalf("stale designation not consumed: %d left", got)
	}
}

func TestDesignationDistinctTargets_EachConverts(t *testing.T) {
	w := newFlatWorld(t, 12, 12)
	placeWall(w, 6, 6)
	placeWall(w, 8, 8)

	w.DesignateMine(0, Vec2i{X: 6, Y: 6})
	w.DesignateMine(0, Vec2i{X: 8, Y: 8})
	step(t, w, nil)

	if got := w.BoardSize(); got != 2 {
		t.Fatalf("want 2 board jobs, got %d", got)
	}
}

func TestDesignationDedup_RepeatedRunsStayStable(t *testing.T) {
	w := newFlatWorld(t, 12, 12)
	placeWall(w, 6, 6)

	w.DesignateMine(0, Vec2i{X: 6, Y: 6})
	w.DesignateMine(0, Vec2i{X: 6, Y: 6})

	// The dedup pass itself must be idempotent within a tick.
	w.systemDesignationDedup(0)
	w.systemDesignationDedup(0)

	active := 0
	for _, id := range w.sortedDesignationIDs() {
		if w.designations[id].State == DesignationActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("want exactly 1 active designation after dedup, got %d", active)
	}
}
