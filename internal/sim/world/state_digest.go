package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"
	"sort"

	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
)

// stateDigest hashes all authoritative sim state in a canonical order.
// Two worlds fed identical inputs must produce identical digests at every
// tick; replay verification leans on this.
func (w *World) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, nowTick)
	digestWriteI64(h, &tmp, w.cfg.Seed)
	digestWriteU64(h, &tmp, uint64(w.cfg.Width))
	digestWriteU64(h, &tmp, uint64(w.cfg.Height))

	w.digestTiles(h)
	w.digestWorkers(h, &tmp)
	w.digestItems(h, &tmp)
	w.digestStockpiles(h, &tmp)
	w.digestDesignations(h, &tmp)
	w.digestJobs(h, &tmp)

	return hex.EncodeToString(h.Sum(nil))
}

func (w *World) digestTiles(h io.Writer) {
	raw := w.tiles.Raw()
	buf := make([]byte, len(raw))
	for i, k := range raw {
		buf[i] = byte(k)
	}
	_, _ = h.Write(buf)
}

func (w *World) digestWorkers(h io.Writer, tmp *[8]byte) {
	for _, wk := range w.sortedWorkers() {
		writeString(h, tmp, wk.ID)
		writeString(h, tmp, wk.Name)
		digestWriteI64(h, tmp, int64(wk.Pos.X))
		digestWriteI64(h, tmp, int64(wk.Pos.Y))
		_, _ = h.Write([]byte{boolByte(wk.Miner), boolByte(wk.Carrier)})
		writeString(h, tmp, wk.JobID)
		writeString(h, tmp, wk.Carrying)
	}
}

func (w *World) digestItems(h io.Writer, tmp *[8]byte) {
	for _, id := range w.sortedItemIDs() {
		e := w.items[id]
		writeString(h, tmp, e.EntityID)
		writeString(h, tmp, e.Kind)
		digestWriteI64(h, tmp, int64(e.Pos.X))
		digestWriteI64(h, tmp, int64(e.Pos.Y))
		_, _ = h.Write([]byte{boolByte(e.Carriable)})
		writeString(h, tmp, e.HeldBy)
		digestWriteU64(h, tmp, e.CreatedTick)
	}
}

func (w *World) digestStockpiles(h io.Writer, tmp *[8]byte) {
	ids := make([]string, 0, len(w.stockpiles))
	for id := range w.stockpiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		s := w.stockpiles[id]
		writeString(h, tmp, s.ID)
		digestWriteI64(h, tmp, int64(s.Pos.X))
		digestWriteI64(h, tmp, int64(s.Pos.Y))
		accepts := make([]string, 0, len(s.Accepts))
		for k := range s.Accepts {
			accepts = append(accepts, k)
		}
		sort.Strings(accepts)
		digestWriteU64(h, tmp, uint64(len(accepts)))
		for _, k := range accepts {
			writeString(h, tmp, k)
		}
	}
}

func (w *World) digestDesignations(h io.Writer, tmp *[8]byte) {
	for _, id := range w.sortedDesignationIDs() {
		d := w.designations[id]
		writeString(h, tmp, d.ID)
		digestWriteI64(h, tmp, int64(d.Target.X))
		digestWriteI64(h, tmp, int64(d.Target.Y))
		_, _ = h.Write([]byte{byte(d.State)})
		digestWriteU64(h, tmp, d.CreatedTick)
	}
}

func (w *World) digestJobs(h io.Writer, tmp *[8]byte) {
	boardIDs := w.BoardJobIDs()
	digestWriteU64(h, tmp, uint64(len(boardIDs)))
	for _, id := range boardIDs {
		digestJob(h, tmp, w.board[id])
	}

	activeIDs := make([]string, 0, len(w.active))
	for id := range w.active {
		activeIDs = append(activeIDs, id)
	}
	sort.Strings(activeIDs)
	digestWriteU64(h, tmp, uint64(len(activeIDs)))
	for _, id := range activeIDs {
		digestJob(h, tmp, w.active[id])
	}
}

func digestJob(h io.Writer, tmp *[8]byte, j *jobs.Job) {
	writeString(h, tmp, j.ID)
	writeString(h, tmp, string(j.Kind))
	digestWriteI64(h, tmp, int64(j.Priority))
	digestWriteI64(h, tmp, int64(j.Target.X))
	digestWriteI64(h, tmp, int64(j.Target.Y))
	digestWriteI64(h, tmp, int64(j.Source.X))
	digestWriteI64(h, tmp, int64(j.Source.Y))
	digestWriteI64(h, tmp, int64(j.Dest.X))
	digestWriteI64(h, tmp, int64(j.Dest.Y))
	writeString(h, tmp, j.AssignedTo)
	digestWriteU64(h, tmp, j.CreatedTick)
}

func digestWriteU64(h io.Writer, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	_, _ = h.Write(tmp[:])
}

func digestWriteI64(h io.Writer, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func writeString(h io.Writer, tmp *[8]byte, s string) {
	digestWriteU64(h, tmp, uint64(len(s)))
	_, _ = io.WriteString(h, s)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
