// Package snapshot defines the versioned on-disk world snapshot format:
// zstd-compressed JSON, one file per capture. Snapshots carry everything
// needed to resume a deterministic run, including the job board / active
// table split and the id counters.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Seed       int64 `json:"seed"`
	TickRateHz int   `json:"tick_rate_hz"`
	Width      int   `json:"width"`
	Height     int   `json:"height"`

	Tiles []uint8 `json:"tiles"` // row-major, len == Width*Height

	Workers      []WorkerV1      `json:"workers,omitempty"`
	Items        []ItemV1        `json:"items,omitempty"`
	Stockpiles   []StockpileV1   `json:"stockpiles,omitempty"`
	Designations []DesignationV1 `json:"designations,omitempty"`
	BoardJobs    []JobV1         `json:"board_jobs,omitempty"`
	ActiveJobs   []JobV1         `json:"active_jobs,omitempty"`

	Counters CountersV1 `json:"counters"`
}

type WorkerV1 struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Pos      [2]int `json:"pos"`
	Miner    bool   `json:"miner"`
	Carrier  bool   `json:"carrier"`
	JobID    string `json:"job_id,omitempty"`
	Carrying string `json:"carrying,omitempty"`
}

type ItemV1 struct {
	ID          string `json:"id"`
	Pos         [2]int `json:"pos"`
	Kind        string `json:"kind"`
	Carriable   bool   `json:"carriable"`
	HeldBy      string `json:"held_by,omitempty"`
	CreatedTick uint64 `json:"created_tick"`
}

type StockpileV1 struct {
	ID      string   `json:"id"`
	Pos     [2]int   `json:"pos"`
	Accepts []string `json:"accepts,omitempty"`
}

type DesignationV1 struct {
	ID          string `json:"id"`
	Pos         [2]int `json:"pos"`
	State       uint8  `json:"state"`
	CreatedTick uint64 `json:"created_tick"`
}

type JobV1 struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Priority    int    `json:"priority"`
	Target      [2]int `json:"target"`
	Source      [2]int `json:"source"`
	Dest        [2]int `json:"dest"`
	AssignedTo  string `json:"assigned_to,omitempty"`
	CreatedTick uint64 `json:"created_tick"`
}

type CountersV1 struct {
	Worker      uint64 `json:"worker"`
	Job         uint64 `json:"job"`
	Item        uint64 `json:"item"`
	Stockpile   uint64 `json:"stockpile"`
	Designation uint64 `json:"designation"`
}

// FileName builds the canonical snapshot file name for a tick.
func FileName(worldID string, tick uint64) string {
	return fmt.Sprintf("%s-%012d.snap.zst", worldID, tick)
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	je := json.NewEncoder(enc)
	if err := je.Encode(&snap); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	if err := json.NewDecoder(dec).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}
