package protocol

// Event is a loosely typed per-tick notification included in OBS frames
// (job completions, command rejections, item spawns near a scout, ...).
type Event map[string]any

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	WorldParams     WorldParams `json:"world_params"`
}

type WorldParams struct {
	TickRateHz int   `json:"tick_rate_hz"`
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	Seed       int64 `json:"seed"`
}

// ACT (client -> server): a batch of overseer commands applied at the next
// tick boundary, in order.
type ActMsg struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	Tick            uint64    `json:"tick"`
	Commands        []Command `json:"commands"`
}

// Command types carried in ACT.
const (
	CmdDesignateMine = "DESIGNATE_MINE"
	CmdAddStockpile  = "ADD_STOCKPILE"
	CmdSpawnWorker   = "SPAWN_WORKER"
)

type Command struct {
	ID   string `json:"id,omitempty"` // client echo token
	Type string `json:"type"`
	Pos  [2]int `json:"pos"`

	// ADD_STOCKPILE: item types accepted; empty means accept everything.
	Accepts []string `json:"accepts,omitempty"`

	// SPAWN_WORKER
	Name         string   `json:"name,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"` // "MINER", "CARRIER"
}

// OBS (server -> client): per-tick world view scoped to what the camp's
// workers can currently see.
type ObsMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Tick            uint64 `json:"tick"`
	Digest          string `json:"digest,omitempty"`

	World        WorldParams       `json:"world"`
	Tiles        []TileView        `json:"tiles,omitempty"`
	Workers      []WorkerView      `json:"workers"`
	Items        []ItemView        `json:"items,omitempty"`
	Stockpiles   []StockpileView   `json:"stockpiles,omitempty"`
	Designations []DesignationView `json:"designations,omitempty"`
	Jobs         JobsView          `json:"jobs"`
	Events       []Event           `json:"events,omitempty"`
}

type TileView struct {
	Pos  [2]int `json:"pos"`
	Kind string `json:"kind"`
}

type WorkerView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Pos          [2]int   `json:"pos"`
	Capabilities []string `json:"capabilities"`
	JobID        string   `json:"job_id,omitempty"`
	Carrying     string   `json:"carrying,omitempty"`
}

type ItemView struct {
	ID        string `json:"id"`
	Pos       [2]int `json:"pos"`
	Kind      string `json:"kind"`
	Carriable bool   `json:"carriable"`
}

type StockpileView struct {
	ID      string   `json:"id"`
	Pos     [2]int   `json:"pos"`
	Accepts []string `json:"accepts,omitempty"` // empty means accept everything
}

type DesignationView struct {
	ID    string `json:"id"`
	Pos   [2]int `json:"pos"`
	State string `json:"state"`
}

type JobsView struct {
	Board  []JobView `json:"board"`
	Active []JobView `json:"active"`
}

type JobView struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Priority   int    `json:"priority"`
	Target     [2]int `json:"target,omitempty"`
	Source     [2]int `json:"source,omitempty"`
	Dest       [2]int `json:"dest,omitempty"`
	AssignedTo string `json:"assigned_to,omitempty"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
