package world

import (
	"sync/atomic"

	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/snapshot"
	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/jobs"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/path"
)

// World is a single-threaded authoritative camp simulation.
// All state must be accessed only from the world loop goroutine; channels
// feed external inputs that are applied at tick boundaries.
type World struct {
	cfg WorldConfig

	tick atomic.Uint64

	tiles *TileMap
	paths *path.Service

	workers      map[string]*Worker
	items        map[string]*ItemEntity
	itemsAt      map[Vec2i][]string
	stockpiles   map[string]*Stockpile
	designations map[string]*Designation

	// Job Board (unassigned) and Active Job Table (held by a worker).
	// A job id lives in exactly one of the two; every transition between
	// them goes through assignJob/finishJob so the split can never skew.
	board  map[string]*jobs.Job
	active map[string]*jobs.Job

	// Item entity ids spawned during the current tick, in spawn order.
	// Consumed by the auto-haul generator, reset at each tick start.
	spawnedThisTick []string

	// Events accumulated during the current tick, included in OBS frames.
	eventsThisTick []protocol.Event

	clients map[string]*clientState

	inbox chan ActionEnvelope
	join  chan JoinRequest
	leave chan string
	stop  chan struct{}

	nextWorkerNum atomic.Uint64
	nextJobNum    atomic.Uint64
	nextItemNum   atomic.Uint64
	nextStockNum  atomic.Uint64
	nextDesigNum  atomic.Uint64

	// Optional loggers (may be nil). Implemented in internal/persistence/*.
	tickLogger  TickLogger
	auditLogger AuditLogger

	// Optional snapshot sink (may be nil). Snapshot writing is off-thread.
	snapshotSink chan<- snapshot.SnapshotV1

	metrics atomic.Value // WorldMetrics
}

type JoinRequest struct {
	Name string
	Out  chan []byte
	Resp chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
}

type ActionEnvelope struct {
	SessionID string
	Act       protocol.ActMsg
}

type clientState struct {
	Out chan []byte
}

type TickLogger interface {
	WriteTick(entry TickLogEntry) error
}

type AuditLogger interface {
	WriteAudit(entry AuditEntry) error
}

type TickLogEntry struct {
	Tick    uint64           `json:"tick"`
	Actions []RecordedAction `json:"actions,omitempty"`
	Digest  string           `json:"digest"`
}

type RecordedAction struct {
	SessionID string          `json:"session_id"`
	Act       protocol.ActMsg `json:"act"`
}

type AuditEntry struct {
	Tick   uint64         `json:"tick"`
	Actor  string         `json:"actor"`
	Action string         `json:"action"` // e.g. "SET_TILE", "JOB_DONE"
	Pos    [2]int         `json:"pos"`
	Reason string         `json:"reason,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
}

func New(cfg WorldConfig) (*World, error) {
	cfg.applyDefaults()

	ps, err := path.NewService(cfg.PathCacheSize)
	if err != nil {
		return nil, err
	}

	w := &World{
		cfg:          cfg,
		tiles:        generateTiles(cfg),
		paths:        ps,
		workers:      map[string]*Worker{},
		items:        map[string]*ItemEntity{},
		itemsAt:      map[Vec2i][]string{},
		stockpiles:   map[string]*Stockpile{},
		designations: map[string]*Designation{},
		board:        map[string]*jobs.Job{},
		active:       map[string]*jobs.Job{},
		clients:      map[string]*clientState{},
		inbox:        make(chan ActionEnvelope, 256),
		join:         make(chan JoinRequest, 16),
		leave:        make(chan string, 16),
		stop:         make(chan struct{}),
	}
	w.metrics.Store(WorldMetrics{})
	return w, nil
}

func (w *World) ID() string { return w.cfg.ID }

func (w *World) Config() WorldConfig { return w.cfg }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

func (w *World) SetTickLogger(l TickLogger)   { w.tickLogger = l }
func (w *World) SetAuditLogger(l AuditLogger) { w.auditLogger = l }

func (w *World) SetSnapshotSink(ch chan<- snapshot.SnapshotV1) { w.snapshotSink = ch }

// PathStats exposes the path cache hit/miss counters for diagnostics.
func (w *World) PathStats() (hits, misses uint64) { return w.paths.Stats() }

// Tile returns the tile at p for shells and tests.
func (w *World) Tile(p Vec2i) (TileKind, bool) { return w.tiles.Get(p.X, p.Y) }

// setTile is the only tile mutation path: it audits the change and drops
// cached paths, which may no longer be valid.
func (w *World) setTile(nowTick uint64, actor string, p Vec2i, to TileKind, reason string) {
	from, ok := w.tiles.Get(p.X, p.Y)
	if !ok || from == to {
		return
	}
	w.tiles.set(p.X, p.Y, to)
	w.paths.Invalidate()
	w.auditEvent(nowTick, actor, "SET_TILE", p, reason, map[string]any{
		"from": from.String(),
		"to":   to.String(),
	})
}

func (w *World) auditEvent(nowTick uint64, actor, action string, pos Vec2i, reason string, extra map[string]any) {
	if w.auditLogger == nil {
		return
	}
	_ = w.auditLogger.WriteAudit(AuditEntry{
		Tick:   nowTick,
		Actor:  actor,
		Action: action,
		Pos:    pos.ToArray(),
		Reason: reason,
		Extra:  extra,
	})
}

func (w *World) addEvent(ev protocol.Event) {
	w.eventsThisTick = append(w.eventsThisTick, ev)
}
