package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/indexdb"
	persistlog "github.com/acaradonna/goblin-camp-sub001/internal/persistence/log"
	"github.com/acaradonna/goblin-camp-sub001/internal/persistence/snapshot"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/world"
	"github.com/acaradonna/goblin-camp-sub001/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configPath = flag.String("config", "./configs/world.yaml", "world config path")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Int64("seed", 0, "world seed override (0 keeps the config value)")
		demo       = flag.Bool("demo", false, "bootstrap a demo camp (two workers, a stockpile, starter designations)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite run index")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := world.LoadConfig(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Printf("config not found (%s); using defaults", *configPath)
			cfg = world.WorldConfig{}
		} else {
			logger.Fatalf("load config: %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	worldDir := filepath.Join(*dataDir, "worlds", worldIDOrDefault(cfg))
	_ = os.MkdirAll(worldDir, 0o755)

	// Optional: read-model index (does not affect sim determinism).
	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(worldDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
	}

	// Create world (fresh or resumed from snapshot).
	var w *world.World
	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(worldDir)
	}
	if snapshotToLoad != "" {
		snap, err := snapshot.ReadSnapshot(snapshotToLoad)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		if snap.Header.WorldID != "" && cfg.ID != "" && snap.Header.WorldID != cfg.ID {
			logger.Fatalf("snapshot world id mismatch: config=%s snap=%s", cfg.ID, snap.Header.WorldID)
		}
		cfg.Width = snap.Width
		cfg.Height = snap.Height
		cfg.Seed = snap.Seed
		cfg.TickRateHz = snap.TickRateHz
		w, err = world.New(cfg)
		if err != nil {
			logger.Fatalf("world: %v", err)
		}
		if err := w.ImportSnapshot(snap); err != nil {
			logger.Fatalf("import snapshot: %v", err)
		}
		logger.Printf("resumed from snapshot=%s tick=%d", filepath.Base(snapshotToLoad), w.CurrentTick())
	} else if *demo {
		w, err = world.NewDemoWorld(cfg)
		if err != nil {
			logger.Fatalf("world: %v", err)
		}
	} else {
		w, err = world.New(cfg)
		if err != nil {
			logger.Fatalf("world: %v", err)
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	tickLog := persistlog.NewTickLogWriter(worldDir)
	auditLog := persistlog.NewAuditLogWriter(worldDir)
	defer tickLog.Close()
	defer auditLog.Close()
	w.SetTickLogger(multiTickLogger{a: tickLog, b: idx})
	w.SetAuditLogger(multiAuditLogger{a: auditLog, b: idx})

	// Snapshot writer.
	snapCh := make(chan snapshot.SnapshotV1, 2)
	w.SetSnapshotSink(snapCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-snapCh:
				path := filepath.Join(worldDir, "snapshots", snapshot.FileName(snap.Header.WorldID, snap.Header.Tick))
				if err := snapshot.WriteSnapshot(path, snap); err != nil {
					logger.Printf("snapshot write: %v", err)
					continue
				}
				if idx != nil {
					idx.RecordSnapshot(path, snap)
				}
			}
		}
	}()

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		m := w.Metrics()
		id := w.ID()
		tick := w.CurrentTick()
		if m.Tick != 0 {
			tick = m.Tick
		}

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP camp_world_tick Current world tick.\n")
		fmt.Fprintf(rw, "# TYPE camp_world_tick gauge\n")
		fmt.Fprintf(rw, "camp_world_tick{world=%q} %d\n", id, tick)

		fmt.Fprintf(rw, "# HELP camp_world_workers Current number of workers.\n")
		fmt.Fprintf(rw, "# TYPE camp_world_workers gauge\n")
		fmt.Fprintf(rw, "camp_world_workers{world=%q} %d\n", id, m.Workers)

		fmt.Fprintf(rw, "# HELP camp_world_clients Current number of connected clients.\n")
		fmt.Fprintf(rw, "# TYPE camp_world_clients gauge\n")
		fmt.Fprintf(rw, "camp_world_clients{world=%q} %d\n", id, m.Clients)

		fmt.Fprintf(rw, "# HELP camp_world_jobs Job counts by table.\n")
		fmt.Fprintf(rw, "# TYPE camp_world_jobs gauge\n")
		fmt.Fprintf(rw, "camp_world_jobs{world=%q,table=%q} %d\n", id, "board", m.BoardJobs)
		fmt.Fprintf(rw, "camp_world_jobs{world=%q,table=%q} %d\n", id, "active", m.ActiveJobs)

		fmt.Fprintf(rw, "# HELP camp_path_cache_total Path cache lookups.\n")
		fmt.Fprintf(rw, "# TYPE camp_path_cache_total counter\n")
		fmt.Fprintf(rw, "camp_path_cache_total{world=%q,result=%q} %d\n", id, "hit", m.PathHits)
		fmt.Fprintf(rw, "camp_path_cache_total{world=%q,result=%q} %d\n", id, "miss", m.PathMisses)

		fmt.Fprintf(rw, "# HELP camp_world_queue_depth Channel backlog depth.\n")
		fmt.Fprintf(rw, "# TYPE camp_world_queue_depth gauge\n")
		fmt.Fprintf(rw, "camp_world_queue_depth{world=%q,queue=%q} %d\n", id, "inbox", m.QueueDepths.Inbox)
		fmt.Fprintf(rw, "camp_world_queue_depth{world=%q,queue=%q} %d\n", id, "join", m.QueueDepths.Join)
		fmt.Fprintf(rw, "camp_world_queue_depth{world=%q,queue=%q} %d\n", id, "leave", m.QueueDepths.Leave)

		fmt.Fprintf(rw, "# HELP camp_world_step_ms Last tick step duration in milliseconds.\n")
		fmt.Fprintf(rw, "# TYPE camp_world_step_ms gauge\n")
		fmt.Fprintf(rw, "camp_world_step_ms{world=%q} %.3f\n", id, m.StepMS)
	})
	mux.HandleFunc("/v1/ws", ws.NewServer(w, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func worldIDOrDefault(cfg world.WorldConfig) string {
	if cfg.ID != "" {
		return cfg.ID
	}
	return "camp_1"
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func latestSnapshot(worldDir string) string {
	dir := filepath.Join(worldDir, "snapshots")
	ents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var best string
	var bestTick uint64
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".snap.zst") {
			continue
		}
		base := strings.TrimSuffix(name, ".snap.zst")
		// Names look like <world>-<tick>.snap.zst.
		i := strings.LastIndexByte(base, '-')
		if i < 0 {
			continue
		}
		tick, err := strconv.ParseUint(base[i+1:], 10, 64)
		if err != nil {
			continue
		}
		if best == "" || tick > bestTick {
			bestTick = tick
			best = filepath.Join(dir, name)
		}
	}
	return best
}

type multiTickLogger struct {
	a world.TickLogger
	b world.TickLogger
}

func (m multiTickLogger) WriteTick(entry world.TickLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteTick(entry)
	}
	if m.b != nil {
		_ = m.b.WriteTick(entry)
	}
	return nil
}

type multiAuditLogger struct {
	a world.AuditLogger
	b world.AuditLogger
}

func (m multiAuditLogger) WriteAudit(entry world.AuditEntry) error {
	if m.a != nil {
		_ = m.a.WriteAudit(entry)
	}
	if m.b != nil {
		_ = m.b.WriteAudit(entry)
	}
	return nil
}
