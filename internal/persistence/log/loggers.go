// Package log writes the simulation's durable streams: the per-tick record
// (inputs + state digest, consumed by cmd/replay) and the audit trail of
// world mutations. Both are zstd-compressed JSONL, rotated hourly.
package log

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/acaradonna/goblin-camp-sub001/internal/sim/world"
)

type JSONLZstdWriter struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewJSONLZstdWriter(baseDir, prefix string) *JSONLZstdWriter {
	return &JSONLZstdWriter{baseDir: baseDir, prefix: prefix}
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	hour := time.Now().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *JSONLZstdWriter) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}

func (w *JSONLZstdWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	p := w.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 128*1024)
	w.curHour = hour
	return nil
}

func (w *JSONLZstdWriter) closeLocked() error {
	var err error
	if w.w != nil {
		_ = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		err = w.enc.Close()
		w.enc = nil
	}
	if w.f != nil {
		_ = w.f.Close()
		w.f = nil
	}
	w.curHour = ""
	return err
}

// TickLogWriter satisfies world.TickLogger.
type TickLogWriter struct{ w *JSONLZstdWriter }

func NewTickLogWriter(baseDir string) *TickLogWriter {
	return &TickLogWriter{w: NewJSONLZstdWriter(baseDir, "ticks")}
}

func (t *TickLogWriter) WriteTick(entry world.TickLogEntry) error { return t.w.Write(entry) }
func (t *TickLogWriter) Close() error                             { return t.w.Close() }

// AuditLogWriter satisfies world.AuditLogger.
type AuditLogWriter struct{ w *JSONLZstdWriter }

func NewAuditLogWriter(baseDir string) *AuditLogWriter {
	return &AuditLogWriter{w: NewJSONLZstdWriter(baseDir, "audit")}
}

func (a *AuditLogWriter) WriteAudit(entry world.AuditEntry) error { return a.w.Write(entry) }
func (a *AuditLogWriter) Close() error                            { return a.w.Close() }
