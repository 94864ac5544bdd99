package log

import (
	"path/filepath"
	"testing"

	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
	"github.com/acaradonna/goblin-camp-sub001/internal/sim/world"
)

func TestTickLog_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	tw := NewTickLogWriter(dir)

	entries := []world.TickLogEntry{
		{Tick: 0, Digest: "aaa"},
		{Tick: 1, Digest: "bbb", Actions: []world.RecordedAction{{
			SessionID: "s1",
			Act: protocol.ActMsg{
				Type:            protocol.TypeAct,
				ProtocolVersion: protocol.Version,
				Commands: []protocol.Command{
					{Type: protocol.CmdDesignateMine, Pos: [2]int{3, 4}},
				},
			},
		}}},
		{Tick: 2, Digest: "ccc"},
	}
	for _, e := range entries {
		if err := tw.WriteTick(e); err != nil {
			t.Fatalf("write tick %d: %v", e.Tick, err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadTickLog(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("got %d entries, want %d", len(got), len(entries))
	}
	for i, e := range entries {
		if got[i].Tick != e.Tick || got[i].Digest != e.Digest {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], e)
		}
	}
	if len(got[1].Actions) != 1 || got[1].Actions[0].SessionID != "s1" {
		t.Fatalf("actions lost in round trip: %+v", got[1])
	}
	cmd := got[1].Actions[0].Act.Commands[0]
	if cmd.Type != protocol.CmdDesignateMine || cmd.Pos != [2]int{3, 4} {
		t.Fatalf("command mangled: %+v", cmd)
	}
}

func TestTickLog_AppendAfterReopen(t *testing.T) {
	dir := t.TempDir()

	tw := NewTickLogWriter(dir)
	if err := tw.WriteTick(world.TickLogEntry{Tick: 0, Digest: "a"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// A restarted process appends to the same hour's file.
	tw = NewTickLogWriter(dir)
	if err := tw.WriteTick(world.TickLogEntry{Tick: 1, Digest: "b"}); err != nil {
		t.Fatalf("write after reopen: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadTickLog(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0].Tick != 0 || got[1].Tick != 1 {
		t.Fatalf("want both entries in order, got %+v", got)
	}
}

func TestReadTickLog_EmptyDir(t *testing.T) {
	got, err := ReadTickLog(t.TempDir())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no entries, got %d", len(got))
	}
}

func TestAuditLog_WritesFile(t *testing.T) {
	dir := t.TempDir()
	aw := NewAuditLogWriter(dir)
	err := aw.WriteAudit(world.AuditEntry{
		Tick: 7, Actor: "W000001", Action: "SET_TILE", Pos: [2]int{5, 5},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "audit-*.jsonl.zst"))
	if err != nil || len(files) != 1 {
		t.Fatalf("want one audit file, got %v (%v)", files, err)
	}
}
