package world

import (
	"strings"

	"github.com/acaradonna/goblin-camp-sub001/internal/protocol"
)

// applyAct executes one overseer ACT envelope at the tick boundary.
// Rejections are soft: the command is skipped and an event explains why.
func (w *World) applyAct(env ActionEnvelope, nowTick uint64) {
	for _, cmd := range env.Act.Commands {
		if code, msg := w.applyCommand(cmd, nowTick); code != "" {
			w.addEvent(protocol.Event{
				"t":       nowTick,
				"type":    "COMMAND_REJECTED",
				"cmd_id":  cmd.ID,
				"code":    code,
				"message": msg,
			})
		}
	}
}

func (w *World) applyCommand(cmd protocol.Command, nowTick uint64) (code, msg string) {
	pos := Vec2i{X: cmd.Pos[0], Y: cmd.Pos[1]}

	switch cmd.Type {
	case protocol.CmdDesignateMine:
		k, ok := w.tiles.Get(pos.X, pos.Y)
		if !ok {
			return protocol.ErrInvalidTarget, "out of bounds"
		}
		if k != TileWall {
			return protocol.ErrStale, "target not minable"
		}
		w.DesignateMine(nowTick, pos)
		return "", ""

	case protocol.CmdAddStockpile:
		if !w.tiles.Walkable(pos.X, pos.Y) {
			return protocol.ErrBlocked, "stockpile tile not walkable"
		}
		w.AddStockpile(pos, cmd.Accepts)
		return "", ""

	case protocol.CmdSpawnWorker:
		if !w.tiles.Walkable(pos.X, pos.Y) {
			return protocol.ErrBlocked, "spawn tile not walkable"
		}
		var miner, carrier bool
		for _, c := range cmd.Capabilities {
			switch strings.ToUpper(c) {
			case "MINER":
				miner = true
			case "CARRIER":
				carrier = true
			}
		}
		w.SpawnWorker(cmd.Name, pos, miner, carrier)
		return "", ""

	default:
		return protocol.ErrBadRequest, "unknown command type"
	}
}
