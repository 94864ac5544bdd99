package world

import (
	"fmt"
	"sort"
)

// Item type tags.
const (
	ItemStone = "STONE"
)

// ItemEntity is a physical object lying in the world or riding in a
// worker's inventory slot. While held, HeldBy is set and the entity is
// absent from the itemsAt position index.
type ItemEntity struct {
	EntityID    string
	Pos         Vec2i
	Kind        string
	Carriable   bool
	HeldBy      string // worker id, empty while on the ground
	CreatedTick uint64
}

func (w *World) newItemEntityID() string {
	n := w.nextItemNum.Add(1)
	return fmt.Sprintf("IT%06d", n)
}

func (w *World) spawnItemEntity(nowTick uint64, actor string, pos Vec2i, kind string, carriable bool, reason string) string {
	if kind == "" {
		return ""
	}
	id := w.newItemEntityID()
	e := &ItemEntity{
		EntityID:    id,
		Pos:         pos,
		Kind:        kind,
		Carriable:   carriable,
		CreatedTick: nowTick,
	}
	w.items[id] = e
	w.itemsAt[pos] = append(w.itemsAt[pos], id)
	w.spawnedThisTick = append(w.spawnedThisTick, id)
	w.auditEvent(nowTick, actor, "ITEM_SPAWN", pos, reason, map[string]any{
		"entity_id": id,
		"kind":      kind,
	})
	return id
}

// RemoveItemEntity deletes an item outright (external effects, tests for the
// vanished-pickup path). Held items also vacate the holder's slot.
func (w *World) RemoveItemEntity(nowTick uint64, actor, id, reason string) {
	e := w.items[id]
	if e == nil {
		return
	}
	delete(w.items, id)
	if e.HeldBy != "" {
		if wk := w.workers[e.HeldBy]; wk != nil && wk.Carrying == id {
			wk.Carrying = ""
		}
	} else {
		w.removeFromPosIndex(e.Pos, id)
	}
	w.auditEvent(nowTick, actor, "ITEM_DESPAWN", e.Pos, reason, map[string]any{
		"entity_id": id,
		"kind":      e.Kind,
	})
}

func (w *World) removeFromPosIndex(pos Vec2i, id string) {
	ids := w.itemsAt[pos]
	for i, v := range ids {
		if v == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(w.itemsAt, pos)
	} else {
		w.itemsAt[pos] = ids
	}
}

// carriableItemAt finds the lowest-id carriable item on the ground at pos.
func (w *World) carriableItemAt(pos Vec2i) *ItemEntity {
	ids := w.itemsAt[pos]
	if len(ids) == 0 {
		return nil
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	for _, id := range sorted {
		e := w.items[id]
		if e != nil && e.Carriable && e.HeldBy == "" {
			return e
		}
	}
	return nil
}

// pickUpItem moves the item into the worker's inventory slot and removes it
// from the position index.
func (w *World) pickUpItem(nowTick uint64, wk *Worker, e *ItemEntity) {
	w.removeFromPosIndex(e.Pos, e.EntityID)
	e.HeldBy = wk.ID
	wk.Carrying = e.EntityID
	w.auditEvent(nowTick, wk.ID, "ITEM_PICKUP", e.Pos, "", map[string]any{
		"entity_id": e.EntityID,
		"kind":      e.Kind,
	})
}

// putDownItem places the carried item on the ground at pos and clears the
// inventory slot.
func (w *World) putDownItem(nowTick uint64, wk *Worker, e *ItemEntity, pos Vec2i) {
	from := e.Pos
	e.Pos = pos
	e.HeldBy = ""
	wk.Carrying = ""
	w.itemsAt[pos] = append(w.itemsAt[pos], e.EntityID)
	w.auditEvent(nowTick, wk.ID, "ITEM_MOVE", from, "HAUL", map[string]any{
		"entity_id": e.EntityID,
		"to":        pos.ToArray(),
		"kind":      e.Kind,
	})
}

// ItemPos reports an item's position for tests; held items report their
// holder's position.
func (w *World) ItemPos(id string) (Vec2i, bool) {
	e := w.items[id]
	if e == nil {
		return Vec2i{}, false
	}
	if e.HeldBy != "" {
		if wk := w.workers[e.HeldBy]; wk != nil {
			return wk.Pos, true
		}
	}
	return e.Pos, true
}

// ItemsAt lists item entity ids on the ground at pos, ascending.
func (w *World) ItemsAt(pos Vec2i) []string {
	ids := append([]string(nil), w.itemsAt[pos]...)
	sort.Strings(ids)
	return ids
}

func (w *World) sortedItemIDs() []string {
	ids := make([]string, 0, len(w.items))
	for id := range w.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
