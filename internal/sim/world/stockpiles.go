package world

import (
	"fmt"
	"sort"
)

// Stockpile accepts items for storage. A nil/empty Accepts set means it
// accepts every item type.
type Stockpile struct {
	ID      string
	Pos     Vec2i
	Accepts map[string]bool
}

func (s *Stockpile) accepts(kind string) bool {
	if len(s.Accepts) == 0 {
		return true
	}
	return s.Accepts[kind]
}

func (w *World) newStockpileID() string {
	n := w.nextStockNum.Add(1)
	return fmt.Sprintf("S%06d", n)
}

// AddStockpile registers a stockpile at pos. accepts==nil accepts all types.
func (w *World) AddStockpile(pos Vec2i, accepts []string) *Stockpile {
	s := &Stockpile{ID: w.newStockpileID(), Pos: pos}
	if len(accepts) > 0 {
		s.Accepts = map[string]bool{}
		for _, k := range accepts {
			s.Accepts[k] = true
		}
	}
	w.stockpiles[s.ID] = s
	return s
}

// nearestStockpile picks the closest accepting stockpile by squared
// Euclidean distance; ties go to the lowest stockpile id.
func (w *World) nearestStockpile(kind string, pos Vec2i) *Stockpile {
	ids := make([]string, 0, len(w.stockpiles))
	for id := range w.stockpiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var best *Stockpile
	bestD := 0
	for _, id := range ids {
		s := w.stockpiles[id]
		if !s.accepts(kind) {
			continue
		}
		d := DistSq(pos, s.Pos)
		if best == nil || d < bestD {
			best = s
			bestD = d
		}
	}
	return best
}
