package world

type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileWater
	TileLava
)

var tileNames = [...]string{"FLOOR", "WALL", "WATER", "LAVA"}

func (k TileKind) String() string {
	if int(k) < len(tileNames) {
		return tileNames[k]
	}
	return "UNKNOWN"
}

// TileMap is the camp's 2D terrain. Only the world loop mutates it; every
// mutation goes through World.setTile so audit logging and path-cache
// invalidation cannot be skipped.
type TileMap struct {
	W, H  int
	tiles []TileKind
}

func NewTileMap(w, h int) *TileMap {
	return &TileMap{W: w, H: h, tiles: make([]TileKind, w*h)}
}

func (m *TileMap) idx(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0, false
	}
	return y*m.W + x, true
}

func (m *TileMap) InBounds(x, y int) bool {
	_, ok := m.idx(x, y)
	return ok
}

func (m *TileMap) Get(x, y int) (TileKind, bool) {
	i, ok := m.idx(x, y)
	if !ok {
		return 0, false
	}
	return m.tiles[i], true
}

func (m *TileMap) set(x, y int, k TileKind) bool {
	i, ok := m.idx(x, y)
	if !ok {
		return false
	}
	m.tiles[i] = k
	return true
}

// Walkable implements path.Grid: only floor is passable.
func (m *TileMap) Walkable(x, y int) bool {
	k, ok := m.Get(x, y)
	return ok && k == TileFloor
}

// Opaque implements fov.Grid: walls block sight, liquids do not.
func (m *TileMap) Opaque(x, y int) bool {
	k, ok := m.Get(x, y)
	return ok && k == TileWall
}

// Raw exposes the backing tile slice for snapshot export and digesting.
// Callers must not mutate it.
func (m *TileMap) Raw() []TileKind { return m.tiles }
