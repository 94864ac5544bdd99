package world

// Deterministic terrain generation: seeded position hashing places wall and
// liquid clusters so equal seeds always produce equal maps, with a guaranteed
// open clearing around the spawn corner so workers can always navigate out.

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash2(seed int64, x, y int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xbf58476d1ce4e5b9)
	return mix64(v)
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

func withinSpawnClear(x, y, radius int) bool {
	if radius <= 0 {
		return false
	}
	return x*x+y*y <= radius*radius
}

// inCluster reports whether (x,y) falls inside a deterministically placed
// cluster: each grid cell rolls for a center, and membership is a radius
// check against the centers of the cell and its eight neighbors.
func inCluster(seed int64, x, y, grid, radius int, probPermille uint64) bool {
	if grid <= 0 || radius <= 0 || probPermille == 0 {
		return false
	}
	gx := floorDiv(x, grid)
	gy := floorDiv(y, grid)
	r2 := radius * radius

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			cgx := gx + dx
			cgy := gy + dy
			h := hash2(seed, cgx, cgy)
			if h%1000 >= probPermille {
				continue
			}
			ox := int((h >> 10) % uint64(grid))
			oy := int((h >> 20) % uint64(grid))
			cx := cgx*grid + ox
			cy := cgy*grid + oy

			ddx := x - cx
			ddy := y - cy
			if ddx*ddx+ddy*ddy <= r2 {
				return true
			}
		}
	}
	return false
}

func generateTiles(cfg WorldConfig) *TileMap {
	m := NewTileMap(cfg.Width, cfg.Height)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			k := TileFloor
			if !withinSpawnClear(x, y, cfg.SpawnClearRadius) {
				switch {
				case inCluster(cfg.Seed+11, x, y, 24, 4, uint64(cfg.WallClusterPermille)):
					k = TileWall
				case inCluster(cfg.Seed+12, x, y, 48, 3, uint64(cfg.WaterClusterPermille)):
					k = TileWater
				case inCluster(cfg.Seed+13, x, y, 96, 2, uint64(cfg.LavaClusterPermille)):
					k = TileLava
				default:
					// Sprinkle lone walls so open plains still give miners
					// something to dig without a designated cluster nearby.
					if hash2(cfg.Seed+99, x, y)%1000 < uint64(cfg.SprinkleWallPermille) {
						k = TileWall
					}
				}
			}
			m.set(x, y, k)
		}
	}
	return m
}
