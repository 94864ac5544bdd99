package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type WorldConfig struct {
	ID         string `yaml:"id"`
	TickRateHz int    `yaml:"tick_rate_hz"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Seed       int64  `yaml:"seed"`

	// Worldgen tuning.
	SpawnClearRadius     int `yaml:"spawn_clear_radius"`
	WallClusterPermille  int `yaml:"wall_cluster_permille"`
	WaterClusterPermille int `yaml:"water_cluster_permille"`
	LavaClusterPermille  int `yaml:"lava_cluster_permille"`
	SprinkleWallPermille int `yaml:"sprinkle_wall_permille"`

	// Worker sight radius used by the OBS builder.
	VisionRadius int `yaml:"vision_radius"`

	PathCacheSize int `yaml:"path_cache_size"`

	// Snapshot cadence; 0 disables periodic snapshots.
	SnapshotEveryTicks int `yaml:"snapshot_every_ticks"`
}

func (c *WorldConfig) applyDefaults() {
	if c.ID == "" {
		c.ID = "camp_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 10
	}
	if c.Width <= 0 {
		c.Width = 64
	}
	if c.Height <= 0 {
		c.Height = 64
	}
	if c.SpawnClearRadius <= 0 {
		c.SpawnClearRadius = 6
	}
	if c.WallClusterPermille <= 0 {
		c.WallClusterPermille = 500
	}
	if c.WaterClusterPermille <= 0 {
		c.WaterClusterPermille = 250
	}
	if c.LavaClusterPermille <= 0 {
		c.LavaClusterPermille = 120
	}
	if c.SprinkleWallPermille <= 0 {
		c.SprinkleWallPermille = 15
	}
	if c.VisionRadius <= 0 {
		c.VisionRadius = 8
	}
	if c.PathCacheSize <= 0 {
		c.PathCacheSize = 1024
	}
}

// LoadConfig reads a WorldConfig from a YAML file. Missing fields fall back
// to defaults at world construction.
func LoadConfig(path string) (WorldConfig, error) {
	var cfg WorldConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
