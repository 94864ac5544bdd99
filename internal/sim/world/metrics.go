package world

// WorldMetrics is a thread-safe read-only view of key runtime signals.
// It is updated from the world loop goroutine and read from HTTP handlers
// and tests.
type WorldMetrics struct {
	Tick uint64 `json:"tick"`

	Workers      int `json:"workers"`
	Clients      int `json:"clients"`
	Items        int `json:"items"`
	Stockpiles   int `json:"stockpiles"`
	Designations int `json:"designations"`

	BoardJobs  int `json:"board_jobs"`
	ActiveJobs int `json:"active_jobs"`

	PathHits   uint64 `json:"path_cache_hits"`
	PathMisses uint64 `json:"path_cache_misses"`

	QueueDepths QueueDepths `json:"queue_depths"`

	StepMS float64 `json:"step_ms"`
}

type QueueDepths struct {
	Inbox int `json:"inbox"`
	Join  int `json:"join"`
	Leave int `json:"leave"`
}

func (w *World) Metrics() WorldMetrics {
	if w == nil {
		return WorldMetrics{}
	}
	m, _ := w.metrics.Load().(WorldMetrics)
	return m
}
