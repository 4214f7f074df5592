// AngelaMos | 2026
// dto.go

package admin

// SystemOverview.Catalog maps each kind to its row count, or -1 when the
// count failed.
type SystemOverview struct {
	Database ComponentStatus[DBPoolStats]    `json:"database"`
	Redis    ComponentStatus[RedisPoolStats] `json:"redis"`
	Runtime  RuntimeStats                    `json:"runtime"`
	Catalog  map[string]int                  `json:"catalog"`
	Users    int                             `json:"users"`
}

type ComponentStatus[S any] struct {
	Healthy bool `json:"healthy"`
	Stats   *S   `json:"stats,omitempty"`
}

type DBPoolStats struct {
	MaxOpenConnections int    `json:"max_open_connections"`
	OpenConnections    int    `json:"open_connections"`
	InUse              int    `json:"in_use"`
	Idle               int    `json:"idle"`
	WaitCount          int64  `json:"wait_count"`
	WaitDuration       string `json:"wait_duration"`
}

type RedisPoolStats struct {
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	Timeouts   uint32 `json:"timeouts"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
	MemSys       uint64 `json:"mem_sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
