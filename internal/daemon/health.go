package daemon

import (
	"runtime"
	"sync"
	"time"
)

// HealthStatus is a point-in-time report of the daemon's state.
type HealthStatus struct {
	Status        string    `json:"status"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	MemoryMB      float64   `json:"memory_mb"`
	LastCheck     time.Time `json:"last_check"`
	NextReminder  time.Time `json:"next_reminder_check,omitempty"`
	Version       string    `json:"version,omitempty"`
	Goroutines    int       `json:"goroutines"`
}

// HealthChecker provides health status for the daemon.
type HealthChecker struct {
	mu        sync.RWMutex
	startTime time.Time
	lastCheck time.Time
	version   string
	nextRun   func() time.Time
}

// NewHealthChecker creates a new health checker. nextRun may be nil.
func NewHealthChecker(version string, nextRun func() time.Time) *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		version:   version,
		nextRun:   nextRun,
	}
}

// Check performs a health check and returns the status.
func (h *HealthChecker) Check() *HealthStatus {
	h.mu.Lock()
	h.lastCheck = time.Now()
	last := h.lastCheck
	h.mu.Unlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	status := &HealthStatus{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		MemoryMB:      float64(memStats.Alloc) / 1024 / 1024,
		LastCheck:     last,
		Version:       h.version,
		Goroutines:    runtime.NumGoroutine(),
	}

	if h.nextRun != nil {
		status.NextReminder = h.nextRun()
	}

	return status
}
