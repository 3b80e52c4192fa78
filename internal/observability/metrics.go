package observability

import (
	"sync"
	"time"
)

type routeKey struct {
	Method string
	Path   string
}

type routeStats struct {
	count    int64
	duration time.Duration
	byStatus map[int]int64
}

// Metrics keeps in-process request and error counters, grouped per route.
type Metrics struct {
	mu       sync.Mutex
	requests map[routeKey]*routeStats
	errors   map[string]int64
}

// NewMetrics initializes empty counters.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[routeKey]*routeStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts one served request and accumulates its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := routeKey{Method: method, Path: path}

	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &routeStats{byStatus: make(map[int]int64)}
		m.requests[key] = stats
	}
	stats.count++
	stats.duration += duration
	stats.byStatus[status]++
}

// RecordError counts one failed request under its error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[code]++
}

// RequestCount returns how many requests a route has served.
func (m *Metrics) RequestCount(method, path string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[routeKey{Method: method, Path: path}]
	if !ok {
		return 0
	}
	return stats.count
}

// StatusCount returns how often a route answered with the given status.
func (m *Metrics) StatusCount(method, path string, status int) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[routeKey{Method: method, Path: path}]
	if !ok {
		return 0
	}
	return stats.byStatus[status]
}

// ErrorCount returns how often the given error code was recorded.
func (m *Metrics) ErrorCount(code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[code]
}
