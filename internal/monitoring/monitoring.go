// FilePath: internal/monitoring/monitoring.go
package monitoring

import (
	"sync"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	// Quiet suppresses the per-event log line
	Quiet bool
}

// Service counts hub events since process start.
type Service struct {
	config  Config
	started time.Time

	mu     sync.Mutex
	counts map[string]int64
	last   map[string]time.Time
}

// Snapshot is the read-only view served on the metrics endpoint
type Snapshot struct {
	Since    time.Time            `json:"since"`
	Events   map[string]int64     `json:"events"`
	LastSeen map[string]time.Time `json:"last_seen"`
}

// NewService creates a new monitoring service
func NewService(config Config) *Service {
	return &Service{
		config:  config,
		started: time.Now(),
		counts:  make(map[string]int64),
		last:    make(map[string]time.Time),
	}
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ts := time.Now()

	s.mu.Lock()
	s.counts[eventName]++
	s.last[eventName] = ts
	s.mu.Unlock()

	if !s.config.Quiet {
		nuts.L.Infof("[Monitoring] Event %s recorded at %v with labels: %v", eventName, ts, labels)
	}
}

// EventCount returns how many times eventName was recorded
func (s *Service) EventCount(eventName string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[eventName]
}

// Snapshot copies the current counters.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Since:    s.started,
		Events:   make(map[string]int64, len(s.counts)),
		LastSeen: make(map[string]time.Time, len(s.last)),
	}
	for k, v := range s.counts {
		snap.Events[k] = v
	}
	for k, v := range s.last {
		snap.LastSeen[k] = v
	}
	return snap
}
