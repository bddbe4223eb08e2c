package spool

import (
	"maps"
	"sync"
	"time"
)

// StatusSnapshot is a point-in-time copy of the spool status.
type StatusSnapshot struct {
	Processing int            `json:"processing"`
	Processed  int            `json:"processed"`
	Failed     int            `json:"failed"`
	ByType     map[string]int `json:"byType"`
	LastJob    *Result        `json:"lastJob,omitempty"`
	LastJobAt  string         `json:"lastJobAt,omitempty"` // RFC3339
	LastError  string         `json:"lastError,omitempty"`
}

// Status tracks intake activity. Safe for concurrent use.
type Status struct {
	mu   sync.RWMutex
	snap StatusSnapshot
}

// NewStatus returns an empty Status.
func NewStatus() *Status {
	return &Status{snap: StatusSnapshot{ByType: make(map[string]int)}}
}

// Snapshot returns a copy of the current status.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.snap
	out.ByType = maps.Clone(s.snap.ByType)
	if s.snap.LastJob != nil {
		last := *s.snap.LastJob
		out.LastJob = &last
	}
	return out
}

// Begin marks a job as in progress.
func (s *Status) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Processing++
}

// SetResult records the outcome of a job started with Begin.
func (s *Status) SetResult(res *Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Processing > 0 {
		s.snap.Processing--
	}
	s.snap.LastJobAt = time.Now().UTC().Format(time.RFC3339)
	if err != nil {
		s.snap.Failed++
		s.snap.LastError = err.Error()
		return
	}
	s.snap.Processed++
	s.snap.LastError = ""
	if res != nil {
		s.snap.ByType[res.Type.String()]++
		last := *res
		s.snap.LastJob = &last
	}
}
