package spool

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mzyy94/spoolsniff/internal/datastream"
)

// Job sources.
const (
	SourceRawPort   = "rawport"
	SourceHotFolder = "hotfolder"
	SourceHTTP      = "http"
	SourceCLI       = "cli"
)

var (
	ErrEmptyJob    = errors.New("empty print job")
	ErrJobTooLarge = errors.New("print job exceeds size limit")
)

// Job is a single print data stream received by one of the intakes.
type Job struct {
	ID         uuid.UUID
	Name       string
	Source     string
	Data       []byte
	Type       datastream.DataType // zero until classified
	ReceivedAt time.Time
}

// NewJob creates an unclassified job with a fresh ID.
func NewJob(name, source string, data []byte) *Job {
	return &Job{
		ID:         uuid.New(),
		Name:       name,
		Source:     source,
		Data:       data,
		ReceivedAt: time.Now(),
	}
}

// Result describes what the spooler did with a job.
type Result struct {
	JobID  uuid.UUID           `json:"jobId"`
	Name   string              `json:"name"`
	Source string              `json:"source"`
	Type   datastream.DataType `json:"type"`
	Route  string              `json:"route"`
	Path   string              `json:"path,omitempty"`
	Bytes  int                 `json:"bytes"`
}
