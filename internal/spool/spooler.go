// Package spool routes classified print jobs to their output sinks.
package spool

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mzyy94/spoolsniff/internal/config"
	"github.com/mzyy94/spoolsniff/internal/datastream"
)

// DefaultMaxJobSize bounds a single job held in memory.
const DefaultMaxJobSize = 64 << 20

var rawExtensions = map[datastream.DataType]string{
	datastream.AFP:       "afp",
	datastream.SCS:       "scs",
	datastream.UserASCII: "txt",
}

// Options configures a Spooler.
type Options struct {
	OutputDir  string    // used when settings leave OutputDir empty
	MaxJobSize int       // 0 = DefaultMaxJobSize
	Publisher  Publisher // optional
}

// Spooler classifies jobs and writes them out according to the current
// settings. Submit may be called from multiple goroutines.
type Spooler struct {
	settings *config.Store
	opts     Options
	status   *Status
}

// New creates a Spooler reading routes from settings.
func New(settings *config.Store, opts Options) *Spooler {
	if opts.MaxJobSize <= 0 {
		opts.MaxJobSize = DefaultMaxJobSize
	}
	return &Spooler{settings: settings, opts: opts, status: NewStatus()}
}

// Status returns the live status tracker.
func (s *Spooler) Status() *Status { return s.status }

// MaxJobSize returns the configured job size limit.
func (s *Spooler) MaxJobSize() int { return s.opts.MaxJobSize }

// Submit classifies the job (unless already classified), applies the
// configured route, and publishes a job event.
func (s *Spooler) Submit(ctx context.Context, job *Job) (*Result, error) {
	s.status.Begin()
	res, err := s.process(ctx, job)
	s.status.SetResult(res, err)
	if err != nil {
		slog.Warn("job failed", "id", job.ID, "name", job.Name, "source", job.Source, "err", err)
		return nil, err
	}
	return res, nil
}

func (s *Spooler) process(ctx context.Context, job *Job) (*Result, error) {
	if len(job.Data) == 0 {
		return nil, ErrEmptyJob
	}
	if len(job.Data) > s.opts.MaxJobSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrJobTooLarge, len(job.Data), s.opts.MaxJobSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, err := datastream.Analyze(job.Data, 0, len(job.Data))
	if err != nil {
		return nil, err
	}
	if !job.Type.Valid() {
		job.Type = report.Type
	}

	settings := s.settings.Get()
	route := settings.Route(job.Type.String())
	if route == config.RoutePDF && job.Type != datastream.UserASCII {
		slog.Warn("pdf route only renders plain text, storing raw", "id", job.ID, "type", job.Type)
		route = config.RouteRaw
	}
	slog.Info("job classified",
		"id", job.ID,
		"name", job.Name,
		"source", job.Source,
		"bytes", len(job.Data),
		"type", job.Type,
		"afp", report.AFP,
		"scs", report.SCS,
		"route", route,
	)

	res := &Result{
		JobID:  job.ID,
		Name:   job.Name,
		Source: job.Source,
		Type:   job.Type,
		Route:  route,
		Bytes:  len(job.Data),
	}

	switch route {
	case config.RouteDrop:
	case config.RoutePDF:
		path, err := s.outputPath(settings, job, "pdf")
		if err != nil {
			return nil, err
		}
		opts := PDFOptions{
			PageSize:    settings.PageSize,
			Orientation: settings.Orientation,
			FontSize:    settings.FontSize,
			Title:       job.Name,
		}
		if err := WriteTextPDF(job.Data, opts, path); err != nil {
			return nil, fmt.Errorf("write PDF: %w", err)
		}
		res.Path = path
	default:
		path, err := s.outputPath(settings, job, rawExtensions[job.Type])
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(path, job.Data, 0644); err != nil {
			return nil, fmt.Errorf("write %s data: %w", job.Type, err)
		}
		res.Path = path
	}

	if s.opts.Publisher != nil {
		ev := JobEvent{Result: *res, ReceivedAt: job.ReceivedAt, AFP: report.AFP.String(), SCS: report.SCS.String()}
		if err := publishEvent(s.opts.Publisher, ev); err != nil {
			slog.Warn("job event publish failed", "id", job.ID, "err", err)
		}
	}
	return res, nil
}

func (s *Spooler) outputPath(settings config.Settings, job *Job, ext string) (string, error) {
	dir := settings.OutputDir
	if dir == "" {
		dir = s.opts.OutputDir
	}
	if dir == "" {
		return "", fmt.Errorf("no output directory configured")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	name := fmt.Sprintf("job_%s_%s.%s", job.ReceivedAt.Format("20060102_150405"), job.ID.String()[:8], ext)
	return filepath.Join(dir, name), nil
}
