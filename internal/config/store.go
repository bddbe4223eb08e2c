package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Route names accepted in Settings.Routes.
const (
	RoutePDF  = "pdf"  // render plain text to PDF
	RouteRaw  = "raw"  // store the job bytes unchanged
	RouteDrop = "drop" // discard after classification
)

// Settings holds user-configurable spool behaviour.
type Settings struct {
	OutputDir   string            `json:"outputDir"`   // empty = <data dir>/out
	Routes      map[string]string `json:"routes"`      // data type name -> route
	PageSize    string            `json:"pageSize"`    // "A4", "Letter", "Legal", "A3"
	Orientation string            `json:"orientation"` // "P" or "L"
	FontSize    float64           `json:"fontSize"`    // points
}

// DefaultSettings returns the default spool settings.
func DefaultSettings() Settings {
	return Settings{
		Routes: map[string]string{
			"AFP":       RouteRaw,
			"SCS":       RouteRaw,
			"USERASCII": RoutePDF,
		},
		PageSize:    "A4",
		Orientation: "P",
		FontSize:    10,
	}
}

// Route returns the route configured for a data type name, falling back to
// the default routing.
func (s Settings) Route(dataType string) string {
	key := strings.ToUpper(dataType)
	if r, ok := s.Routes[key]; ok && r != "" {
		return r
	}
	return DefaultSettings().Routes[key]
}

// Validate checks route names, orientation and font size.
func (s Settings) Validate() error {
	for t, r := range s.Routes {
		switch r {
		case RoutePDF, RouteRaw, RouteDrop:
		default:
			return fmt.Errorf("route for %s: unknown route %q", t, r)
		}
	}
	switch s.Orientation {
	case "", "P", "L":
	default:
		return fmt.Errorf("orientation must be P or L, got %q", s.Orientation)
	}
	if s.FontSize < 0 || s.FontSize > 72 {
		return fmt.Errorf("font size out of range: %v", s.FontSize)
	}
	return nil
}

// Store provides thread-safe settings persistence backed by a JSON file.
type Store struct {
	mu       sync.RWMutex
	settings Settings
	path     string
}

// NewStore creates a Store that persists settings to dataDir/settings.json.
// If the file does not exist or is invalid, default settings are used.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	s := &Store{
		path:     filepath.Join(dataDir, "settings.json"),
		settings: DefaultSettings(),
	}
	s.load()
	return s, nil
}

// NewMemoryStore creates a Store that keeps settings in memory only (no file persistence).
func NewMemoryStore() *Store {
	return &Store{settings: DefaultSettings()}
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.settings
	out.Routes = maps.Clone(s.settings.Routes)
	return out
}

// Update validates and replaces the settings, then persists to disk.
func (s *Store) Update(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	settings.Routes = normalizeRoutes(settings.Routes)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.save()
}

func normalizeRoutes(routes map[string]string) map[string]string {
	out := make(map[string]string, len(routes))
	for t, r := range routes {
		out[strings.ToUpper(t)] = r
	}
	return out
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return // file missing is OK, use defaults
	}
	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("invalid settings file, using defaults", "path", s.path, "err", err)
		return
	}
	if err := settings.Validate(); err != nil {
		slog.Warn("invalid settings file, using defaults", "path", s.path, "err", err)
		return
	}
	settings.Routes = normalizeRoutes(settings.Routes)
	s.settings = settings
}

func (s *Store) save() error {
	if s.path == "" {
		return nil // memory-only mode
	}
	data, err := json.MarshalIndent(s.settings, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
