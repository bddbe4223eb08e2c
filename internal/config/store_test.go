package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, RouteRaw, s.Route("AFP"))
	assert.Equal(t, RouteRaw, s.Route("SCS"))
	assert.Equal(t, RoutePDF, s.Route("USERASCII"))
	assert.Equal(t, "A4", s.PageSize)
	assert.Equal(t, "P", s.Orientation)
	assert.Equal(t, 10.0, s.FontSize)
	assert.NoError(t, s.Validate())
}

func TestSettings_RouteFallback(t *testing.T) {
	s := Settings{Routes: map[string]string{"SCS": RouteDrop}}
	assert.Equal(t, RouteDrop, s.Route("scs"))
	assert.Equal(t, RouteRaw, s.Route("AFP"))
	assert.Equal(t, RoutePDF, s.Route("USERASCII"))
	assert.Equal(t, "", s.Route("PCL"))
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"unknown_route", func(s *Settings) { s.Routes["AFP"] = "print" }, true},
		{"bad_orientation", func(s *Settings) { s.Orientation = "X" }, true},
		{"landscape", func(s *Settings) { s.Orientation = "L" }, false},
		{"font_too_large", func(s *Settings) { s.FontSize = 100 }, true},
		{"negative_font", func(s *Settings) { s.FontSize = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	st, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), st.Get())

	s := DefaultSettings()
	s.OutputDir = "/var/spool/out"
	s.Routes = map[string]string{"afp": RouteDrop}
	s.FontSize = 12
	require.NoError(t, st.Update(s))

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	got := reopened.Get()
	assert.Equal(t, "/var/spool/out", got.OutputDir)
	assert.Equal(t, RouteDrop, got.Route("AFP"))
	assert.Equal(t, 12.0, got.FontSize)

	_, err = os.Stat(filepath.Join(dir, "settings.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestStore_RejectsInvalidUpdate(t *testing.T) {
	st := NewMemoryStore()
	s := DefaultSettings()
	s.Routes["SCS"] = "bogus"
	assert.Error(t, st.Update(s))
	assert.Equal(t, RouteRaw, st.Get().Route("SCS"))
}

func TestStore_InvalidFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte("{not json"), 0644))
	st, err := NewStore(dir)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), st.Get())
}

func TestStore_GetReturnsCopy(t *testing.T) {
	st := NewMemoryStore()
	s := st.Get()
	s.Routes["AFP"] = RouteDrop
	assert.Equal(t, RouteRaw, st.Get().Route("AFP"))
}
