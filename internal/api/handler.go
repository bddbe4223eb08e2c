// Package api serves the spoolsniff HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mzyy94/spoolsniff/internal/config"
	"github.com/mzyy94/spoolsniff/internal/datastream"
	"github.com/mzyy94/spoolsniff/internal/spool"
)

// Info describes the running service for /api/status.
type Info struct {
	DeviceName string `json:"deviceName"`
	DeviceUUID string `json:"uuid,omitempty"`
	RawPort    int    `json:"rawPort,omitempty"`
	HotFolder  string `json:"hotFolder,omitempty"`
	NATS       bool   `json:"nats"`
}

type handler struct {
	spooler  *spool.Spooler
	settings *config.Store
	info     Info
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(sp *spool.Spooler, settings *config.Store, info Info) http.Handler {
	h := &handler{spooler: sp, settings: settings, info: info}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("GET /api/settings", h.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", h.handlePutSettings)
	mux.HandleFunc("POST /api/classify", h.handleClassify)
	mux.HandleFunc("POST /api/jobs", h.handleSubmitJob)
	mux.HandleFunc("GET /api/commands", h.handleCommands)
	return mux
}

type statusResponse struct {
	Service   Info                 `json:"service"`
	Spool     spool.StatusSnapshot `json:"spool"`
	UpdatedAt string               `json:"updatedAt"`
}

func (h *handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Service:   h.info,
		Spool:     h.spooler.Status().Snapshot(),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Settings API ---

func (h *handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Get())
}

func (h *handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var s config.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.settings.Update(s); err != nil {
		slog.Warn("settings save failed", "err", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.settings.Get())
}

// --- Classification API ---

type classifyResponse struct {
	Type datastream.DataType `json:"type"`
	AFP  datastream.Verdict  `json:"afp"`
	SCS  datastream.Verdict  `json:"scs"`
	Size int                 `json:"size"`
}

func (h *handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readBody(w, r)
	if !ok {
		return
	}
	offset, length, err := parseWindow(r, len(data))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := datastream.Analyze(data, offset, length)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{
		Type: report.Type,
		AFP:  report.AFP,
		SCS:  report.SCS,
		Size: len(data),
	})
}

// parseWindow reads the optional offset and length query parameters. The
// window defaults to the whole body; range checks are left to datastream.
func parseWindow(r *http.Request, size int) (offset, length int, err error) {
	q := r.URL.Query()
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}
	length = size - offset
	if v := q.Get("length"); v != "" {
		if length, err = strconv.Atoi(v); err != nil {
			return 0, 0, fmt.Errorf("invalid length %q", v)
		}
	}
	return offset, length, nil
}

// --- Job API ---

func (h *handler) handleSubmitJob(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readBody(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "http-" + time.Now().UTC().Format("20060102-150405")
	}
	job := spool.NewJob(name, spool.SourceHTTP, data)
	if v := r.URL.Query().Get("type"); v != "" {
		t, err := datastream.ParseDataType(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		job.Type = t
	}

	res, err := h.spooler.Submit(r.Context(), job)
	switch {
	case errors.Is(err, spool.ErrEmptyJob):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, spool.ErrJobTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
	case err != nil:
		http.Error(w, "job processing failed", http.StatusInternalServerError)
	default:
		writeJSON(w, http.StatusCreated, res)
	}
}

type commandInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Sequence string `json:"sequence"`
}

func (h *handler) handleCommands(w http.ResponseWriter, r *http.Request) {
	cmds := datastream.Commands()
	out := make([]commandInfo, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, commandInfo{Name: c.Name, Kind: c.Kind.String(), Sequence: c.String()})
	}
	writeJSON(w, http.StatusOK, out)
}

// readBody reads at most MaxJobSize bytes of the request body.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	limit := h.spooler.MaxJobSize()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, int64(limit)))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
