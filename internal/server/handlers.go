package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/smahajan/grahas/internal/constants"
	"github.com/smahajan/grahas/pkg/siddhanta"
)

// Handlers contains all HTTP handlers for the positions API.
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(controller *Controller) *Handlers {
	return &Handlers{controller: controller}
}

// BodyPosition is the per-body payload of a positions response. In corrected
// modes exactly one of CorrectedLongitudeDeg and CorrectionError is set: a
// body without a fitted model keeps its classical longitude and reports why.
type BodyPosition struct {
	LongitudeDeg          float64  `json:"longitude_deg"`
	LatitudeDeg           float64  `json:"latitude_deg"`
	DeclinationDeg        float64  `json:"declination_deg"`
	CorrectedLongitudeDeg *float64 `json:"corrected_longitude_deg,omitempty"`
	CorrectionError       string   `json:"correction_error,omitempty"`
}

// PositionsResponse is the full payload of GET /api/v1/positions.
type PositionsResponse struct {
	At        string                  `json:"at"`
	JulianDay float64                 `json:"julian_day"`
	DayCount  float64                 `json:"day_count"`
	Mode      string                  `json:"mode"`
	RunID     string                  `json:"run_id,omitempty"`
	Bodies    map[string]BodyPosition `json:"bodies"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// GetPositions computes all body positions at a requested instant.
// Query parameters: at (RFC3339, defaults to now) and mode (siddhanta,
// modern, or both; defaults to siddhanta).
func (h *Handlers) GetPositions(w http.ResponseWriter, r *http.Request) {
	c := h.controller

	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'at' parameter: expected RFC3339 timestamp")
			return
		}
		at = parsed.UTC()
	}

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "siddhanta"
	}
	switch mode {
	case "siddhanta", "modern", "both":
	default:
		writeError(w, http.StatusBadRequest, "invalid 'mode' parameter: expected siddhanta, modern, or both")
		return
	}
	corrected := mode == "modern" || mode == "both"
	if corrected && c.table == nil {
		writeError(w, http.StatusServiceUnavailable, "no coefficient table loaded; corrected modes unavailable")
		return
	}

	civil := siddhanta.FromTime(at)
	result, err := c.engine.At(civil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := PositionsResponse{
		At:        at.Format(time.RFC3339),
		JulianDay: result.JulianDay,
		DayCount:  result.DayCount,
		Mode:      mode,
		Bodies:    make(map[string]BodyPosition, len(result.Positions)),
	}
	if corrected {
		resp.RunID = c.tableRun
	}
	for body, pos := range result.Positions {
		bp := BodyPosition{
			LongitudeDeg:   pos.LongitudeDeg,
			LatitudeDeg:    pos.LatitudeDeg,
			DeclinationDeg: pos.DeclinationDeg,
		}
		if corrected {
			if lon, err := c.table.Apply(string(body), pos.LongitudeDeg, result.DayCount); err == nil {
				bp.CorrectedLongitudeDeg = &lon
			} else {
				bp.CorrectionError = err.Error()
			}
		}
		resp.Bodies[string(body)] = bp
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetBodies lists the supported body names in traditional order.
func (h *Handlers) GetBodies(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(siddhanta.Bodies))
	for i, b := range siddhanta.Bodies {
		names[i] = string(b)
	}
	writeJSON(w, http.StatusOK, map[string]any{"bodies": names})
}

// GetHealth reports liveness, version, and whether a coefficient table is
// loaded.
func (h *Handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"version":       constants.Version,
		"coeffs_loaded": h.controller.table != nil,
		"coeffs_run_id": h.controller.tableRun,
	})
}
