package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ryanpedersen42/risk-report-generator/internal/core"
	"github.com/ryanpedersen42/risk-report-generator/internal/logging"
)

// riskReport is the JSON payload for GET /api/risks. Risks holds the view
// after query application; Count matches what the table will render.
type riskReport struct {
	Count           int         `json:"count"`
	RiskRegisterID  string      `json:"riskRegisterId"`
	FetchedAt       string      `json:"fetchedAt"`
	Pages           int         `json:"pages"`
	CustomFieldKeys []string    `json:"customFieldKeys"`
	Risks           []core.Risk `json:"risks"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleListRisks aggregates the register and returns the normalized,
// query-applied dataset as JSON.
func (s *Server) handleListRisks(w http.ResponseWriter, r *http.Request) {
	report, ok := s.buildReport(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// handleExportCSV runs the same pipeline as handleListRisks and serializes
// the view as a CSV attachment. The cols parameter selects custom-field
// columns appended after the built-in Title/Status/Severity set.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	report, ok := s.buildReport(w, r)
	if !ok {
		return
	}

	cfCols := splitParam(r, "cols")
	csvText := core.RenderCSV(core.ExportColumns(cfCols), core.ExportRows(report.Risks, cfCols))

	filename := fmt.Sprintf("risks_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Write([]byte(csvText))
}

// buildReport runs the whole pipeline for one request: resolve the token
// and register id, aggregate the pages, normalize, and apply the query.
// When ok is false the error response has already been written.
func (s *Server) buildReport(w http.ResponseWriter, r *http.Request) (*riskReport, bool) {
	token := r.Header.Get("X-Drata-Token")
	if token == "" {
		token = s.cfg.Upstream.Token
	}
	if token == "" {
		s.respondError(w, r, http.StatusBadRequest, ErrorResponse{
			Error: "Missing API token. Provide X-Drata-Token header or DRATA_API_TOKEN env.",
		})
		return nil, false
	}

	registerID := s.cfg.Upstream.RiskRegisterID
	if registerID == "" {
		s.respondError(w, r, http.StatusInternalServerError, ErrorResponse{
			Error: "Missing RISK_REGISTER_ID in environment.",
		})
		return nil, false
	}

	opts := core.FetchOptions{
		FetchAll:   r.URL.Query().Get("all") == "1",
		PageSize:   parseIntParam(r, "size", s.cfg.Fetch.PageSize),
		MaxPages:   parseIntParam(r, "maxPages", s.cfg.Fetch.MaxPages),
		MaxRecords: parseIntParam(r, "maxRecords", s.cfg.Fetch.MaxRecords),
	}

	session, err := s.aggregator.Fetch(r.Context(), registerID, token, opts)
	if err != nil {
		s.respondAggregationError(w, r, err)
		return nil, false
	}
	s.metrics.upstreamPages.Add(float64(session.Pages))
	s.metrics.recordsFetched.Add(float64(len(session.Records)))

	risks := core.NormalizeRisks(session.Records)
	keys := core.CustomFieldKeys(risks)
	view := core.ApplyQuery(risks, parseQuery(r))

	logging.FromContext(r.Context()).Debug("report built",
		"session_id", session.ID,
		"records", len(risks),
		"view_records", len(view),
		"custom_field_keys", len(keys),
	)

	return &riskReport{
		Count:           len(view),
		RiskRegisterID:  registerID,
		FetchedAt:       time.Now().UTC().Format(time.RFC3339),
		Pages:           session.Pages,
		CustomFieldKeys: keys,
		Risks:           view,
	}, true
}
