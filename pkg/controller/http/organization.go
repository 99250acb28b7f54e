package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func orgIDParam(r *http.Request) types.OrganizationID {
	return types.OrganizationID(chi.URLParam(r, "orgID"))
}

func threatIDParam(r *http.Request) types.ThreatScenarioID {
	return types.ThreatScenarioID(chi.URLParam(r, "threatID"))
}

func (s *Server) listSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshots, err := s.uc.Snapshot.List(ctx, orgIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]snapshotResponse, len(snapshots))
	for i, snapshot := range snapshots {
		resp[i] = toSnapshotResponse(snapshot)
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) recordSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req snapshotRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	snapshot := &model.RiskSnapshot{
		OrganizationID:    orgIDParam(r),
		TotalRiskExposure: req.TotalRiskExposure,
		MaturityLevel:     req.MaturityLevel,
		ControlPassRate:   req.ControlPassRate,
	}
	if req.Timestamp != nil {
		snapshot.Timestamp = *req.Timestamp
	}

	created, err := s.uc.Snapshot.Record(ctx, snapshot)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toSnapshotResponse(created))
}

func (s *Server) latestSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshot, err := s.uc.Snapshot.Latest(ctx, orgIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toSnapshotResponse(snapshot))
}

func (s *Server) writeThreat(w http.ResponseWriter, r *http.Request, status int, ts *model.ThreatScenario) {
	resp, err := toThreatResponse(ts)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, status, resp)
}

func (s *Server) listThreatsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	threats, err := s.uc.Threat.List(ctx, orgIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := make([]threatResponse, len(threats))
	for i, ts := range threats {
		resp[i], err = toThreatResponse(ts)
		if err != nil {
			handleError(ctx, w, err)
			return
		}
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) createThreatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req threatRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	created, err := s.uc.Threat.Create(ctx, req.model(orgIDParam(r), ""))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	s.writeThreat(w, r, http.StatusCreated, created)
}

func (s *Server) getThreatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ts, err := s.uc.Threat.Get(ctx, orgIDParam(r), threatIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	s.writeThreat(w, r, http.StatusOK, ts)
}

func (s *Server) updateThreatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req threatRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.Threat.Update(ctx, req.model(orgIDParam(r), threatIDParam(r)))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	s.writeThreat(w, r, http.StatusOK, updated)
}

func (s *Server) deleteThreatHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.uc.Threat.Delete(ctx, orgIDParam(r), threatIDParam(r)); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) exposureHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	exposure, err := s.uc.Threat.OrganizationExposure(ctx, orgIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toExposureResponse(exposure))
}

// baselineHandler resolves the baseline of an organization. The optional
// maturity_level query parameter is used when no snapshot exists.
func (s *Server) baselineHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var fallback types.MaturityLevel
	if raw := r.URL.Query().Get("maturity_level"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			handleError(ctx, w, goerr.Wrap(errBadRequest, "invalid maturity_level parameter", goerr.V("value", raw)))
			return
		}
		fallback = types.MaturityLevel(v)
	}

	resolved, err := s.uc.ResolveBaseline(ctx, orgIDParam(r), fallback)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toBaselineResponse(resolved))
}
