package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func sessionIDParam(r *http.Request) types.SessionID {
	return types.SessionID(chi.URLParam(r, "sessionID"))
}

func scenarioIDParam(r *http.Request) types.ScenarioID {
	return types.ScenarioID(chi.URLParam(r, "scenarioID"))
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	scenarios, err := scenariosFromRequest(req.Scenarios)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	id, err := s.uc.Scenario.CreateSession(ctx, scenarios...)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, sessionResponse{
		SessionID: id,
		Scenarios: toScenarioResponses(scenarios),
	})
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.uc.Scenario.DeleteSession(ctx, sessionIDParam(r)); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listScenariosHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list, err := s.uc.Scenario.ListScenarios(ctx, sessionIDParam(r))
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toScenarioResponses(list))
}

func (s *Server) addScenarioHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req scenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	scenario, err := req.model()
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	added, err := s.uc.Scenario.AddScenario(ctx, sessionIDParam(r), scenario)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, toScenarioResponse(added))
}

func (s *Server) updateScenarioHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req scenarioPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	updated, err := s.uc.Scenario.UpdateScenario(ctx, sessionIDParam(r), scenarioIDParam(r), req.update())
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toScenarioResponse(updated))
}

func (s *Server) removeScenarioHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := s.uc.Scenario.RemoveScenario(ctx, sessionIDParam(r), scenarioIDParam(r)); err != nil {
		handleError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) compareSessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req compareSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	var baseline model.Baseline
	switch {
	case req.Baseline != nil:
		baseline = req.Baseline.model()
	case req.OrganizationID != "":
		resolved, err := s.uc.ResolveBaseline(ctx, req.OrganizationID, req.FallbackMaturityLevel)
		if err != nil {
			handleError(ctx, w, err)
			return
		}
		baseline = resolved.Baseline
	default:
		handleError(ctx, w, goerr.Wrap(errBadRequest, "either baseline or organization_id is required"))
		return
	}

	comparison, err := s.uc.Scenario.Compare(ctx, sessionIDParam(r), baseline)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	scenarioEvaluations.WithLabelValues("session").Add(float64(len(comparison.Results)))

	writeJSON(ctx, w, http.StatusOK, NewComparisonResponse(comparison))
}
