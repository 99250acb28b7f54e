package http

import (
	"net/http"

	"github.com/secmon-lab/riskquant/pkg/usecase"
)

func (s *Server) lossExposureHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lossExposureRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	exp, err := s.uc.Calculator.LossExposure(ctx, usecase.FAIRInput{
		ThreatEventFrequency:   req.ThreatEventFrequency,
		VulnerabilityFactor:    req.VulnerabilityFactor,
		PrimaryLossMagnitude:   req.PrimaryLossMagnitude,
		SecondaryLossMagnitude: req.SecondaryLossMagnitude,
	})
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toLossExposureResponse(exp))
}

func (s *Server) vulnerabilityHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vulnerabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	v, err := s.uc.Calculator.Vulnerability(ctx, req.ControlEffectiveness, req.ThreatCapability)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, vulnerabilityResponse{VulnerabilityFactor: v})
}

func (s *Server) projectionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req projectionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	baseline := baselineJSON{RiskExposure: req.CurrentRiskExposure, MaturityLevel: req.CurrentMaturityLevel}
	result, err := s.uc.Calculator.Project(ctx, baseline.model(), req.TargetMaturityLevel)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toProjectionResponse(result))
}

func (s *Server) decisionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	metrics, err := s.uc.Calculator.Decide(ctx, req.ProjectedRiskReduction, req.InvestmentAmount, req.TimeframeMonths)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, toDecisionResponse(metrics))
}

func (s *Server) compareHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req compareRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(ctx, w, err)
		return
	}

	scenarios, err := scenariosFromRequest(req.Scenarios)
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	comparison, err := s.uc.Calculator.Compare(ctx, req.Baseline.model(), scenarios)
	if err != nil {
		handleError(ctx, w, err)
		return
	}
	scenarioEvaluations.WithLabelValues("stateless").Add(float64(len(comparison.Results)))

	writeJSON(ctx, w, http.StatusOK, NewComparisonResponse(comparison))
}
