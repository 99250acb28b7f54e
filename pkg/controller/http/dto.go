package http

import (
	"time"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/quant"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

type lossExposureRequest struct {
	ThreatEventFrequency   float64 `json:"threat_event_frequency"`
	VulnerabilityFactor    float64 `json:"vulnerability_factor"`
	PrimaryLossMagnitude   float64 `json:"primary_loss_magnitude"`
	SecondaryLossMagnitude float64 `json:"secondary_loss_magnitude"`
}

type lossExposureResponse struct {
	ThreatScenarioID   string  `json:"threat_scenario_id,omitempty"`
	Name               string  `json:"name,omitempty"`
	LossEventFrequency float64 `json:"loss_event_frequency"`
	AnnualLossExposure float64 `json:"annual_loss_exposure"`
}

func toLossExposureResponse(e *model.LossExposure) lossExposureResponse {
	return lossExposureResponse{
		ThreatScenarioID:   string(e.ThreatScenarioID),
		Name:               e.Name,
		LossEventFrequency: e.LossEventFrequency,
		AnnualLossExposure: e.AnnualLossExposure,
	}
}

type vulnerabilityRequest struct {
	ControlEffectiveness float64 `json:"control_effectiveness"`
	ThreatCapability     float64 `json:"threat_capability"`
}

type vulnerabilityResponse struct {
	VulnerabilityFactor float64 `json:"vulnerability_factor"`
}

type baselineJSON struct {
	RiskExposure  float64             `json:"risk_exposure"`
	MaturityLevel types.MaturityLevel `json:"maturity_level"`
}

func (b baselineJSON) model() model.Baseline {
	return model.Baseline{RiskExposure: b.RiskExposure, MaturityLevel: b.MaturityLevel}
}

func toBaselineJSON(b model.Baseline) baselineJSON {
	return baselineJSON{RiskExposure: b.RiskExposure, MaturityLevel: b.MaturityLevel}
}

type projectionRequest struct {
	CurrentRiskExposure  float64             `json:"current_risk_exposure"`
	CurrentMaturityLevel types.MaturityLevel `json:"current_maturity_level"`
	TargetMaturityLevel  types.MaturityLevel `json:"target_maturity_level"`
}

type projectionResponse struct {
	ProjectedRisk            float64  `json:"projected_risk"`
	ProjectedRiskReduction   float64  `json:"projected_risk_reduction"`
	ReductionFactor          float64  `json:"reduction_factor"`
	CurrentBreachProbability *float64 `json:"current_breach_probability,omitempty"`
	TargetBreachProbability  *float64 `json:"target_breach_probability,omitempty"`
}

func toProjectionResponse(p *model.ProjectionResult) projectionResponse {
	return projectionResponse{
		ProjectedRisk:            p.ProjectedRisk,
		ProjectedRiskReduction:   p.ProjectedRiskReduction,
		ReductionFactor:          p.ReductionFactor,
		CurrentBreachProbability: p.CurrentBreachProbability,
		TargetBreachProbability:  p.TargetBreachProbability,
	}
}

type decisionRequest struct {
	ProjectedRiskReduction float64 `json:"projected_risk_reduction"`
	InvestmentAmount       float64 `json:"investment_amount"`
	TimeframeMonths        float64 `json:"timeframe_months"`
}

// decisionResponse carries an infinite payback as a null payback_months
// together with pays_back=false since JSON cannot encode Infinity
type decisionResponse struct {
	ROIPercent    float64  `json:"roi_percent"`
	NetBenefit    float64  `json:"net_benefit"`
	PaybackMonths *float64 `json:"payback_months"`
	PaysBack      bool     `json:"pays_back"`
	BreakEven     bool     `json:"break_even"`
}

func toDecisionResponse(d *model.DecisionMetrics) decisionResponse {
	resp := decisionResponse{
		ROIPercent: d.ROIPercent,
		NetBenefit: d.NetBenefit,
		PaysBack:   d.PaysBack(),
		BreakEven:  d.BreakEven,
	}
	if resp.PaysBack {
		payback := d.PaybackMonths
		resp.PaybackMonths = &payback
	}
	return resp
}

type scenarioRequest struct {
	ID                  types.ScenarioID    `json:"id"`
	Name                string              `json:"name"`
	TargetMaturityLevel types.MaturityLevel `json:"target_maturity_level"`
	InvestmentAmount    float64             `json:"investment_amount"`
	TimeframeMonths     float64             `json:"timeframe_months"`
}

func (r scenarioRequest) model() (*model.WhatIfScenario, error) {
	return model.NewWhatIfScenario(r.ID, r.Name, r.TargetMaturityLevel, r.InvestmentAmount, r.TimeframeMonths)
}

func scenariosFromRequest(reqs []scenarioRequest) ([]*model.WhatIfScenario, error) {
	scenarios := make([]*model.WhatIfScenario, 0, len(reqs))
	for _, req := range reqs {
		s, err := req.model()
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

type scenarioPatchRequest struct {
	Name                *string              `json:"name"`
	TargetMaturityLevel *types.MaturityLevel `json:"target_maturity_level"`
	InvestmentAmount    *float64             `json:"investment_amount"`
	TimeframeMonths     *float64             `json:"timeframe_months"`
}

func (r scenarioPatchRequest) update() model.ScenarioUpdate {
	return model.ScenarioUpdate{
		Name:                r.Name,
		TargetMaturityLevel: r.TargetMaturityLevel,
		InvestmentAmount:    r.InvestmentAmount,
		TimeframeMonths:     r.TimeframeMonths,
	}
}

type scenarioResponse struct {
	ID                  types.ScenarioID    `json:"id"`
	Name                string              `json:"name"`
	TargetMaturityLevel types.MaturityLevel `json:"target_maturity_level"`
	InvestmentAmount    float64             `json:"investment_amount"`
	TimeframeMonths     float64             `json:"timeframe_months"`
}

func toScenarioResponse(s *model.WhatIfScenario) scenarioResponse {
	return scenarioResponse{
		ID:                  s.ID,
		Name:                s.Name,
		TargetMaturityLevel: s.TargetMaturityLevel,
		InvestmentAmount:    s.InvestmentAmount,
		TimeframeMonths:     s.TimeframeMonths,
	}
}

func toScenarioResponses(list []*model.WhatIfScenario) []scenarioResponse {
	resp := make([]scenarioResponse, len(list))
	for i, s := range list {
		resp[i] = toScenarioResponse(s)
	}
	return resp
}

type scenarioResultResponse struct {
	ScenarioID          types.ScenarioID    `json:"scenario_id"`
	Name                string              `json:"name"`
	TargetMaturityLevel types.MaturityLevel `json:"target_maturity_level"`
	InvestmentAmount    float64             `json:"investment_amount"`
	TimeframeMonths     float64             `json:"timeframe_months"`
	Projection          projectionResponse  `json:"projection"`
	Metrics             decisionResponse    `json:"metrics"`
}

func toScenarioResultResponse(r *model.ScenarioResult) scenarioResultResponse {
	return scenarioResultResponse{
		ScenarioID:          r.ScenarioID,
		Name:                r.Name,
		TargetMaturityLevel: r.TargetMaturityLevel,
		InvestmentAmount:    r.InvestmentAmount,
		TimeframeMonths:     r.TimeframeMonths,
		Projection:          toProjectionResponse(&r.Projection),
		Metrics:             toDecisionResponse(&r.Metrics),
	}
}

type compareRequest struct {
	Baseline  baselineJSON      `json:"baseline"`
	Scenarios []scenarioRequest `json:"scenarios"`
}

type comparisonResponse struct {
	Baseline     baselineJSON             `json:"baseline"`
	CurrentState scenarioResultResponse   `json:"current_state"`
	Results      []scenarioResultResponse `json:"results"`
}

// ComparisonResponse is the wire form of a comparison. The CLI reuses it
// for JSON exports so both surfaces emit the same document.
type ComparisonResponse = comparisonResponse

// NewComparisonResponse converts a comparison to its wire form
func NewComparisonResponse(c *model.Comparison) ComparisonResponse {
	resp := comparisonResponse{
		Baseline:     toBaselineJSON(c.Baseline),
		CurrentState: toScenarioResultResponse(&c.CurrentState),
		Results:      make([]scenarioResultResponse, len(c.Results)),
	}
	for i := range c.Results {
		resp.Results[i] = toScenarioResultResponse(&c.Results[i])
	}
	return resp
}

type snapshotRequest struct {
	TotalRiskExposure float64             `json:"total_risk_exposure"`
	MaturityLevel     types.MaturityLevel `json:"maturity_level"`
	ControlPassRate   float64             `json:"control_pass_rate"`
	Timestamp         *time.Time          `json:"timestamp"`
}

type snapshotResponse struct {
	ID                types.SnapshotID     `json:"id"`
	OrganizationID    types.OrganizationID `json:"organization_id"`
	TotalRiskExposure float64              `json:"total_risk_exposure"`
	MaturityLevel     types.MaturityLevel  `json:"maturity_level"`
	ControlPassRate   float64              `json:"control_pass_rate"`
	Timestamp         time.Time            `json:"timestamp"`
}

func toSnapshotResponse(s *model.RiskSnapshot) snapshotResponse {
	return snapshotResponse{
		ID:                s.ID,
		OrganizationID:    s.OrganizationID,
		TotalRiskExposure: s.TotalRiskExposure,
		MaturityLevel:     s.MaturityLevel,
		ControlPassRate:   s.ControlPassRate,
		Timestamp:         s.Timestamp,
	}
}

type threatRequest struct {
	Name                   string  `json:"name"`
	Description            string  `json:"description"`
	ThreatEventFrequency   float64 `json:"threat_event_frequency"`
	VulnerabilityFactor    float64 `json:"vulnerability_factor"`
	PrimaryLossMagnitude   float64 `json:"primary_loss_magnitude"`
	SecondaryLossMagnitude float64 `json:"secondary_loss_magnitude"`
}

func (r threatRequest) model(orgID types.OrganizationID, id types.ThreatScenarioID) *model.ThreatScenario {
	return &model.ThreatScenario{
		ID:                     id,
		OrganizationID:         orgID,
		Name:                   r.Name,
		Description:            r.Description,
		ThreatEventFrequency:   r.ThreatEventFrequency,
		VulnerabilityFactor:    r.VulnerabilityFactor,
		PrimaryLossMagnitude:   r.PrimaryLossMagnitude,
		SecondaryLossMagnitude: r.SecondaryLossMagnitude,
	}
}

type threatResponse struct {
	ID                     types.ThreatScenarioID `json:"id"`
	OrganizationID         types.OrganizationID   `json:"organization_id"`
	Name                   string                 `json:"name"`
	Description            string                 `json:"description"`
	ThreatEventFrequency   float64                `json:"threat_event_frequency"`
	VulnerabilityFactor    float64                `json:"vulnerability_factor"`
	PrimaryLossMagnitude   float64                `json:"primary_loss_magnitude"`
	SecondaryLossMagnitude float64                `json:"secondary_loss_magnitude"`
	LossEventFrequency     float64                `json:"loss_event_frequency"`
	AnnualLossExposure     float64                `json:"annual_loss_exposure"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

func toThreatResponse(ts *model.ThreatScenario) (threatResponse, error) {
	exp, err := quant.EvaluateThreat(ts)
	if err != nil {
		return threatResponse{}, err
	}
	return threatResponse{
		ID:                     ts.ID,
		OrganizationID:         ts.OrganizationID,
		Name:                   ts.Name,
		Description:            ts.Description,
		ThreatEventFrequency:   ts.ThreatEventFrequency,
		VulnerabilityFactor:    ts.VulnerabilityFactor,
		PrimaryLossMagnitude:   ts.PrimaryLossMagnitude,
		SecondaryLossMagnitude: ts.SecondaryLossMagnitude,
		LossEventFrequency:     exp.LossEventFrequency,
		AnnualLossExposure:     exp.AnnualLossExposure,
		CreatedAt:              ts.CreatedAt,
		UpdatedAt:              ts.UpdatedAt,
	}, nil
}

type exposureResponse struct {
	OrganizationID types.OrganizationID   `json:"organization_id"`
	Total          float64                `json:"total"`
	Threats        []lossExposureResponse `json:"threats"`
}

func toExposureResponse(e *model.OrganizationExposure) exposureResponse {
	resp := exposureResponse{
		OrganizationID: e.OrganizationID,
		Total:          e.Total,
		Threats:        make([]lossExposureResponse, len(e.Threats)),
	}
	for i, t := range e.Threats {
		resp.Threats[i] = toLossExposureResponse(t)
	}
	return resp
}

type baselineResponse struct {
	baselineJSON
	Source     usecase.BaselineSource `json:"source"`
	SnapshotID types.SnapshotID       `json:"snapshot_id,omitempty"`
}

func toBaselineResponse(b *usecase.ResolvedBaseline) baselineResponse {
	resp := baselineResponse{
		baselineJSON: toBaselineJSON(b.Baseline),
		Source:       b.Source,
	}
	if b.Snapshot != nil {
		resp.SnapshotID = b.Snapshot.ID
	}
	return resp
}

type createSessionRequest struct {
	Scenarios []scenarioRequest `json:"scenarios"`
}

type sessionResponse struct {
	SessionID types.SessionID    `json:"session_id"`
	Scenarios []scenarioResponse `json:"scenarios"`
}

// compareSessionRequest takes either an explicit baseline or an
// organization whose baseline is resolved from its stored state
type compareSessionRequest struct {
	Baseline              *baselineJSON        `json:"baseline"`
	OrganizationID        types.OrganizationID `json:"organization_id"`
	FallbackMaturityLevel types.MaturityLevel  `json:"fallback_maturity_level"`
}
