package model

import (
	"math"

	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

// Baseline is the organizational state every scenario is evaluated against
type Baseline struct {
	RiskExposure  float64
	MaturityLevel types.MaturityLevel
}

// ProjectionResult is the derived outcome of moving from the current to a
// target maturity level. It is recomputed on demand and never cached.
type ProjectionResult struct {
	ProjectedRisk          float64
	ProjectedRiskReduction float64
	ReductionFactor        float64

	// Breach probabilities are display metrics only; they never feed the
	// risk exposure figures above. Nil when no breach curve is configured.
	CurrentBreachProbability *float64
	TargetBreachProbability  *float64
}

// DecisionMetrics are the investment decision numbers for one scenario
type DecisionMetrics struct {
	ROIPercent float64
	NetBenefit float64
	// PaybackMonths is +Inf when the risk reduction is zero
	PaybackMonths float64
	BreakEven     bool
}

// PaysBack reports whether the payback period is finite
func (d *DecisionMetrics) PaysBack() bool {
	return !math.IsInf(d.PaybackMonths, 1)
}

// ScenarioResult is one row of a comparison table
type ScenarioResult struct {
	ScenarioID          types.ScenarioID
	Name                string
	TargetMaturityLevel types.MaturityLevel
	InvestmentAmount    float64
	TimeframeMonths     float64
	Projection          ProjectionResult
	Metrics             DecisionMetrics
}

// CurrentStateID tags the reference row of a comparison
const CurrentStateID types.ScenarioID = "current-state"

// Comparison is the result of evaluating scenarios against one baseline.
// Results preserve the input order of the scenarios.
type Comparison struct {
	Baseline     Baseline
	CurrentState ScenarioResult
	Results      []ScenarioResult
}
