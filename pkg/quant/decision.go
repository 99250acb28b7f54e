package quant

import (
	"math"

	"github.com/secmon-lab/riskquant/pkg/domain/model"
)

// Evaluate derives decision metrics from a projected annual risk reduction
// and an investment. Inputs must already be validated as non-negative.
//
// Zero investment yields ROI 0 so the value is always finite and orderable.
// Zero reduction yields an infinite payback and no break-even.
func Evaluate(projectedRiskReduction, investmentAmount, timeframeMonths float64) model.DecisionMetrics {
	metrics := model.DecisionMetrics{
		NetBenefit:    projectedRiskReduction - investmentAmount,
		PaybackMonths: math.Inf(1),
	}

	if investmentAmount > 0 {
		metrics.ROIPercent = ((projectedRiskReduction - investmentAmount) / investmentAmount) * 100
	}
	if projectedRiskReduction > 0 {
		metrics.PaybackMonths = (investmentAmount / projectedRiskReduction) * 12
	}
	metrics.BreakEven = !math.IsInf(metrics.PaybackMonths, 1) && metrics.PaybackMonths <= timeframeMonths

	return metrics
}

// ValidateInvestment rejects investment parameters Evaluate cannot accept
func ValidateInvestment(investmentAmount, timeframeMonths float64) error {
	if err := model.ValidateNonNegative("investment_amount", investmentAmount); err != nil {
		return err
	}
	return model.ValidateNonNegative("timeframe_months", timeframeMonths)
}
