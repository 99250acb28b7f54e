package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/shopspring/decimal"
)

var (
	headerColor = color.New(color.Bold)
	goodColor   = color.New(color.FgGreen)
	badColor    = color.New(color.FgRed)
	dimColor    = color.New(color.Faint)
)

// fixed rounds half away from zero. decimal panics on NaN and Inf, so
// those render as "-".
func fixed(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// formatAmount rounds a monetary figure to two decimal places
func formatAmount(v float64) string {
	return fixed(v, 2)
}

// formatPercent rounds a percentage to one decimal place
func formatPercent(v float64) string {
	return fixed(v, 1) + "%"
}

// formatProbability renders an optional breach probability as a percentage
func formatProbability(p *float64) string {
	if p == nil {
		return "-"
	}
	return formatPercent(*p * 100)
}

func formatPayback(m model.DecisionMetrics) string {
	if !m.PaysBack() {
		return "never"
	}
	return fixed(m.PaybackMonths, 1)
}

func formatLevel(v float64) string {
	return fixed(v, 1)
}

type column struct {
	title string
	width int
	left  bool
}

var comparisonColumns = []column{
	{title: "SCENARIO", width: 24, left: true},
	{title: "TARGET", width: 6},
	{title: "INVESTMENT", width: 14},
	{title: "PROJECTED RISK", width: 16},
	{title: "REDUCTION", width: 14},
	{title: "ROI", width: 9},
	{title: "NET BENEFIT", width: 14},
	{title: "PAYBACK (MO)", width: 12},
	{title: "BREACH", width: 7},
}

func pad(c column, s string) string {
	if c.left {
		return fmt.Sprintf("%-*s", c.width, s)
	}
	return fmt.Sprintf("%*s", c.width, s)
}

// renderComparison prints the current-state row followed by every scenario
// row in input order. Break-even scenarios are highlighted and scenarios
// that never pay back are marked.
func renderComparison(w io.Writer, c *model.Comparison) {
	fmt.Fprintf(w, "Baseline: risk exposure %s at maturity level %s\n\n",
		formatAmount(c.Baseline.RiskExposure),
		formatLevel(float64(c.Baseline.MaturityLevel)),
	)

	headers := make([]string, len(comparisonColumns))
	for i, col := range comparisonColumns {
		headers[i] = pad(col, col.title)
	}
	fmt.Fprintln(w, headerColor.Sprint(strings.Join(headers, "  ")))

	printRow(w, &c.CurrentState, dimColor)
	for i := range c.Results {
		r := &c.Results[i]
		switch {
		case !r.Metrics.PaysBack():
			printRow(w, r, badColor)
		case r.Metrics.BreakEven:
			printRow(w, r, goodColor)
		default:
			printRow(w, r, nil)
		}
	}
}

func printRow(w io.Writer, r *model.ScenarioResult, c *color.Color) {
	name := r.Name
	if len(name) > comparisonColumns[0].width {
		name = name[:comparisonColumns[0].width-1] + "~"
	}

	values := []string{
		name,
		formatLevel(float64(r.TargetMaturityLevel)),
		formatAmount(r.InvestmentAmount),
		formatAmount(r.Projection.ProjectedRisk),
		formatAmount(r.Projection.ProjectedRiskReduction),
		formatPercent(r.Metrics.ROIPercent),
		formatAmount(r.Metrics.NetBenefit),
		formatPayback(r.Metrics),
		formatProbability(r.Projection.TargetBreachProbability),
	}

	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = pad(comparisonColumns[i], v)
	}
	line := strings.Join(cells, "  ")

	if c != nil {
		line = c.Sprint(line)
	}
	fmt.Fprintln(w, line)
}

// renderProjection prints a single projection with its decision metrics
func renderProjection(w io.Writer, p *model.ProjectionResult, d *model.DecisionMetrics) {
	rows := [][2]string{
		{"Projected risk", formatAmount(p.ProjectedRisk)},
		{"Risk reduction", formatAmount(p.ProjectedRiskReduction)},
		{"Reduction factor", formatPercent(p.ReductionFactor * 100)},
		{"Current breach probability", formatProbability(p.CurrentBreachProbability)},
		{"Target breach probability", formatProbability(p.TargetBreachProbability)},
	}
	if d != nil {
		rows = append(rows,
			[2]string{"ROI", formatPercent(d.ROIPercent)},
			[2]string{"Net benefit", formatAmount(d.NetBenefit)},
			[2]string{"Payback (months)", formatPayback(*d)},
			[2]string{"Break-even", fmt.Sprintf("%t", d.BreakEven)},
		)
	}
	renderKeyValues(w, rows)

	if d != nil {
		switch {
		case !d.PaysBack():
			fmt.Fprintln(w, badColor.Sprint("Investment never pays back"))
		case d.BreakEven:
			fmt.Fprintln(w, goodColor.Sprint("Investment breaks even"))
		}
	}
}

func renderKeyValues(w io.Writer, rows [][2]string) {
	for _, row := range rows {
		fmt.Fprintf(w, "%s %s\n", headerColor.Sprintf("%-28s", row[0]+":"), row[1])
	}
}

// renderExposure prints per-threat loss exposures and their total
func renderExposure(w io.Writer, exposures []*model.LossExposure, total float64) {
	fmt.Fprintln(w, headerColor.Sprintf("%-32s  %12s  %16s", "THREAT", "LEF", "ALE"))
	for _, e := range exposures {
		fmt.Fprintf(w, "%-32s  %12s  %16s\n",
			e.Name,
			fixed(e.LossEventFrequency, 4),
			formatAmount(e.AnnualLossExposure),
		)
	}
	fmt.Fprintln(w, headerColor.Sprintf("%-32s  %12s  %16s", "TOTAL", "", formatAmount(total)))
}
