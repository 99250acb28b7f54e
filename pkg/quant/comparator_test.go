package quant_test

import (
	"math"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
	"github.com/secmon-lab/riskquant/pkg/quant"
)

func mustScenario(t *testing.T, id types.ScenarioID, name string, target types.MaturityLevel, investment, timeframe float64) *model.WhatIfScenario {
	t.Helper()
	s, err := model.NewWhatIfScenario(id, name, target, investment, timeframe)
	gt.NoError(t, err).Required()
	return s
}

func TestModel_Compare(t *testing.T) {
	m := quant.DefaultModel()
	baseline := model.Baseline{RiskExposure: 300, MaturityLevel: 2}

	scenarios := []*model.WhatIfScenario{
		mustScenario(t, "level-four", "Level 4", 4, 100, 12),
		mustScenario(t, "level-three", "Level 3", 3, 0, 6),
		mustScenario(t, "stay", "Stay", 2, 50, 24),
	}

	t.Run("three scenarios keep input order and isolated outputs", func(t *testing.T) {
		cmp, err := m.Compare(baseline, scenarios)
		gt.NoError(t, err).Required()
		gt.Array(t, cmp.Results).Length(3)

		gt.Value(t, cmp.Results[0].ScenarioID).Equal(types.ScenarioID("level-four"))
		gt.Value(t, cmp.Results[1].ScenarioID).Equal(types.ScenarioID("level-three"))
		gt.Value(t, cmp.Results[2].ScenarioID).Equal(types.ScenarioID("stay"))

		// level 2 -> 4
		gt.Value(t, cmp.Results[0].Projection.ProjectedRisk).Equal(75.0)
		gt.Value(t, cmp.Results[0].Projection.ProjectedRiskReduction).Equal(225.0)
		gt.Value(t, cmp.Results[0].Metrics.ROIPercent).Equal(125.0)
		gt.Value(t, cmp.Results[0].Metrics.NetBenefit).Equal(125.0)
		assertClose(t, cmp.Results[0].Metrics.PaybackMonths, 100.0/225.0*12)
		gt.Bool(t, cmp.Results[0].Metrics.BreakEven).True()

		// level 2 -> 3, no investment
		gt.Value(t, cmp.Results[1].Projection.ProjectedRisk).Equal(150.0)
		gt.Value(t, cmp.Results[1].Projection.ProjectedRiskReduction).Equal(150.0)
		gt.Value(t, cmp.Results[1].Metrics.ROIPercent).Equal(0.0)
		gt.Value(t, cmp.Results[1].Metrics.PaybackMonths).Equal(0.0)
		gt.Bool(t, cmp.Results[1].Metrics.BreakEven).True()

		// no maturity change
		gt.Value(t, cmp.Results[2].Projection.ProjectedRisk).Equal(300.0)
		gt.Value(t, cmp.Results[2].Projection.ProjectedRiskReduction).Equal(0.0)
		gt.Value(t, cmp.Results[2].Metrics.ROIPercent).Equal(-100.0)
		gt.Bool(t, math.IsInf(cmp.Results[2].Metrics.PaybackMonths, 1)).True()
		gt.Bool(t, cmp.Results[2].Metrics.BreakEven).False()
	})

	t.Run("results match independent evaluation", func(t *testing.T) {
		cmp, err := m.Compare(baseline, scenarios)
		gt.NoError(t, err).Required()

		for i, sc := range scenarios {
			single, err := m.EvaluateScenario(baseline, sc)
			gt.NoError(t, err).Required()
			gt.Value(t, cmp.Results[i]).Equal(*single)
		}
	})

	t.Run("current state row", func(t *testing.T) {
		cmp, err := m.Compare(baseline, scenarios)
		gt.NoError(t, err).Required()

		gt.Value(t, cmp.Baseline).Equal(baseline)
		gt.Value(t, cmp.CurrentState.ScenarioID).Equal(model.CurrentStateID)
		gt.Value(t, cmp.CurrentState.Projection.ProjectedRisk).Equal(300.0)
		gt.Value(t, cmp.CurrentState.Projection.ProjectedRiskReduction).Equal(0.0)
		gt.Value(t, cmp.CurrentState.Metrics.ROIPercent).Equal(0.0)
		gt.Bool(t, cmp.CurrentState.Metrics.BreakEven).False()
	})

	t.Run("empty scenario list", func(t *testing.T) {
		cmp, err := m.Compare(baseline, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, cmp.Results).Length(0)
	})

	t.Run("duplicate IDs rejected", func(t *testing.T) {
		dup := []*model.WhatIfScenario{scenarios[0], scenarios[0]}
		_, err := m.Compare(baseline, dup)
		gt.Error(t, err).Is(quant.ErrDuplicateScenario)
	})

	t.Run("invalid baseline rejected", func(t *testing.T) {
		_, err := m.Compare(model.Baseline{RiskExposure: -1, MaturityLevel: 2}, scenarios)
		gt.Error(t, err).Is(model.ErrValidation)

		_, err = m.Compare(model.Baseline{RiskExposure: 1, MaturityLevel: 9}, scenarios)
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("input scenarios are not modified", func(t *testing.T) {
		before := *scenarios[0]
		_, err := m.Compare(baseline, scenarios)
		gt.NoError(t, err).Required()
		gt.Value(t, *scenarios[0]).Equal(before)
	})
}

func TestScenarioSet(t *testing.T) {
	newSet := func(t *testing.T) *quant.ScenarioSet {
		set, err := quant.NewScenarioSet(
			mustScenario(t, "a", "A", 3, 10, 12),
			mustScenario(t, "b", "B", 4, 20, 12),
		)
		gt.NoError(t, err).Required()
		return set
	}

	t.Run("add keeps insertion order", func(t *testing.T) {
		set := newSet(t)
		gt.NoError(t, set.Add(mustScenario(t, "c", "C", 5, 30, 12))).Required()
		list := set.List()
		gt.Array(t, list).Length(3)
		gt.Value(t, list[0].ID).Equal(types.ScenarioID("a"))
		gt.Value(t, list[2].ID).Equal(types.ScenarioID("c"))
		gt.Value(t, set.Len()).Equal(3)
	})

	t.Run("add duplicate rejected", func(t *testing.T) {
		set := newSet(t)
		err := set.Add(mustScenario(t, "a", "Another A", 5, 1, 1))
		gt.Error(t, err).Is(quant.ErrDuplicateScenario)
		gt.Value(t, set.Len()).Equal(2)
	})

	t.Run("add invalid rejected", func(t *testing.T) {
		set := newSet(t)
		err := set.Add(&model.WhatIfScenario{ID: "z", Name: "Z", TargetMaturityLevel: 7})
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("remove", func(t *testing.T) {
		set := newSet(t)
		gt.NoError(t, set.Remove("a")).Required()
		gt.Value(t, set.Len()).Equal(1)
		_, err := set.Get("a")
		gt.Error(t, err).Is(quant.ErrScenarioNotFound)

		gt.Error(t, set.Remove("missing")).Is(quant.ErrScenarioNotFound)
	})

	t.Run("update field keeps position", func(t *testing.T) {
		set := newSet(t)
		investment := 99.0
		updated, err := set.Update("a", model.ScenarioUpdate{InvestmentAmount: &investment})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.InvestmentAmount).Equal(99.0)

		list := set.List()
		gt.Value(t, list[0].ID).Equal(types.ScenarioID("a"))
		gt.Value(t, list[0].InvestmentAmount).Equal(99.0)
	})

	t.Run("invalid update leaves scenario unchanged", func(t *testing.T) {
		set := newSet(t)
		level := types.MaturityLevel(0)
		_, err := set.Update("a", model.ScenarioUpdate{TargetMaturityLevel: &level})
		gt.Error(t, err).Is(model.ErrValidation)

		got, err := set.Get("a")
		gt.NoError(t, err).Required()
		gt.Value(t, got.TargetMaturityLevel).Equal(types.MaturityLevel(3))
	})

	t.Run("update missing scenario", func(t *testing.T) {
		set := newSet(t)
		name := "x"
		_, err := set.Update("missing", model.ScenarioUpdate{Name: &name})
		gt.Error(t, err).Is(quant.ErrScenarioNotFound)
	})

	t.Run("returned scenarios are copies", func(t *testing.T) {
		set := newSet(t)
		list := set.List()
		list[0].InvestmentAmount = 1e9

		got, err := set.Get("a")
		gt.NoError(t, err).Required()
		gt.Value(t, got.InvestmentAmount).Equal(10.0)
	})

	t.Run("compare whole set", func(t *testing.T) {
		set := newSet(t)
		cmp, err := set.Compare(quant.DefaultModel(), model.Baseline{RiskExposure: 1000, MaturityLevel: 2})
		gt.NoError(t, err).Required()
		gt.Array(t, cmp.Results).Length(2)
		gt.Value(t, cmp.Results[0].Projection.ProjectedRisk).Equal(500.0)
		gt.Value(t, cmp.Results[1].Projection.ProjectedRisk).Equal(250.0)
	})
}

func TestNilScenario(t *testing.T) {
	m := quant.DefaultModel()
	baseline := model.Baseline{RiskExposure: 1, MaturityLevel: 2}

	t.Run("Compare", func(t *testing.T) {
		valid := mustScenario(t, "edr", "EDR", 3, 10, 12)
		_, err := m.Compare(baseline, []*model.WhatIfScenario{valid, nil})
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("EvaluateScenario", func(t *testing.T) {
		_, err := m.EvaluateScenario(baseline, nil)
		gt.Error(t, err).Is(model.ErrValidation)
	})

	t.Run("ScenarioSet.Add", func(t *testing.T) {
		set, err := quant.NewScenarioSet()
		gt.NoError(t, err).Required()
		gt.Error(t, set.Add(nil)).Is(model.ErrValidation)
		gt.Value(t, set.Len()).Equal(0)
	})
}
