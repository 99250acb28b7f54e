package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	server "github.com/secmon-lab/riskquant/pkg/controller/http"
	"github.com/secmon-lab/riskquant/pkg/repository/memory"
	"github.com/secmon-lab/riskquant/pkg/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.New(usecase.New(memory.New())))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch v := body.(type) {
		case string:
			reader = bytes.NewBufferString(v)
		default:
			data, err := json.Marshal(v)
			gt.NoError(t, err).Required()
			reader = bytes.NewReader(data)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	gt.NoError(t, err).Required()
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(data, &v)).Required()
	return v
}

func assertClose(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, srv, http.MethodGet, "/healthz", nil)
	gt.Value(t, status).Equal(http.StatusOK)
	gt.Value(t, decode[map[string]string](t, body)["status"]).Equal("ok")
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/compare", map[string]any{
		"baseline": map[string]float64{"risk_exposure": 100, "maturity_level": 1},
		"scenarios": []map[string]any{
			{"id": "a", "name": "A", "target_maturity_level": 2},
		},
	})
	gt.Value(t, status).Equal(http.StatusOK)

	status, body := doRequest(t, srv, http.MethodGet, "/metrics", nil)
	gt.Value(t, status).Equal(http.StatusOK)
	gt.String(t, string(body)).Contains(`riskquant_scenario_evaluations_total{source="stateless"}`)
}

func TestServer_LossExposure(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, srv, http.MethodPost, "/api/v1/fair/loss-exposure", map[string]float64{
		"threat_event_frequency":   15,
		"vulnerability_factor":     0.08,
		"primary_loss_magnitude":   80,
		"secondary_loss_magnitude": 40.8,
	})
	gt.Value(t, status).Equal(http.StatusOK)

	resp := decode[map[string]float64](t, body)
	assertClose(t, resp["loss_event_frequency"], 1.2)
	assertClose(t, resp["annual_loss_exposure"], 144.96)
}

func TestServer_Vulnerability(t *testing.T) {
	srv := newTestServer(t)

	t.Run("valid", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/fair/vulnerability", map[string]float64{
			"control_effectiveness": 0.75,
			"threat_capability":     0.8,
		})
		gt.Value(t, status).Equal(http.StatusOK)
		assertClose(t, decode[map[string]float64](t, body)["vulnerability_factor"], 0.2)
	})

	t.Run("out of range", func(t *testing.T) {
		status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/fair/vulnerability", map[string]float64{
			"control_effectiveness": 1.5,
			"threat_capability":     0.8,
		})
		gt.Value(t, status).Equal(http.StatusBadRequest)
	})
}

func TestServer_Projection(t *testing.T) {
	srv := newTestServer(t)

	t.Run("improvement", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/projection", map[string]float64{
			"current_risk_exposure":  300,
			"current_maturity_level": 2,
			"target_maturity_level":  4,
		})
		gt.Value(t, status).Equal(http.StatusOK)

		resp := decode[map[string]any](t, body)
		gt.Value(t, resp["reduction_factor"]).Equal(0.75)
		gt.Value(t, resp["projected_risk"]).Equal(75.0)
		gt.Value(t, resp["projected_risk_reduction"]).Equal(225.0)
		_, hasBreach := resp["current_breach_probability"]
		gt.Bool(t, hasBreach).False()
	})

	t.Run("regression attempt", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/projection", map[string]float64{
			"current_risk_exposure":  300,
			"current_maturity_level": 4,
			"target_maturity_level":  3,
		})
		gt.Value(t, status).Equal(http.StatusOK)
		resp := decode[map[string]float64](t, body)
		gt.Value(t, resp["projected_risk_reduction"]).Equal(0.0)
		gt.Value(t, resp["projected_risk"]).Equal(300.0)
	})

	t.Run("target out of scale", func(t *testing.T) {
		status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/projection", map[string]float64{
			"current_risk_exposure":  300,
			"current_maturity_level": 2,
			"target_maturity_level":  6,
		})
		gt.Value(t, status).Equal(http.StatusBadRequest)
	})

	t.Run("unknown field", func(t *testing.T) {
		status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/projection", `{"current_risk":300}`)
		gt.Value(t, status).Equal(http.StatusBadRequest)
	})

	t.Run("malformed body", func(t *testing.T) {
		status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/projection", `{`)
		gt.Value(t, status).Equal(http.StatusBadRequest)
	})
}

func TestServer_Decision(t *testing.T) {
	srv := newTestServer(t)

	t.Run("pays back", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/decision", map[string]float64{
			"projected_risk_reduction": 225,
			"investment_amount":        100,
			"timeframe_months":         12,
		})
		gt.Value(t, status).Equal(http.StatusOK)

		resp := decode[map[string]any](t, body)
		gt.Value(t, resp["roi_percent"]).Equal(125.0)
		gt.Value(t, resp["pays_back"]).Equal(true)
		gt.Value(t, resp["break_even"]).Equal(true)
		gt.Value(t, resp["payback_months"]).NotNil()
	})

	t.Run("never pays back", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/decision", map[string]float64{
			"projected_risk_reduction": 0,
			"investment_amount":        100,
			"timeframe_months":         12,
		})
		gt.Value(t, status).Equal(http.StatusOK)

		resp := decode[map[string]any](t, body)
		payback, ok := resp["payback_months"]
		gt.Bool(t, ok).True()
		gt.Value(t, payback).Nil()
		gt.Value(t, resp["pays_back"]).Equal(false)
		gt.Value(t, resp["break_even"]).Equal(false)
	})

	t.Run("zero investment", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/decision", map[string]float64{
			"projected_risk_reduction": 225,
			"investment_amount":        0,
			"timeframe_months":         12,
		})
		gt.Value(t, status).Equal(http.StatusOK)
		gt.Value(t, decode[map[string]any](t, body)["roi_percent"]).Equal(0.0)
	})

	t.Run("negative investment", func(t *testing.T) {
		status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/decision", map[string]float64{
			"projected_risk_reduction": 225,
			"investment_amount":        -5,
			"timeframe_months":         12,
		})
		gt.Value(t, status).Equal(http.StatusBadRequest)
	})
}

type comparisonBody struct {
	CurrentState struct {
		ScenarioID string `json:"scenario_id"`
		Projection struct {
			ProjectedRisk float64 `json:"projected_risk"`
		} `json:"projection"`
		Metrics struct {
			PaybackMonths *float64 `json:"payback_months"`
			PaysBack      bool     `json:"pays_back"`
		} `json:"metrics"`
	} `json:"current_state"`
	Results []struct {
		ScenarioID string `json:"scenario_id"`
		Projection struct {
			ProjectedRiskReduction float64 `json:"projected_risk_reduction"`
		} `json:"projection"`
	} `json:"results"`
}

func TestServer_Compare(t *testing.T) {
	srv := newTestServer(t)

	t.Run("keeps input order", func(t *testing.T) {
		status, body := doRequest(t, srv, http.MethodPost, "/api/v1/compare", map[string]any{
			"baseline": map[string]float64{"risk_exposure": 300, "maturity_level": 2},
			"scenarios": []map[string]any{
				{"id": "c", "name": "Level 5", "target_maturity_level": 5, "investment_amount": 200, "timeframe_months": 24},
				{"id": "a", "name": "Level 3", "target_maturity_level": 3, "investment_amount": 50, "timeframe_months": 12},
				{"id": "b", "name": "Level 4", "target_maturity_level": 4, "investment_amount": 100, "timeframe_months": 12},
			},
		})
		gt.Value(t, status).Equal(http.StatusOK)

		resp := decode[comparisonBody](t, body)
		gt.Value(t, resp.CurrentState.ScenarioID).Equal("current-state")
		gt.Value(t, resp.CurrentState.Projection.ProjectedRisk).Equal(300.0)
		gt.Value(t, resp.CurrentState.Metrics.PaybackMonths).Nil()
		gt.Bool(t, resp.CurrentState.Metrics.PaysBack).False()

		gt.Array(t, resp.Results).Length(3)
		gt.Value(t, resp.Results[0].ScenarioID).Equal("c")
		gt.Value(t, resp.Results[1].ScenarioID).Equal("a")
		gt.Value(t, resp.Results[2].ScenarioID).Equal("b")
		gt.Value(t, resp.Results[0].Projection.ProjectedRiskReduction).Equal(262.5)
		gt.Value(t, resp.Results[1].Projection.ProjectedRiskReduction).Equal(150.0)
		gt.Value(t, resp.Results[2].Projection.ProjectedRiskReduction).Equal(225.0)
	})

	t.Run("duplicate scenario IDs", func(t *testing.T) {
		status, _ := doRequest(t, srv, http.MethodPost, "/api/v1/compare", map[string]any{
			"baseline": map[string]float64{"risk_exposure": 300, "maturity_level": 2},
			"scenarios": []map[string]any{
				{"id": "a", "name": "A", "target_maturity_level": 3},
				{"id": "a", "name": "A again", "target_maturity_level": 4},
			},
		})
		gt.Value(t, status).Equal(http.StatusBadRequest)
	})
}
