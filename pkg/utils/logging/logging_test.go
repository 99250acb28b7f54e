package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	type sentryConfig struct {
		DSN         string
		Environment string
	}
	logger.Info("configured", "sentry", sentryConfig{DSN: "https://key@example.com/1", Environment: "prod"})
	logger.Debug("hidden")

	var record map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &record)).Required()
	gt.Value(t, record["msg"]).Equal("configured")
	gt.String(t, buf.String()).NotContains("https://key@example.com/1")
	gt.String(t, buf.String()).NotContains("hidden")
}

func TestFromAndWith(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelDebug, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("from context")
	gt.String(t, buf.String()).Contains("from context")

	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
}
