package safe_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskquant/pkg/utils/logging"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
)

type failingCloser struct{ called bool }

func (c *failingCloser) Close() error {
	c.called = true
	return errors.New("disk gone")
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func captureLogs(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	ctx := logging.With(context.Background(), logging.New(&buf, slog.LevelDebug, logging.FormatJSON))
	return ctx, &buf
}

func TestClose(t *testing.T) {
	t.Run("failure is logged with the resource", func(t *testing.T) {
		ctx, buf := captureLogs(t)
		c := &failingCloser{}

		safe.Close(ctx, c, "repository")
		gt.Bool(t, c.called).True()
		gt.String(t, buf.String()).Contains("failed to close repository")
		gt.String(t, buf.String()).Contains("disk gone")
	})

	t.Run("nil closer", func(t *testing.T) {
		ctx, buf := captureLogs(t)
		safe.Close(ctx, nil, "repository")
		gt.Value(t, buf.Len()).Equal(0)
	})
}

func TestWrite(t *testing.T) {
	t.Run("full write", func(t *testing.T) {
		ctx, logs := captureLogs(t)
		var out bytes.Buffer

		safe.Write(ctx, &out, []byte("payload"))
		gt.Value(t, out.String()).Equal("payload")
		gt.Value(t, logs.Len()).Equal(0)
	})

	t.Run("short write is reported", func(t *testing.T) {
		ctx, logs := captureLogs(t)
		safe.Write(ctx, shortWriter{}, []byte("payload"))
		gt.String(t, logs.String()).Contains("failed to write response")
	})
}
