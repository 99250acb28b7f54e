package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskquant/pkg/domain/interfaces"
	"github.com/secmon-lab/riskquant/pkg/domain/model"
	"github.com/secmon-lab/riskquant/pkg/usecase"
	"github.com/secmon-lab/riskquant/pkg/utils/errutil"
	"github.com/secmon-lab/riskquant/pkg/utils/safe"
)

const maxRequestBodySize = 1 << 20

// errBadRequest marks malformed request bodies and parameters
var errBadRequest = goerr.New("bad request")

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errBadRequest, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	return nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// statusOf maps domain and use case errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, model.ErrValidation),
		errors.Is(err, usecase.ErrDuplicateScenario):
		return http.StatusBadRequest
	case errors.Is(err, interfaces.ErrNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, usecase.ErrScenarioNotFound),
		errors.Is(err, usecase.ErrBaselineNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}
