package quant_test

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertClose(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon*math.Max(1, math.Abs(want)) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
