package types_test

import (
	"math"
	"testing"

	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

func TestMaturityLevel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		level   types.MaturityLevel
		wantErr bool
	}{
		{"minimum", 1, false},
		{"maximum", 5, false},
		{"interpolated", 3.5, false},
		{"below minimum", 0.99, true},
		{"above maximum", 5.01, true},
		{"zero", 0, true},
		{"negative", -2, true},
		{"NaN", types.MaturityLevel(math.NaN()), true},
		{"infinite", types.MaturityLevel(math.Inf(1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.level.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("MaturityLevel.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
