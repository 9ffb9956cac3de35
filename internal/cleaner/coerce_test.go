package cleaner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		in          string
		want        bool
		wantCoerced bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"TRUE", true, true},
		{"Yes", true, true},
		{"yes", true, true},
		{"1", true, true},
		{"Completed", true, true},
		{"No", false, true},
		{"0", false, true},
		{"Incomplete", false, true},
		{"FALSE", false, true},
		{"", false, true},
		{"garbage", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, coerced := coerceBool(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCoerced, coerced)
		})
	}
}

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		percent     bool
		want        float64
		wantCoerced bool
		wantMissing bool
	}{
		{"plain int", "22", false, 22, false, false},
		{"plain float", "9.25", false, 9.25, false, false},
		{"negative", "-3.5", false, -3.5, false, false},
		{"empty", "", false, math.NaN(), false, true},
		{"unknown placeholder", "unknown", false, math.NaN(), false, true},
		{"various placeholder", "various", false, math.NaN(), false, true},
		{"percent sign", "85.3%", true, 85.3, true, false},
		{"fraction rescaled", "0.72", true, 72, true, false},
		{"fraction three decimals", "0.853", true, 85.3, true, false},
		{"zero not rescaled", "0", true, 0, false, false},
		{"one not rescaled", "1", true, 1, false, false},
		{"fraction ignored outside percent columns", "0.72", false, 0.72, false, false},
		{"over 100 kept for clipping", "113.4", true, 113.4, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, coerced, missing := coerceNumeric(tt.in, tt.percent)
			if tt.wantMissing {
				assert.True(t, math.IsNaN(got))
			} else {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
			assert.Equal(t, tt.wantCoerced, coerced)
			assert.Equal(t, tt.wantMissing, missing)
		})
	}
}
