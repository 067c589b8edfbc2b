package fuel

import (
	"math"
	"testing"

	"github.com/seafuel/service-voyage/internal/platform/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFuelSaving(t *testing.T) {
	saving, err := ComputeFuelSaving(15, 12, 100)
	require.NoError(t, err)
	assert.Equal(t, 240.0, saving)

	saving, err = ComputeFuelSaving(14.5, 12.25, 333.3)
	require.NoError(t, err)
	assert.Equal(t, 599.94, saving)
}

func TestComputeFuelSaving_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		original  float64
		optimized float64
		distance  float64
		field     string
	}{
		{"optimized above original", 10, 12, 100, FieldOptimizedSpeed},
		{"optimized equals original", 12, 12, 100, FieldOptimizedSpeed},
		{"negative original", -5, 3, 10, FieldOriginalSpeed},
		{"zero optimized", 10, 0, 10, FieldOptimizedSpeed},
		{"zero distance", 15, 12, 0, FieldDistance},
		{"negative distance", 15, 12, -1, FieldDistance},
		{"nan speed", math.NaN(), 12, 100, FieldOriginalSpeed},
		{"infinite distance", 15, 12, math.Inf(1), FieldDistance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeFuelSaving(tt.original, tt.optimized, tt.distance)
			require.Error(t, err)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

type flatStrategy struct{ value float64 }

func (f flatStrategy) Calculate(SavingParams) float64 { return f.value }

func TestEstimate_UsesStrategy(t *testing.T) {
	got, err := Estimate(flatStrategy{value: 7}, SavingParams{OriginalSpeed: 2, OptimizedSpeed: 1, Distance: 1})
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)

	_, err = Estimate(flatStrategy{value: 7}, SavingParams{})
	assert.Error(t, err)
}

func TestLinearSavingStrategy_Factor(t *testing.T) {
	s := &LinearSavingStrategy{Factor: 1}
	assert.Equal(t, 300.0, s.Calculate(SavingParams{OriginalSpeed: 15, OptimizedSpeed: 12, Distance: 100}))
}
