// Package fuel estimates the fuel saved by sailing a route at a reduced speed.
package fuel

import (
	"math"

	"github.com/seafuel/service-voyage/internal/platform/apperr"
)

// DefaultFactor is the consumption factor applied by the standard strategy.
const DefaultFactor = 0.8

// Input field names used in validation errors.
const (
	FieldOriginalSpeed  = "original_speed"
	FieldOptimizedSpeed = "optimized_speed"
	FieldDistance       = "distance"
)

// SavingStrategy defines the interface for estimating fuel savings.
type SavingStrategy interface {
	// Calculate returns the estimated saving in tonnes for already validated params.
	Calculate(params SavingParams) float64
}

// SavingParams holds the inputs for a saving estimate.
type SavingParams struct {
	OriginalSpeed  float64
	OptimizedSpeed float64
	Distance       float64
}

// Validate checks every precondition and names the first one violated.
func (p SavingParams) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{FieldOriginalSpeed, p.OriginalSpeed},
		{FieldOptimizedSpeed, p.OptimizedSpeed},
		{FieldDistance, p.Distance},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return apperr.NewFieldError(f.name, "must be a finite number")
		}
		if f.value <= 0 {
			return apperr.NewFieldError(f.name, "must be greater than zero")
		}
	}
	if p.OptimizedSpeed >= p.OriginalSpeed {
		return apperr.NewFieldError(FieldOptimizedSpeed, "must be lower than original_speed")
	}
	return nil
}

// LinearSavingStrategy treats saving as proportional to speed reduction and distance.
type LinearSavingStrategy struct {
	Factor float64
}

// NewLinearSavingStrategy creates a LinearSavingStrategy with DefaultFactor.
func NewLinearSavingStrategy() *LinearSavingStrategy {
	return &LinearSavingStrategy{Factor: DefaultFactor}
}

// Calculate computes (original - optimized) * distance * factor, rounded to 2 decimals.
func (s *LinearSavingStrategy) Calculate(params SavingParams) float64 {
	raw := (params.OriginalSpeed - params.OptimizedSpeed) * params.Distance * s.Factor
	return math.Round(raw*100) / 100
}

// Estimate validates params and applies strategy.
func Estimate(strategy SavingStrategy, params SavingParams) (float64, error) {
	if err := params.Validate(); err != nil {
		return 0, err
	}
	return strategy.Calculate(params), nil
}

// ComputeFuelSaving estimates the saving with the standard linear strategy.
func ComputeFuelSaving(originalSpeed, optimizedSpeed, distance float64) (float64, error) {
	return Estimate(NewLinearSavingStrategy(), SavingParams{
		OriginalSpeed:  originalSpeed,
		OptimizedSpeed: optimizedSpeed,
		Distance:       distance,
	})
}
