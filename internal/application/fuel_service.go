package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/seafuel/service-voyage/internal/domain/fuel"
	"github.com/seafuel/service-voyage/internal/events"
	"github.com/seafuel/service-voyage/internal/platform/apperr"
	"go.uber.org/zap"
)

// NumericInput is a number received from a query string, a form or JSON.
// JSON numbers and JSON strings are both accepted so that parsing and its
// error messages stay in one place.
type NumericInput string

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericInput(s)
		return nil
	}
	*n = NumericInput(data)
	return nil
}

// Parse converts the input, naming field in the error.
func (n NumericInput) Parse(field string) (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, apperr.NewFieldError(field, "is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, apperr.NewFieldError(field, "must be a number")
	}
	return v, nil
}

// FuelSavingRequest holds the calculator inputs.
type FuelSavingRequest struct {
	OriginalSpeed  NumericInput `json:"original_speed" form:"original_speed"`
	OptimizedSpeed NumericInput `json:"optimized_speed" form:"optimized_speed"`
	Distance       NumericInput `json:"distance" form:"distance"`
}

// Params parses every field.
func (r FuelSavingRequest) Params() (fuel.SavingParams, error) {
	var (
		p   fuel.SavingParams
		err error
	)
	if p.OriginalSpeed, err = r.OriginalSpeed.Parse(fuel.FieldOriginalSpeed); err != nil {
		return p, err
	}
	if p.OptimizedSpeed, err = r.OptimizedSpeed.Parse(fuel.FieldOptimizedSpeed); err != nil {
		return p, err
	}
	if p.Distance, err = r.Distance.Parse(fuel.FieldDistance); err != nil {
		return p, err
	}
	return p, nil
}

// FuelSavingDTO is the result of a calculation.
type FuelSavingDTO struct {
	OriginalSpeed  float64 `json:"original_speed"`
	OptimizedSpeed float64 `json:"optimized_speed"`
	Distance       float64 `json:"distance"`
	Saving         float64 `json:"saving"`
}

// FuelService runs fuel-saving estimates.
type FuelService struct {
	strategy fuel.SavingStrategy
	events   *events.Emitter
	logger   *zap.Logger
}

// NewFuelService creates a new FuelService.
func NewFuelService(strategy fuel.SavingStrategy, emitter *events.Emitter, logger *zap.Logger) *FuelService {
	return &FuelService{strategy: strategy, events: emitter, logger: logger}
}

// Estimate validates params and computes the saving without publishing anything.
func (s *FuelService) Estimate(params fuel.SavingParams) (*FuelSavingDTO, error) {
	saving, err := fuel.Estimate(s.strategy, params)
	if err != nil {
		return nil, err
	}
	return &FuelSavingDTO{
		OriginalSpeed:  params.OriginalSpeed,
		OptimizedSpeed: params.OptimizedSpeed,
		Distance:       params.Distance,
		Saving:         saving,
	}, nil
}

// Calculate parses req, computes the saving and publishes fuel_saving.calculated.
func (s *FuelService) Calculate(ctx context.Context, username string, req FuelSavingRequest) (*FuelSavingDTO, error) {
	params, err := req.Params()
	if err != nil {
		return nil, err
	}
	result, err := s.Estimate(params)
	if err != nil {
		return nil, err
	}

	s.logger.Info("fuel saving calculated",
		zap.String("username", username),
		zap.Float64("original_speed", result.OriginalSpeed),
		zap.Float64("optimized_speed", result.OptimizedSpeed),
		zap.Float64("distance", result.Distance),
		zap.Float64("saving", result.Saving),
	)
	s.events.Emit(ctx, events.FuelSavingCalculated, events.FuelSavingCalculatedEvent{
		Username:       username,
		OriginalSpeed:  result.OriginalSpeed,
		OptimizedSpeed: result.OptimizedSpeed,
		Distance:       result.Distance,
		Saving:         result.Saving,
		OccurredAt:     time.Now().UTC(),
	})
	return result, nil
}
