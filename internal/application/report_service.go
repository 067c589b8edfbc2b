package application

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seafuel/service-voyage/internal/domain/report"
	"github.com/seafuel/service-voyage/internal/events"
	"go.uber.org/zap"
)

// ExportRequest holds the export query parameters.
// Saving is accepted for compatibility with old links but always recomputed.
type ExportRequest struct {
	FuelSavingRequest
	Saving NumericInput `form:"saving" json:"saving"`
	Start  string       `form:"start" json:"start"`
	End    string       `form:"end" json:"end"`
}

// ExportedReport is a rendered document ready to be sent.
type ExportedReport struct {
	ID          string
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService builds and renders fuel-saving reports.
type ReportService struct {
	fuel     *FuelService
	routes   *RouteService
	renderer report.Renderer
	title    string
	events   *events.Emitter
	logger   *zap.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	fuelService *FuelService,
	routeService *RouteService,
	renderer report.Renderer,
	title string,
	emitter *events.Emitter,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		fuel:     fuelService,
		routes:   routeService,
		renderer: renderer,
		title:    title,
		events:   emitter,
		logger:   logger,
	}
}

// Export validates the inputs, resolves the route and renders the report.
func (s *ReportService) Export(ctx context.Context, username string, req ExportRequest) (*ExportedReport, error) {
	params, err := req.Params()
	if err != nil {
		return nil, err
	}
	result, err := s.fuel.Estimate(params)
	if err != nil {
		return nil, err
	}

	resolved, err := s.routes.Resolve(ctx, req.Start, req.End)
	if err != nil {
		return nil, fmt.Errorf("resolve route for report: %w", err)
	}

	summary := report.Summary{
		OriginalSpeed:  result.OriginalSpeed,
		OptimizedSpeed: result.OptimizedSpeed,
		Distance:       result.Distance,
		Saving:         result.Saving,
		Origin:         strings.TrimSpace(req.Start),
		Destination:    strings.TrimSpace(req.End),
	}
	if resolved.Found {
		summary.Origin = resolved.Origin.Name
		summary.Destination = resolved.Destination.Name
	}

	rep, err := report.NewReport(s.title, summary, resolved.Points)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, rep); err != nil {
		s.logger.Error("report rendering failed", zap.String("report_id", rep.ID().String()), zap.Error(err))
		return nil, fmt.Errorf("render report: %w", err)
	}

	s.logger.Info("report exported",
		zap.String("report_id", rep.ID().String()),
		zap.String("username", username),
		zap.Int("points", len(rep.Points())),
		zap.Int("bytes", buf.Len()),
	)
	s.events.Emit(ctx, events.ReportExported, events.ReportExportedEvent{
		ReportID:    rep.ID().String(),
		Username:    username,
		Origin:      summary.Origin,
		Destination: summary.Destination,
		PointCount:  len(rep.Points()),
		Saving:      result.Saving,
		OccurredAt:  time.Now().UTC(),
	})

	return &ExportedReport{
		ID:          rep.ID().String(),
		Filename:    rep.Filename(),
		ContentType: s.renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
