package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/domain/report"
	"github.com/seafuel/service-voyage/internal/domain/route"
	"github.com/seafuel/service-voyage/internal/events"
	"github.com/seafuel/service-voyage/internal/platform/kafka"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRoutes struct {
	routes map[route.Key][]route.Point
	errs   map[route.Key]error
}

func newMemoryRoutes() *memoryRoutes {
	return &memoryRoutes{
		routes: map[route.Key][]route.Point{
			{Origin: route.Shanghai, Destination: route.Ningbo}: {
				{Lng: 121.5, Lat: 31.24}, {Lng: 122.05, Lat: 31.25}, {Lng: 121.85, Lat: 29.93},
			},
			{Origin: route.Shenzhen, Destination: route.Xiamen}: {
				{Lng: 113.9, Lat: 22.48}, {Lng: 118.07, Lat: 24.46},
			},
		},
		errs: map[route.Key]error{},
	}
}

func (m *memoryRoutes) Lookup(_ context.Context, key route.Key) ([]route.Point, error) {
	if err, ok := m.errs[key]; ok {
		return nil, err
	}
	points, ok := m.routes[key]
	if !ok {
		return nil, route.ErrRouteNotFound
	}
	return points, nil
}

type recordingPublisher struct {
	events []kafka.CloudEvent
}

func (p *recordingPublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type bufferRenderer struct {
	fail     bool
	rendered *report.Report
}

func (r *bufferRenderer) Render(w io.Writer, rep *report.Report) error {
	if r.fail {
		return errors.New("out of ink")
	}
	r.rendered = rep
	_, err := io.WriteString(w, "%PDF-1.3 fake")
	return err
}

func (r *bufferRenderer) ContentType() string { return "application/pdf" }

func newTestRouteService(t *testing.T, repo route.Repository, cfg config.RoutesConfig) *RouteService {
	t.Helper()
	s, err := NewRouteService(route.NewResolver(repo), cfg, zap.NewNop())
	require.NoError(t, err)
	return s
}

func newTestEmitter() (*events.Emitter, *recordingPublisher) {
	pub := &recordingPublisher{}
	return events.NewEmitter(pub, "voyage.events", zap.NewNop()), pub
}
