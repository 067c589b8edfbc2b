package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/domain/route"
	"go.uber.org/zap"
)

// NoRouteMessage is reported when neither the requested nor a default route is available.
const NoRouteMessage = "no route available"

// PlaceDTO is the response representation of a canonical place.
type PlaceDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NativeName string `json:"native_name,omitempty"`
}

// RouteDTO describes one registered route.
type RouteDTO struct {
	Key         string   `json:"key"`
	Origin      PlaceDTO `json:"origin"`
	Destination PlaceDTO `json:"destination"`
}

// RouteResultDTO is the answer to a resolve request.
type RouteResultDTO struct {
	Found           bool          `json:"found"`
	Origin          *PlaceDTO     `json:"origin,omitempty"`
	Destination     *PlaceDTO     `json:"destination,omitempty"`
	Points          []route.Point `json:"points"`
	DistanceNM      float64       `json:"distance_nm"`
	Segments        int           `json:"segments"`
	SkippedSegments int           `json:"skipped_segments"`
	Complete        bool          `json:"complete"`
	Fallback        bool          `json:"fallback"`
	Message         string        `json:"message,omitempty"`
}

// RouteService resolves routes and falls back to the configured default pair.
type RouteService struct {
	resolver   *route.Resolver
	defaultKey *route.Key
	logger     *zap.Logger
}

// NewRouteService creates a RouteService. A configured default pair must be a registered route.
func NewRouteService(resolver *route.Resolver, cfg config.RoutesConfig, logger *zap.Logger) (*RouteService, error) {
	s := &RouteService{resolver: resolver, logger: logger}
	if cfg.HasDefault() {
		key, ok := resolver.ResolveKey(cfg.DefaultOrigin, cfg.DefaultDestination)
		if !ok {
			return nil, fmt.Errorf("default route %q -> %q is not a registered route", cfg.DefaultOrigin, cfg.DefaultDestination)
		}
		s.defaultKey = &key
	}
	return s, nil
}

// ListRoutes returns every registered route.
func (s *RouteService) ListRoutes() []RouteDTO {
	keys := route.RegisteredKeys()
	out := make([]RouteDTO, len(keys))
	for i, k := range keys {
		out[i] = RouteDTO{Key: k.String(), Origin: toPlaceDTO(k.Origin), Destination: toPlaceDTO(k.Destination)}
	}
	return out
}

// ListPlaces returns the canonical places and their aliases.
func (s *RouteService) ListPlaces() []route.PlaceInfo {
	return route.Places()
}

// DefaultRoute returns the configured default pair, if any.
func (s *RouteService) DefaultRoute() (route.Key, bool) {
	if s.defaultKey == nil {
		return route.Key{}, false
	}
	return *s.defaultKey, true
}

// Resolve looks up the route between two free-text place names.
// When nothing is found the default route is used and flagged as a fallback.
func (s *RouteService) Resolve(ctx context.Context, start, end string) (*RouteResultDTO, error) {
	if key, ok := s.resolver.ResolveKey(start, end); ok {
		points, err := s.lookup(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(points) > 0 {
			return buildRouteResult(key, points, false), nil
		}
	}

	s.logger.Info("route not resolved",
		zap.String("start", start),
		zap.String("end", end),
		zap.Bool("has_default", s.defaultKey != nil),
	)

	if s.defaultKey != nil {
		points, err := s.lookup(ctx, *s.defaultKey)
		if err != nil {
			return nil, err
		}
		if len(points) > 0 {
			return buildRouteResult(*s.defaultKey, points, true), nil
		}
	}

	return &RouteResultDTO{Found: false, Points: []route.Point{}, Message: NoRouteMessage}, nil
}

// lookup treats malformed stored data as missing so callers degrade to "no route".
func (s *RouteService) lookup(ctx context.Context, key route.Key) ([]route.Point, error) {
	points, err := s.resolver.Lookup(ctx, key)
	if errors.Is(err, route.ErrMalformedRoute) {
		s.logger.Error("stored route is malformed", zap.String("route", key.String()), zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return points, nil
}

func buildRouteResult(key route.Key, points []route.Point, fallback bool) *RouteResultDTO {
	d := route.ComputeDistance(points)
	origin, destination := toPlaceDTO(key.Origin), toPlaceDTO(key.Destination)
	return &RouteResultDTO{
		Found:           true,
		Origin:          &origin,
		Destination:     &destination,
		Points:          points,
		DistanceNM:      d.NauticalMiles,
		Segments:        d.Segments,
		SkippedSegments: d.SkippedSegments,
		Complete:        d.Complete(),
		Fallback:        fallback,
	}
}

func toPlaceDTO(p route.Place) PlaceDTO {
	info, ok := p.Info()
	if !ok {
		return PlaceDTO{ID: string(p), Name: string(p)}
	}
	return PlaceDTO{ID: string(info.Place), Name: info.DisplayName, NativeName: info.NativeName}
}
