package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/domain/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRouteService_Resolve(t *testing.T) {
	s := newTestRouteService(t, newMemoryRoutes(), config.RoutesConfig{})

	res, err := s.Resolve(context.Background(), "上海", "Ningbo Port")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.False(t, res.Fallback)
	assert.Equal(t, "shanghai", res.Origin.ID)
	assert.Equal(t, "Ningbo", res.Destination.Name)
	assert.Len(t, res.Points, 3)
	assert.Equal(t, 2, res.Segments)
	assert.True(t, res.Complete)
	assert.Greater(t, res.DistanceNM, 0.0)
}

func TestRouteService_NoRoute(t *testing.T) {
	s := newTestRouteService(t, newMemoryRoutes(), config.RoutesConfig{})

	for _, pair := range [][2]string{{"Shanghai", "Xiamen"}, {"Atlantis", "Ningbo"}, {"Tianjin", "Dalian"}} {
		res, err := s.Resolve(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, res.Found, pair)
		assert.NotNil(t, res.Points)
		assert.Empty(t, res.Points)
		assert.Equal(t, NoRouteMessage, res.Message)
	}
}

func TestRouteService_FallsBackToDefault(t *testing.T) {
	s := newTestRouteService(t, newMemoryRoutes(), config.RoutesConfig{DefaultOrigin: "Shenzhen", DefaultDestination: "Xiamen"})

	res, err := s.Resolve(context.Background(), "", "")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Fallback)
	assert.Equal(t, "shenzhen", res.Origin.ID)

	res, err = s.Resolve(context.Background(), "Shanghai", "Ningbo")
	require.NoError(t, err)
	assert.False(t, res.Fallback)
}

func TestRouteService_MalformedDegradesToNoRoute(t *testing.T) {
	repo := newMemoryRoutes()
	key := route.Key{Origin: route.Shanghai, Destination: route.Ningbo}
	repo.errs[key] = fmt.Errorf("%w: bad json", route.ErrMalformedRoute)
	s := newTestRouteService(t, repo, config.RoutesConfig{})

	res, err := s.Resolve(context.Background(), "Shanghai", "Ningbo")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestRouteService_StorageFailure(t *testing.T) {
	repo := newMemoryRoutes()
	repo.errs[route.Key{Origin: route.Shanghai, Destination: route.Ningbo}] = errors.New("connection refused")
	s := newTestRouteService(t, repo, config.RoutesConfig{})

	_, err := s.Resolve(context.Background(), "Shanghai", "Ningbo")
	assert.Error(t, err)
}

func TestNewRouteService_RejectsUnregisteredDefault(t *testing.T) {
	_, err := NewRouteService(route.NewResolver(newMemoryRoutes()), config.RoutesConfig{
		DefaultOrigin: "Shanghai", DefaultDestination: "Xiamen",
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestRouteService_ListRoutes(t *testing.T) {
	s := newTestRouteService(t, newMemoryRoutes(), config.RoutesConfig{})

	routes := s.ListRoutes()
	require.Len(t, routes, 10)
	assert.Equal(t, "shanghai_ningbo", routes[0].Key)
	assert.Equal(t, "Shanghai", routes[0].Origin.Name)
	assert.Equal(t, "宁波", routes[0].Destination.NativeName)
	assert.Len(t, s.ListPlaces(), 7)
}
