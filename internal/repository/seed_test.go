package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/seafuel/service-voyage/internal/domain/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSeedRoutes_CopiesShippedData(t *testing.T) {
	ctx := context.Background()
	src := NewFileRouteRepository(filepath.Join("..", "..", "data", "routes"))
	dst := NewFileRouteRepository(t.TempDir())

	n, err := SeedRoutes(ctx, src, dst, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	key := route.Key{Origin: route.Qingdao, Destination: route.Tianjin}
	want, err := src.Lookup(ctx, key)
	require.NoError(t, err)
	got, err := NewFileRouteRepository(dst.dir).Lookup(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSeedRoutes_SkipsMissingFiles(t *testing.T) {
	n, err := SeedRoutes(context.Background(), NewFileRouteRepository(t.TempDir()), NewFileRouteRepository(t.TempDir()), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
