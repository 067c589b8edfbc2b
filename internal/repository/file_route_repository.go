package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/seafuel/service-voyage/internal/domain/route"
)

// RouteFile is the on-disk shape of one route, stored as <origin>_<destination>.json.
type RouteFile struct {
	Name   string        `json:"name,omitempty"`
	Points []route.Point `json:"points"`
}

// FileRouteRepository implements route.Repository over a directory of JSON files.
// Routes are read once and kept in memory.
type FileRouteRepository struct {
	dir  string
	fsys fs.FS

	mu    sync.RWMutex
	cache map[route.Key][]route.Point
}

// NewFileRouteRepository creates a repository reading from dir.
func NewFileRouteRepository(dir string) *FileRouteRepository {
	return &FileRouteRepository{
		dir:   dir,
		fsys:  os.DirFS(dir),
		cache: make(map[route.Key][]route.Point),
	}
}

// Lookup returns the points stored for key.
func (r *FileRouteRepository) Lookup(_ context.Context, key route.Key) ([]route.Point, error) {
	r.mu.RLock()
	points, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return points, nil
	}

	file, err := r.Read(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = file.Points
	r.mu.Unlock()
	return file.Points, nil
}

// Read loads and validates the file for key without caching it.
func (r *FileRouteRepository) Read(key route.Key) (*RouteFile, error) {
	raw, err := fs.ReadFile(r.fsys, fileName(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, route.ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read route %s: %w", key, err)
	}

	var file RouteFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", route.ErrMalformedRoute, key, err)
	}
	if len(file.Points) < 2 {
		return nil, fmt.Errorf("%w: %s: has %d points, need at least 2", route.ErrMalformedRoute, key, len(file.Points))
	}
	return &file, nil
}

// Store writes points for key and replaces any cached copy.
func (r *FileRouteRepository) Store(_ context.Context, key route.Key, name string, points []route.Point) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: %s: has %d points, need at least 2", route.ErrMalformedRoute, key, len(points))
	}
	raw, err := json.MarshalIndent(RouteFile{Name: name, Points: points}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode route %s: %w", key, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create route dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.dir, fileName(key)), raw, 0o644); err != nil {
		return fmt.Errorf("write route %s: %w", key, err)
	}

	r.mu.Lock()
	r.cache[key] = append([]route.Point(nil), points...)
	r.mu.Unlock()
	return nil
}

func fileName(key route.Key) string {
	return key.String() + ".json"
}
