package route

import (
	"context"
	"errors"
)

// ErrRouteNotFound is returned by a Repository that holds no points for a key.
var ErrRouteNotFound = errors.New("route not found")

// ErrMalformedRoute is returned when stored route data cannot be used.
var ErrMalformedRoute = errors.New("malformed route data")

// Repository is the read-only store of route polylines.
type Repository interface {
	// Lookup returns the points stored for key, or ErrRouteNotFound.
	Lookup(ctx context.Context, key Key) ([]Point, error)
}

// Writer is implemented by stores that can be seeded with route data.
type Writer interface {
	Store(ctx context.Context, key Key, name string, points []Point) error
}
