package route

import (
	"context"
	"errors"
	"fmt"
)

// Resolver maps a pair of free-text place names to a stored route.
type Resolver struct {
	places *Gazetteer
	repo   Repository
}

// NewResolver creates a Resolver reading routes from repo.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{places: NewGazetteer(), repo: repo}
}

// ResolveKey resolves both names and reports whether the pair is registered.
func (r *Resolver) ResolveKey(origin, destination string) (Key, bool) {
	from, ok := r.places.Match(origin)
	if !ok {
		return Key{}, false
	}
	to, ok := r.places.Match(destination)
	if !ok {
		return Key{}, false
	}
	key := Key{Origin: from, Destination: to}
	if !key.Registered() {
		return Key{}, false
	}
	return key, true
}

// Resolve returns the points of the route between origin and destination.
//
// An unresolvable name, an unregistered pair and a registered pair without
// stored data all yield an empty slice and a nil error. Errors are returned
// only when the store itself fails.
func (r *Resolver) Resolve(ctx context.Context, origin, destination string) ([]Point, error) {
	key, ok := r.ResolveKey(origin, destination)
	if !ok {
		return nil, nil
	}
	return r.Lookup(ctx, key)
}

// Lookup returns the points stored for a registered key.
func (r *Resolver) Lookup(ctx context.Context, key Key) ([]Point, error) {
	points, err := r.repo.Lookup(ctx, key)
	if errors.Is(err, ErrRouteNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup route %s: %w", key, err)
	}
	return append([]Point(nil), points...), nil
}

// Places exposes the gazetteer used for name matching.
func (r *Resolver) Places() *Gazetteer { return r.places }
