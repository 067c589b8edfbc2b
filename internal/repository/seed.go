package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/seafuel/service-voyage/internal/domain/route"
	userDomain "github.com/seafuel/service-voyage/internal/domain/user"
	"go.uber.org/zap"
)

// SeedRoutes copies every registered route found in src into dst.
// Registered routes without a file are skipped and logged.
func SeedRoutes(ctx context.Context, src *FileRouteRepository, dst route.Writer, log *zap.Logger) (int, error) {
	stored := 0
	for _, key := range route.RegisteredKeys() {
		file, err := src.Read(key)
		if errors.Is(err, route.ErrRouteNotFound) {
			log.Warn("route file missing, skipped", zap.String("route", key.String()))
			continue
		}
		if err != nil {
			return stored, err
		}
		if err := dst.Store(ctx, key, file.Name, file.Points); err != nil {
			return stored, fmt.Errorf("store route %s: %w", key, err)
		}
		log.Info("route imported", zap.String("route", key.String()), zap.Int("points", len(file.Points)))
		stored++
	}
	return stored, nil
}

// SeedUsers writes users to dst.
func SeedUsers(ctx context.Context, users []*userDomain.User, dst userDomain.Writer, log *zap.Logger) (int, error) {
	for i, u := range users {
		if err := dst.Upsert(ctx, u); err != nil {
			return i, fmt.Errorf("store user %s: %w", u.Username(), err)
		}
		log.Info("user imported", zap.String("username", u.Username()))
	}
	return len(users), nil
}
