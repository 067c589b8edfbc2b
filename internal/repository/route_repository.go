package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seafuel/service-voyage/internal/domain/route"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RouteModel is the GORM model for the routes table.
type RouteModel struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Origin      string        `gorm:"type:varchar(32);not null;uniqueIndex:idx_routes_pair"`
	Destination string        `gorm:"type:varchar(32);not null;uniqueIndex:idx_routes_pair"`
	Name        string        `gorm:"type:varchar(200)"`
	Points      []route.Point `gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt   time.Time     `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time     `gorm:"type:timestamptz;not null;default:now()"`
}

func (RouteModel) TableName() string { return "routes" }

// GormRouteRepository implements route.Repository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Lookup(ctx context.Context, key route.Key) ([]route.Point, error) {
	var model RouteModel
	err := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", string(key.Origin), string(key.Destination)).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, route.ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(model.Points) < 2 {
		return nil, fmt.Errorf("%w: %s: has %d points, need at least 2", route.ErrMalformedRoute, key, len(model.Points))
	}
	return model.Points, nil
}

// Store inserts or replaces the route for key.
func (r *GormRouteRepository) Store(ctx context.Context, key route.Key, name string, points []route.Point) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: %s: has %d points, need at least 2", route.ErrMalformedRoute, key, len(points))
	}
	now := time.Now().UTC()
	model := RouteModel{
		ID:          uuid.New(),
		Origin:      string(key.Origin),
		Destination: string(key.Destination),
		Name:        name,
		Points:      points,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "origin"}, {Name: "destination"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "points", "updated_at"}),
	}).Create(&model).Error
}
