// Package events defines the activity events published by the service.
package events

import "time"

// Source is the CloudEvents source of every event.
const Source = "service-voyage"

// Event types.
const (
	UserLoggedIn         = "user.logged_in"
	FuelSavingCalculated = "fuel_saving.calculated"
	ReportExported       = "report.exported"
)

// UserLoggedInEvent is published after a successful login.
type UserLoggedInEvent struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Channel    string    `json:"channel"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FuelSavingCalculatedEvent is published for every accepted calculation.
type FuelSavingCalculatedEvent struct {
	Username       string    `json:"username,omitempty"`
	OriginalSpeed  float64   `json:"original_speed"`
	OptimizedSpeed float64   `json:"optimized_speed"`
	Distance       float64   `json:"distance"`
	Saving         float64   `json:"saving"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// ReportExportedEvent is published after a report was rendered.
type ReportExportedEvent struct {
	ReportID    string    `json:"report_id"`
	Username    string    `json:"username,omitempty"`
	Origin      string    `json:"origin,omitempty"`
	Destination string    `json:"destination,omitempty"`
	PointCount  int       `json:"point_count"`
	Saving      float64   `json:"saving"`
	OccurredAt  time.Time `json:"occurred_at"`
}
