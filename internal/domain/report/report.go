// Package report describes the exported fuel-saving summary document.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/seafuel/service-voyage/internal/domain/route"
)

// FilenameLayout is the timestamp layout used in download filenames.
const FilenameLayout = "20060102-150405"

// Summary holds the figures printed at the top of the report.
type Summary struct {
	OriginalSpeed  float64
	OptimizedSpeed float64
	Distance       float64
	Saving         float64
	Origin         string
	Destination    string
}

// Report is one generated fuel-saving document.
type Report struct {
	id          uuid.UUID
	title       string
	summary     Summary
	points      []route.Point
	generatedAt time.Time
}

// NewReport creates a report stamped with the current time.
func NewReport(title string, summary Summary, points []route.Point) (*Report, error) {
	if title == "" {
		return nil, errors.New("report title is required")
	}
	return &Report{
		id:          uuid.New(),
		title:       title,
		summary:     summary,
		points:      append([]route.Point(nil), points...),
		generatedAt: time.Now(),
	}, nil
}

func (r *Report) ID() uuid.UUID          { return r.id }
func (r *Report) Title() string          { return r.title }
func (r *Report) Summary() Summary       { return r.summary }
func (r *Report) Points() []route.Point  { return r.points }
func (r *Report) GeneratedAt() time.Time { return r.generatedAt }

// Filename returns the attachment name offered to the browser.
func (r *Report) Filename() string {
	return fmt.Sprintf("fuel-saving-report-%s.pdf", r.generatedAt.Format(FilenameLayout))
}
