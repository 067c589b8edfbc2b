// Package pdf renders fuel-saving reports with go-pdf/fpdf.
package pdf

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	"github.com/seafuel/service-voyage/internal/config"
	"github.com/seafuel/service-voyage/internal/domain/report"
)

const (
	coreFont   = "Helvetica"
	customFont = "ReportFont"

	colNo  = 20.0
	colLng = 60.0
	colLat = 60.0
	rowH   = 7.0
)

// headerFill is the light blue used for the table header row.
var headerFill = [3]int{173, 216, 230}

// Renderer draws A4 portrait reports.
type Renderer struct {
	fontPath string
}

// NewRenderer creates a Renderer. When cfg.FontPath is set it must point to a
// readable TrueType font, which is embedded so that non-Latin names print.
func NewRenderer(cfg config.ReportConfig) (*Renderer, error) {
	if cfg.FontPath != "" {
		if _, err := os.Stat(cfg.FontPath); err != nil {
			return nil, fmt.Errorf("report font: %w", err)
		}
	}
	return &Renderer{fontPath: cfg.FontPath}, nil
}

// ContentType returns the MIME type of rendered documents.
func (r *Renderer) ContentType() string { return "application/pdf" }

// Render writes the report as a PDF document to w.
func (r *Renderer) Render(w io.Writer, rep *report.Report) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)

	family, bold := coreFont, "B"
	tr := doc.UnicodeTranslatorFromDescriptor("")
	if r.fontPath != "" {
		doc.AddUTF8Font(customFont, "", r.fontPath)
		family, bold = customFont, ""
		tr = func(s string) string { return s }
	}

	doc.SetTitle(rep.Title(), true)
	doc.SetCreator("service-voyage", false)
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont(family, "", 8)
		doc.SetTextColor(110, 110, 110)
		footer := fmt.Sprintf("Generated %s  |  Report %s  |  Page %d/{nb}",
			rep.GeneratedAt().Format("2006-01-02 15:04:05"), rep.ID(), doc.PageNo())
		doc.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})

	doc.AddPage()

	doc.SetFont(family, bold, 18)
	doc.CellFormat(0, 12, tr(rep.Title()), "", 1, "C", false, 0, "")
	doc.Ln(4)

	s := rep.Summary()
	doc.SetFont(family, "", 11)
	lines := []string{
		fmt.Sprintf("Original speed: %.2f kn", s.OriginalSpeed),
		fmt.Sprintf("Optimised speed: %.2f kn", s.OptimizedSpeed),
		fmt.Sprintf("Distance: %.2f nm", s.Distance),
		fmt.Sprintf("Estimated fuel saving: %.2f t", s.Saving),
	}
	if s.Origin != "" || s.Destination != "" {
		lines = append(lines, fmt.Sprintf("Route: %s -> %s", s.Origin, s.Destination))
	}
	for _, line := range lines {
		doc.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}
	doc.Ln(6)

	points := rep.Points()
	doc.SetFont(family, bold, 13)
	doc.CellFormat(0, 9, "Route points", "", 1, "L", false, 0, "")
	if len(points) == 0 {
		doc.SetFont(family, "", 11)
		doc.CellFormat(0, 8, "No route data available.", "", 1, "L", false, 0, "")
		return doc.Output(w)
	}

	tableHeader := func() {
		doc.SetFont(family, bold, 10)
		doc.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		doc.CellFormat(colNo, rowH, "No.", "1", 0, "C", true, 0, "")
		doc.CellFormat(colLng, rowH, "Longitude", "1", 0, "C", true, 0, "")
		doc.CellFormat(colLat, rowH, "Latitude", "1", 1, "C", true, 0, "")
		doc.SetFont(family, "", 10)
	}

	tableHeader()
	_, pageH := doc.GetPageSize()
	_, _, _, bottom := doc.GetMargins()
	for i, p := range points {
		if doc.GetY()+rowH > pageH-bottom {
			doc.AddPage()
			tableHeader()
		}
		doc.CellFormat(colNo, rowH, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		doc.CellFormat(colLng, rowH, fmt.Sprintf("%.6f", p.Lng), "1", 0, "R", false, 0, "")
		doc.CellFormat(colLat, rowH, fmt.Sprintf("%.6f", p.Lat), "1", 1, "R", false, 0, "")
	}

	return doc.Output(w)
}
