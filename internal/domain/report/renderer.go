package report

import "io"

// Renderer writes a report in a downloadable format.
type Renderer interface {
	Render(w io.Writer, r *Report) error
	ContentType() string
}
