package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// FromHTML writes a PDF rendering of basic HTML content to w.
// Only the subset of tags fpdf's HTML writer understands is styled;
// everything else degrades to plain text.
func FromHTML(w io.Writer, title, html string) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle(title, true)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)

	writer := doc.HTMLBasicNew()
	writer.Write(5, html)

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
