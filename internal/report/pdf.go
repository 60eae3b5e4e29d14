// Package report builds the PDF summary documents.
//
// Document wraps an fpdf page flow with the handful of blocks the reports
// need: a title, body paragraphs, section headings, simple grid tables and
// an embedded chart image. Domain packages compose these blocks into the
// final report layout.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/go-pdf/fpdf"

	"opsreport/internal/errors"
	"opsreport/internal/profile"
)

// Document is a PDF report under construction
type Document struct {
	pdf *fpdf.Fpdf
}

// NewDocument creates a letter-sized portrait document with the given title
// already rendered at the top of the first page.
func NewDocument(title string) *Document {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	return &Document{pdf: pdf}
}

// AddParagraph appends a body text paragraph
func (d *Document) AddParagraph(text string) {
	d.pdf.SetFont("Helvetica", "", 10)
	d.pdf.MultiCell(0, 5, text, "", "L", false)
	d.pdf.Ln(4)
}

// AddHeading appends a section heading
func (d *Document) AddHeading(text string) {
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

// AddTable appends a bordered table with a shaded bold header row.
// Columns share the usable page width equally.
func (d *Document) AddTable(header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}

	pageWidth, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(header))

	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(224, 224, 224)
	for _, h := range header {
		d.pdf.CellFormat(colWidth, 7, h, "1", 0, "L", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i := 0; i < len(header); i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			d.pdf.CellFormat(colWidth, 6, cell, "1", 0, "L", false, 0, "")
		}
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(6)
}

// AddImage embeds a PNG image centered at the given width in millimeters,
// keeping its aspect ratio. Missing files are an error.
func (d *Document) AddImage(path string, widthMM float64) error {
	if _, err := os.Stat(path); err != nil {
		return errors.NewNotFoundError(fmt.Sprintf("chart image %s not found", filepath.Base(path)), err)
	}

	pageWidth, _ := d.pdf.GetPageSize()
	x := (pageWidth - widthMM) / 2

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	d.pdf.ImageOptions(path, x, 0, widthMM, 0, true, opts, 0, "")
	d.pdf.Ln(4)

	if d.pdf.Err() {
		return errors.NewStorageError("failed to embed chart image", d.pdf.Error())
	}
	return nil
}

// Write renders the document to w
func (d *Document) Write(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return errors.NewStorageError("failed to render PDF document", err)
	}
	return nil
}

// WriteFile renders the document to a file, creating parent directories
func (d *Document) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create report directory", err)
	}
	if err := d.pdf.OutputFileAndClose(path); err != nil {
		return errors.NewStorageError("failed to write PDF document", err)
	}
	return nil
}

// AddProfileAppendix appends a data quality section describing the raw
// dataset before cleaning. A nil or empty profile adds nothing.
func AddProfileAppendix(d *Document, p *profile.Profile) {
	if p == nil || len(p.Columns) == 0 {
		return
	}
	d.AddHeading("Appendix: Raw Data Quality")
	d.AddParagraph(fmt.Sprintf("The raw dataset had %s rows across %s columns, with %s missing values before cleaning.",
		Count(p.Rows), Count(len(p.Columns)), Count(p.MissingTotal())))

	rows := make([][]string, len(p.Columns))
	for i, c := range p.Columns {
		rows[i] = []string{c.Name, c.Type, Count(c.Missing)}
	}
	d.AddTable([]string{"Column", "Inferred type", "Missing values"}, rows)
}

// Formatting helpers shared by the report composers

// Money formats a currency amount with grouping and two decimals, e.g. $1,234.50
func Money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Count formats an integer with thousands grouping
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Percent formats a percentage with one decimal, e.g. 12.5%
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Hours formats an hour quantity with one decimal, e.g. 36.4 hours
func Hours(v float64) string {
	return fmt.Sprintf("%.1f hours", v)
}
