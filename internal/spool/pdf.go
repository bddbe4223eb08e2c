package spool

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"
)

const pointToMM = 25.4 / 72

// PDFOptions controls plain text rendering.
type PDFOptions struct {
	PageSize    string  // fpdf size name; "" = A4
	Orientation string  // "P" or "L"; "" = P
	FontSize    float64 // points; 0 = 10
	Title       string
}

// WriteTextPDF renders plain text to a PDF file.
func WriteTextPDF(text []byte, opts PDFOptions, outputPath string) error {
	data, err := RenderTextPDF(text, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// RenderTextPDF renders plain text (USERASCII print data) to a PDF in memory
// using a monospace font. Form feeds start a new page; CR LF, LF and lone CR
// end a line.
func RenderTextPDF(text []byte, opts PDFOptions) ([]byte, error) {
	if len(text) == 0 {
		return nil, fmt.Errorf("no text to render")
	}
	if opts.PageSize == "" {
		opts.PageSize = "A4"
	}
	if opts.Orientation == "" {
		opts.Orientation = "P"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 10
	}

	pdf := fpdf.New(opts.Orientation, "mm", opts.PageSize, "")
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("page setup: %w", err)
	}
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetCreator("spoolsniff", false)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	pdf.SetFont("Courier", "", opts.FontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	lineHeight := opts.FontSize * pointToMM * 1.2

	for _, page := range splitPages(text) {
		pdf.AddPage()
		for _, line := range splitLines(page) {
			if line == "" {
				pdf.Ln(lineHeight)
				continue
			}
			pdf.MultiCell(0, lineHeight, tr(line), "", "L", false)
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return out.Bytes(), nil
}

// splitPages splits on form feed. A trailing form feed does not produce an
// extra blank page.
func splitPages(text []byte) [][]byte {
	pages := bytes.Split(text, []byte{'\f'})
	if len(pages) > 1 && len(bytes.TrimSpace(pages[len(pages)-1])) == 0 {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// splitLines normalizes line endings, expands tabs and drops other control
// characters.
func splitLines(page []byte) []string {
	s := strings.ToValidUTF8(string(page), "?")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}
	return lines
}

func cleanLine(line string) string {
	var b strings.Builder
	col := 0
	for _, r := range line {
		switch {
		case r == '\t':
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case r < 0x20 || r == 0x7F:
			// other controls are not printable
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
