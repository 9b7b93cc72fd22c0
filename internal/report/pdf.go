package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/SinomthaMzamo/vuka-coach/internal/api"
)

// WritePDF exports the report to dir as a timestamped PDF and returns
// the written path.
func WritePDF(r *api.Report, dir string) (string, error) {
	if r == nil {
		return "", fmt.Errorf("no report to export")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir %s: %w", dir, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 16)
	pdf.AddPage()

	pdf.Cell(40, 10, "Interview Report")
	pdf.Ln(14)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, fmt.Sprintf("Overall score: %.1f / 100", r.OverallScore))
	pdf.Ln(12)

	if len(r.Metrics) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, "Metrics")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		for _, name := range sortedMetricNames(r.Metrics) {
			pdf.Cell(40, 6, fmt.Sprintf("%s: %.1f", name, r.Metrics[name]))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if r.Summary != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, "Summary")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, r.Summary, "", "L", false)
		pdf.Ln(4)
	}

	writePDFList(pdf, "Strengths", r.Strengths)
	writePDFList(pdf, "Areas for improvement", r.AreasForImprovement)

	path := filepath.Join(dir, fmt.Sprintf("interview-report-%s.pdf", time.Now().Format("20060102-150405")))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report pdf %s: %w", path, err)
	}
	return path, nil
}

func writePDFList(pdf *gofpdf.Fpdf, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 8, heading)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, item := range items {
		pdf.MultiCell(0, 6, "- "+item, "", "L", false)
	}
	pdf.Ln(4)
}
