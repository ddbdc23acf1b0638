package export

import (
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

// ReportTitle heads every PDF export.
const ReportTitle = "Product Inventory Report"

type pdfColumn struct {
	title string
	width float64
	align string
	value func(domain.Product) string
}

var pdfColumns = []pdfColumn{
	{"Name", 52, "L", func(p domain.Product) string { return p.Name }},
	{"SKU", 28, "L", func(p domain.Product) string { return p.SKU }},
	{"Category", 34, "L", func(p domain.Product) string { return p.Category }},
	{"Price ($)", 24, "R", func(p domain.Product) string { return p.Price.StringFixed(2) }},
	{"Stock", 18, "R", func(p domain.Product) string { return strconv.Itoa(p.Stock) }},
	{"Status", 26, "L", func(p domain.Product) string { return string(p.Status) }},
}

const (
	pdfMargin    = 14.0
	pdfRowHeight = 7.0
	pdfCellPad   = 2.0
)

// WritePDF renders products as a striped A4 table report.
func WritePDF(w io.Writer, products []domain.Product, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(ReportTitle, true)
	pdf.SetCreator("inventory-console", true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 18)
	pdf.Text(pdfMargin, 22, ReportTitle)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(pdfMargin, 28, "Generated on: "+now.Format("2006-01-02 15:04:05 MST"))
	pdf.SetY(35)

	tableHeader(pdf)

	_, pageHeight := pdf.GetPageSize()
	for i, p := range products {
		if pdf.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			pdf.AddPage()
			tableHeader(pdf)
		}

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(80, 80, 80)
		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for _, col := range pdfColumns {
			text := fit(pdf, tr(col.value(p)), col.width-pdfCellPad)
			pdf.CellFormat(col.width, pdfRowHeight, text, "", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(37, 99, 235)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, pdfRowHeight+1, col.title, "", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)
}

// fit shortens s with a trailing ellipsis until it fits in width.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []byte(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
