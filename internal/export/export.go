// Package export encodes product lists as downloadable CSV, JSON and PDF
// files.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

// Format is an export file format.
type Format string

// Supported export formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format name.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(raw); f {
	case FormatCSV, FormatJSON, FormatPDF:
		return f, nil
	}
	return "", apperrors.InvalidInput(fmt.Sprintf("unsupported export format %q", raw))
}

// TimestampLayout renders timestamps as ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Header is the column order of CSV exports.
var Header = []string{
	"id", "name", "sku", "category", "description", "price", "stock", "status",
	"imageUrl", "lastUpdated", "dateAdded", "isFeatured", "contactEmail", "productUrl",
}

// File is an encoded export ready to be downloaded.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Encode renders products in the given format. now stamps the PDF report.
func Encode(format Format, products []domain.Product, now time.Time) (*File, error) {
	var (
		buf bytes.Buffer
		err error
		f   File
	)

	switch format {
	case FormatCSV:
		err = WriteCSV(&buf, products)
		f = File{Name: "products_export.csv", ContentType: "text/csv; charset=utf-8"}
	case FormatJSON:
		err = WriteJSON(&buf, products)
		f = File{Name: "products_export.json", ContentType: "application/json"}
	case FormatPDF:
		err = WritePDF(&buf, products, now)
		f = File{Name: "products_export.pdf", ContentType: "application/pdf"}
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s export: %w", format, err)
	}

	f.Body = buf.Bytes()
	return &f, nil
}

// WriteCSV writes a header line followed by one record per product. Fields
// are quoted only where RFC 4180 requires it.
func WriteCSV(w io.Writer, products []domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range products {
		if err := cw.Write(csvRecord(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(p domain.Product) []string {
	return []string{
		p.ID,
		p.Name,
		p.SKU,
		p.Category,
		p.Description,
		p.Price.String(),
		strconv.Itoa(p.Stock),
		string(p.Status),
		p.ImageURL,
		p.LastUpdated.UTC().Format(TimestampLayout),
		p.DateAdded.UTC().Format(TimestampLayout),
		strconv.FormatBool(p.IsFeatured),
		p.ContactEmail,
		p.ProductURL,
	}
}

// WriteJSON writes products as a two-space indented JSON array.
func WriteJSON(w io.Writer, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(products)
}
