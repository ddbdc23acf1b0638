package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
)

var exportNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleProducts() []domain.Product {
	ts := time.Date(2024, 5, 2, 8, 15, 30, 250_000_000, time.UTC)
	return []domain.Product{
		{
			ID:          "p-1",
			Name:        `Lamp, "large"`,
			SKU:         "L-1",
			Category:    "Home",
			Description: "line one\nline two",
			Price:       decimal.RequireFromString("19.5"),
			Stock:       3,
			Status:      domain.StatusActive,
			ImageURL:    "https://img.example/l.png",
			LastUpdated: ts,
			DateAdded:   ts,
			IsFeatured:  true,
		},
		{
			ID:           "p-2",
			Name:         "Chair",
			SKU:          "C-1",
			Category:     "Home",
			Price:        decimal.NewFromInt(40),
			Stock:        0,
			Status:       domain.StatusDiscontinued,
			LastUpdated:  ts,
			DateAdded:    ts,
			ContactEmail: "sales@shop.example",
			ProductURL:   "shop.example/chair",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, raw := range []string{"csv", "json", "pdf"} {
		f, err := ParseFormat(raw)
		require.NoError(t, err)
		assert.Equal(t, Format(raw), f)
	}

	_, err := ParseFormat("xlsx")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleProducts()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Header, records[0])
	assert.Equal(t, []string{
		"p-1", `Lamp, "large"`, "L-1", "Home", "line one\nline two", "19.5", "3", "Active",
		"https://img.example/l.png", "2024-05-02T08:15:30.250Z", "2024-05-02T08:15:30.250Z",
		"true", "", "",
	}, records[1])
	assert.Equal(t, "Discontinued", records[2][7])
	assert.Equal(t, "false", records[2][11])
	assert.Equal(t, "sales@shop.example", records[2][12])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleProducts()))

	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {\n    \"id\": \"p-1\""), buf.String())
	assert.Contains(t, buf.String(), `"price": 19.5`)

	var decoded []domain.Product
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.ElementsMatch(t, catalogTuples(sampleProducts()), catalogTuples(decoded))
}

// catalogTuple is the identity of a record as an export round trip must keep it.
type catalogTuple struct {
	SKU, Name, Price string
	Stock            int
}

func catalogTuples(products []domain.Product) []catalogTuple {
	out := make([]catalogTuple, len(products))
	for i, p := range products {
		out[i] = catalogTuple{SKU: p.SKU, Name: p.Name, Price: p.Price.String(), Stock: p.Stock}
	}
	return out
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleProducts(), exportNow))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
}

func TestWritePDF_ManyRowsAndLongText(t *testing.T) {
	base := sampleProducts()[1]
	base.Name = strings.Repeat("Extremely long product name ", 10)
	products := make([]domain.Product, 120)
	for i := range products {
		products[i] = base
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, products, exportNow))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestEncode(t *testing.T) {
	tests := []struct {
		format      Format
		name        string
		contentType string
	}{
		{FormatCSV, "products_export.csv", "text/csv; charset=utf-8"},
		{FormatJSON, "products_export.json", "application/json"},
		{FormatPDF, "products_export.pdf", "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := Encode(tt.format, sampleProducts(), exportNow)
			require.NoError(t, err)
			assert.Equal(t, tt.name, f.Name)
			assert.Equal(t, tt.contentType, f.ContentType)
			assert.NotEmpty(t, f.Body)
		})
	}

	_, err := Encode("xml", sampleProducts(), exportNow)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
