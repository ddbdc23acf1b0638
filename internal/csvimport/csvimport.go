// Package csvimport turns uploaded CSV text into validated product records.
//
// The dialect is deliberately simple: lines split on '\n', fields split on
// ',' and every double quote is stripped. Quoted fields containing commas are
// not supported and shift the columns of their row.
package csvimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

// Error messages reported for rejected input.
const (
	MsgEmptyFile       = "CSV file is empty or has only a header."
	MsgMissingRequired = "row is missing required fields: name, sku, price, stock"
	MsgInvalidNumber   = "invalid price or stock value."
)

// Columns lists the recognised header names.
var Columns = []string{
	"name", "sku", "category", "description", "price", "stock", "status",
	"imageUrl", "lastUpdated", "dateAdded", "isFeatured", "contactEmail", "productUrl",
}

// Options supplies the non-deterministic inputs of Parse.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	return o
}

// Batch is the outcome of parsing: the accepted products in input order and
// one error per rejected row.
type Batch struct {
	Products []domain.Product
	Errors   []domain.ImportError
}

// Result summarises the batch as if every accepted product was committed.
func (b Batch) Result() domain.ImportResult {
	errs := b.Errors
	if errs == nil {
		errs = []domain.ImportError{}
	}
	return domain.ImportResult{SuccessCount: len(b.Products), Errors: errs}
}

// Decode reads the whole stream as UTF-8 text, dropping a leading byte order
// mark.
func Decode(r io.Reader) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Parse validates every data row of text independently. A rejected row never
// aborts the batch, and nothing is rejected because of another row.
func Parse(text string, opts Options) Batch {
	opts = opts.withDefaults()

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return Batch{Errors: []domain.ImportError{{Row: 1, Message: MsgEmptyFile}}}
	}

	header := strings.Split(lines[0], ",")
	for i, h := range header {
		header[i] = clean(h)
	}

	var batch Batch
	now := domain.Timestamp(opts.Now())
	for i, line := range lines[1:] {
		row := i + 2
		values := strings.Split(line, ",")
		fields := make(map[string]string, len(header))
		for j, key := range header {
			if j < len(values) {
				fields[key] = clean(values[j])
			} else {
				fields[key] = ""
			}
		}

		p, msg := buildProduct(fields, now, opts.NewID)
		if msg != "" {
			batch.Errors = append(batch.Errors, domain.ImportError{Row: row, Message: msg})
			continue
		}
		batch.Products = append(batch.Products, p)
	}
	return batch
}

func clean(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}

func buildProduct(f map[string]string, now time.Time, newID func() string) (domain.Product, string) {
	if f["name"] == "" || f["sku"] == "" || f["price"] == "" || f["stock"] == "" {
		return domain.Product{}, MsgMissingRequired
	}

	price, err := decimal.NewFromString(f["price"])
	if err != nil || !price.IsPositive() {
		return domain.Product{}, MsgInvalidNumber
	}
	stock, err := leadingInt(f["stock"])
	if err != nil || stock < 0 {
		return domain.Product{}, MsgInvalidNumber
	}

	status, _ := domain.ParseStatus(f["status"])
	category := f["category"]
	if category == "" {
		category = domain.DefaultCategory
	}

	id := newID()
	imageURL := f["imageUrl"]
	if imageURL == "" {
		imageURL = PlaceholderImage(id)
	}

	return domain.Product{
		ID:           id,
		Name:         f["name"],
		SKU:          f["sku"],
		Category:     category,
		Description:  f["description"],
		Price:        price,
		Stock:        stock,
		Status:       status,
		ImageURL:     imageURL,
		LastUpdated:  timestampOr(f["lastUpdated"], now),
		DateAdded:    timestampOr(f["dateAdded"], now),
		IsFeatured:   strings.EqualFold(f["isFeatured"], "true"),
		ContactEmail: f["contactEmail"],
		ProductURL:   f["productUrl"],
	}, ""
}

// leadingInt parses the integer prefix of s after leading whitespace, so
// "12 units" and "10.0" read as 12 and 10. It fails when no digit follows the
// optional sign.
func leadingInt(s string) (int, error) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s[:end])
}

// PlaceholderImage returns the generated image URL for a product without one.
func PlaceholderImage(id string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/400", id)
}

func timestampOr(raw string, fallback time.Time) time.Time {
	if raw == "" {
		return fallback
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fallback
	}
	return domain.Timestamp(ts)
}
