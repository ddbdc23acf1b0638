package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	pkgvalidator "github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// DraftStorageKey is the fixed key under which the unsaved new-product draft
// is kept.
const DraftStorageKey = "productFormDraft"

func init() {
	pkgvalidator.RegisterValidation("productstatus", func(fl validator.FieldLevel) bool {
		return ProductStatus(fl.Field().String()).IsValid()
	}, "must be one of: Active, Discontinued, Low Stock")
}

// Draft is an unsaved product record pending validation and creation.
type Draft struct {
	Name         string          `json:"name" validate:"notblank"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category" validate:"notblank"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" validate:"gt=0"`
	Stock        int             `json:"stock" validate:"gte=0"`
	Status       ProductStatus   `json:"status" validate:"omitempty,productstatus"`
	ImageURL     string          `json:"imageUrl"`
	IsFeatured   bool            `json:"isFeatured"`
	ContactEmail string          `json:"contactEmail" validate:"omitempty,email"`
	ProductURL   string          `json:"productUrl" validate:"omitempty,lenienturl"`

	// Timestamps are informational on a draft. Create always stamps fresh ones.
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
	DateAdded   *time.Time `json:"dateAdded,omitempty"`
}

// Validate checks the draft field rules. Category registration is checked by
// the caller, which owns the registry.
func (d Draft) Validate() error {
	return pkgvalidator.Validate(d)
}

// HasContent reports whether the draft is worth offering for restoration.
func (d Draft) HasContent() bool {
	return strings.TrimSpace(d.Name) != "" || strings.TrimSpace(d.SKU) != "" || d.Price.IsPositive()
}

// NewProduct builds a product from the draft with the given identity and
// creation time. Text fields are trimmed and an empty status becomes Active.
func (d Draft) NewProduct(id string, now time.Time) Product {
	status := d.Status
	if status == "" {
		status = StatusActive
	}
	ts := Timestamp(now)
	return Product{
		ID:           id,
		Name:         strings.TrimSpace(d.Name),
		SKU:          strings.TrimSpace(d.SKU),
		Category:     strings.TrimSpace(d.Category),
		Description:  d.Description,
		Price:        d.Price,
		Stock:        d.Stock,
		Status:       status,
		ImageURL:     strings.TrimSpace(d.ImageURL),
		LastUpdated:  ts,
		DateAdded:    ts,
		IsFeatured:   d.IsFeatured,
		ContactEmail: strings.TrimSpace(d.ContactEmail),
		ProductURL:   strings.TrimSpace(d.ProductURL),
	}
}

// DraftFromProduct returns the editable fields of p as a draft.
func DraftFromProduct(p Product) Draft {
	lastUpdated, dateAdded := p.LastUpdated, p.DateAdded
	return Draft{
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		Status:       p.Status,
		ImageURL:     p.ImageURL,
		IsFeatured:   p.IsFeatured,
		ContactEmail: p.ContactEmail,
		ProductURL:   p.ProductURL,
		LastUpdated:  &lastUpdated,
		DateAdded:    &dateAdded,
	}
}

// DuplicateDraft seeds a new draft from p: the name gains a " (Copy)" suffix,
// the SKU is cleared and both timestamps are reset to now. The draft has no
// identity until it is created.
func DuplicateDraft(p Product, now time.Time) Draft {
	d := DraftFromProduct(p)
	d.Name = p.Name + " (Copy)"
	d.SKU = ""
	ts := Timestamp(now)
	d.LastUpdated = &ts
	d.DateAdded = &ts
	return d
}

// Patch holds the fields of an update. Nil fields are left unchanged.
type Patch struct {
	Name         *string          `json:"name"`
	SKU          *string          `json:"sku"`
	Category     *string          `json:"category"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock"`
	Status       *ProductStatus   `json:"status"`
	ImageURL     *string          `json:"imageUrl"`
	IsFeatured   *bool            `json:"isFeatured"`
	ContactEmail *string          `json:"contactEmail"`
	ProductURL   *string          `json:"productUrl"`
}

// Apply returns a copy of p with the patch applied. Identity and timestamps
// are not touched.
func (pt Patch) Apply(p Product) Product {
	if pt.Name != nil {
		p.Name = strings.TrimSpace(*pt.Name)
	}
	if pt.SKU != nil {
		p.SKU = strings.TrimSpace(*pt.SKU)
	}
	if pt.Category != nil {
		p.Category = strings.TrimSpace(*pt.Category)
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Stock != nil {
		p.Stock = *pt.Stock
	}
	if pt.Status != nil {
		p.Status = *pt.Status
	}
	if pt.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*pt.ImageURL)
	}
	if pt.IsFeatured != nil {
		p.IsFeatured = *pt.IsFeatured
	}
	if pt.ContactEmail != nil {
		p.ContactEmail = strings.TrimSpace(*pt.ContactEmail)
	}
	if pt.ProductURL != nil {
		p.ProductURL = strings.TrimSpace(*pt.ProductURL)
	}
	return p
}
