package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AuditAction is the kind of mutation recorded by an audit entry.
type AuditAction string

// Audit action constants.
const (
	ActionCreate AuditAction = "CREATE"
	ActionUpdate AuditAction = "UPDATE"
	ActionDelete AuditAction = "DELETE"
)

// MultipleProductsID stands in for the product id of a bulk entry.
const MultipleProductsID = "multiple"

// IsValid reports whether a is a known action.
func (a AuditAction) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// AuditLog is an append-only record of one product mutation. ProductName is a
// snapshot taken when the entry was written.
type AuditLog struct {
	ID          string      `json:"id"`
	Timestamp   time.Time   `json:"timestamp"`
	Action      AuditAction `json:"action"`
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Details     string      `json:"details"`
}

// NewCreateLog records the creation of p.
func NewCreateLog(id string, now time.Time, p Product) AuditLog {
	return AuditLog{
		ID:          id,
		Timestamp:   Timestamp(now),
		Action:      ActionCreate,
		ProductID:   p.ID,
		ProductName: p.Name,
		Details:     fmt.Sprintf("Product \"%s\" was created.", p.Name),
	}
}

// NewUpdateLog records the change from old to updated.
func NewUpdateLog(id string, now time.Time, old, updated Product) AuditLog {
	details := "Product saved with no changes."
	if changes := Diff(old, updated); len(changes) > 0 {
		parts := make([]string, len(changes))
		for i, c := range changes {
			parts[i] = c.String()
		}
		details = strings.Join(parts, ". ")
	}
	return AuditLog{
		ID:          id,
		Timestamp:   Timestamp(now),
		Action:      ActionUpdate,
		ProductID:   updated.ID,
		ProductName: updated.Name,
		Details:     details,
	}
}

// NewDeleteLog records the removal of p.
func NewDeleteLog(id string, now time.Time, p Product) AuditLog {
	return AuditLog{
		ID:          id,
		Timestamp:   Timestamp(now),
		Action:      ActionDelete,
		ProductID:   p.ID,
		ProductName: p.Name,
		Details:     fmt.Sprintf("Product \"%s\" (SKU: %s) was deleted.", p.Name, p.SKU),
	}
}

// NewBulkDeleteLog records the removal of several products as one entry.
func NewBulkDeleteLog(id string, now time.Time, removed []Product) AuditLog {
	names := make([]string, len(removed))
	for i, p := range removed {
		names[i] = fmt.Sprintf("%s (SKU: %s)", p.Name, p.SKU)
	}
	return AuditLog{
		ID:          id,
		Timestamp:   Timestamp(now),
		Action:      ActionDelete,
		ProductID:   MultipleProductsID,
		ProductName: fmt.Sprintf("%d products", len(removed)),
		Details:     fmt.Sprintf("Bulk deleted products: %s.", strings.Join(names, ", ")),
	}
}

// FieldChange is one audited field whose value differs between two versions
// of a product.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

func (c FieldChange) String() string {
	return fmt.Sprintf("%s changed from \"%s\" to \"%s\"", c.Field, c.Old, c.New)
}

type auditedField struct {
	name  string
	value func(Product) string
}

// auditedFields lists the fields compared by Diff, in report order. Identity
// and timestamps are excluded.
var auditedFields = []auditedField{
	{"name", func(p Product) string { return p.Name }},
	{"sku", func(p Product) string { return p.SKU }},
	{"category", func(p Product) string { return p.Category }},
	{"description", func(p Product) string { return p.Description }},
	{"price", func(p Product) string { return p.Price.String() }},
	{"stock", func(p Product) string { return strconv.Itoa(p.Stock) }},
	{"status", func(p Product) string { return string(p.Status) }},
	{"imageUrl", func(p Product) string { return p.ImageURL }},
	{"isFeatured", func(p Product) string { return strconv.FormatBool(p.IsFeatured) }},
	{"contactEmail", func(p Product) string { return p.ContactEmail }},
	{"productUrl", func(p Product) string { return p.ProductURL }},
}

// AuditedFields returns the names of the fields Diff compares.
func AuditedFields() []string {
	names := make([]string, len(auditedFields))
	for i, f := range auditedFields {
		names[i] = f.name
	}
	return names
}

// Diff returns the audited fields that differ between old and updated.
func Diff(old, updated Product) []FieldChange {
	var changes []FieldChange
	for _, f := range auditedFields {
		before, after := f.value(old), f.value(updated)
		if before != after {
			changes = append(changes, FieldChange{Field: f.name, Old: before, New: after})
		}
	}
	return changes
}
