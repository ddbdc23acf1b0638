package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
	pkgkafka "github.com/diqie123/sistem-entri-data-inventaris/pkg/kafka"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/logger"
)

// Kafka topics for console domain events.
var (
	TopicProductCreated  = pkgkafka.Topic(AggregateTypeProduct, "created")
	TopicProductUpdated  = pkgkafka.Topic(AggregateTypeProduct, "updated")
	TopicProductDeleted  = pkgkafka.Topic(AggregateTypeProduct, "deleted")
	TopicCategoryChanged = pkgkafka.Topic(AggregateTypeCategory, "changed")
	TopicImportCompleted = pkgkafka.Topic(AggregateTypeImport, "completed")
)

// Aggregate type constants.
const (
	AggregateTypeProduct  = "product"
	AggregateTypeCategory = "category"
	AggregateTypeImport   = "import"
)

// SourceConsole identifies events emitted by the inventory console.
const SourceConsole = "inventory-console"

// Category change kinds.
const (
	CategoryAdded   = "added"
	CategoryRenamed = "renamed"
	CategoryRemoved = "removed"
)

// FieldChangeData describes one changed field of an updated product.
type FieldChangeData struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ProductUpdatedData is the payload for a product.updated event.
type ProductUpdatedData struct {
	Product domain.Product    `json:"product"`
	Changes []FieldChangeData `json:"changes"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// CategoryChangedData is the payload for a category.changed event.
type CategoryChangedData struct {
	Change           string `json:"change"`
	Name             string `json:"name"`
	PreviousName     string `json:"previous_name,omitempty"`
	ProductsAffected int    `json:"products_affected"`
}

// ImportCompletedData is the payload for an import.completed event.
type ImportCompletedData struct {
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	ProductIDs   []string `json:"product_ids"`
	Categories   []string `json:"new_categories,omitempty"`
}

// Producer publishes console domain events.
type Producer struct {
	publisher pkgkafka.Publisher
	logger    *slog.Logger
}

// NewProducer creates an event producer on top of publisher. Pass
// pkgkafka.NopPublisher{} when event publishing is disabled.
func NewProducer(publisher pkgkafka.Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishProductCreated publishes a product.created event carrying the full
// record.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publish(ctx, TopicProductCreated, product.ID, AggregateTypeProduct, product)
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product, changes []domain.FieldChange) error {
	data := ProductUpdatedData{Product: *product, Changes: make([]FieldChangeData, 0, len(changes))}
	for _, c := range changes {
		data.Changes = append(data.Changes, FieldChangeData{Field: c.Field, Old: c.Old, New: c.New})
	}
	return p.publish(ctx, TopicProductUpdated, product.ID, AggregateTypeProduct, data)
}

// PublishProductsDeleted publishes one product.deleted event per removed
// product. It stops at the first failure.
func (p *Producer) PublishProductsDeleted(ctx context.Context, products ...domain.Product) error {
	for _, product := range products {
		data := ProductDeletedData{ID: product.ID, Name: product.Name, SKU: product.SKU}
		if err := p.publish(ctx, TopicProductDeleted, product.ID, AggregateTypeProduct, data); err != nil {
			return err
		}
	}
	return nil
}

// PublishCategoryChanged publishes a category.changed event.
func (p *Producer) PublishCategoryChanged(ctx context.Context, data CategoryChangedData) error {
	return p.publish(ctx, TopicCategoryChanged, data.Name, AggregateTypeCategory, data)
}

// PublishImportCompleted publishes an import.completed event summarising one
// committed CSV import.
func (p *Producer) PublishImportCompleted(ctx context.Context, importID string, data ImportCompletedData) error {
	if data.ProductIDs == nil {
		data.ProductIDs = []string{}
	}
	return p.publish(ctx, TopicImportCompleted, importID, AggregateTypeImport, data)
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceConsole, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.publisher.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)

	return nil
}
