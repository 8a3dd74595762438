package domain

import "time"

// Типы событий изменения каталога.
type ProductEventType string

const (
	ProductCreated      ProductEventType = "product.created"
	ProductUpdated      ProductEventType = "product.updated"
	ProductDeleted      ProductEventType = "product.deleted"
	ProductBulkInserted ProductEventType = "product.bulk_inserted"
)

// ProductEvent — событие изменения каталога, публикуемое в Kafka.
// Для bulk_inserted ProductID равен нулю, а Count — числу вставленных записей.
type ProductEvent struct {
	EventID    string           `json:"event_id"`
	EventType  ProductEventType `json:"event_type"`
	ProductID  int64            `json:"product_id,omitempty"`
	Count      int              `json:"count,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
