package orders

import (
	"encoding/json"
	"strconv"
	"time"
)

const (
	EventOrderPlaced = "OrderPlaced"

	TopicOrderPlaced = "pos.order.placed"
)

// Envelope is the wire wrapper for every event published by the POS.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type PlacedLine struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderPlacedPayload announces a committed payment to downstream consumers
// (currently the kitchen display).
type OrderPlacedPayload struct {
	OrderID int64        `json:"order_id"`
	Label   string       `json:"label"`
	Total   float64      `json:"total"`
	Lines   []PlacedLine `json:"lines"`
}

// PartitionKey keys messages by order id so all events for one order stay
// ordered within a partition.
func PartitionKey(orderID int64) []byte {
	return []byte(strconv.FormatInt(orderID, 10))
}
