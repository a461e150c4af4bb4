package redisx

import "time"

const (
	// Cache of a paid order as served by GET /api/orders/{id}:
	// order:{order_id} -> JSON
	KeyOrder = "order:%d"

	// Kitchen display board, one hash holding all pending orders:
	// field = order_id, value = JSON ticket.
	KeyKitchenBoard = "kitchen:board"

	// Dedup for event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache = 10 * time.Minute
	TTLDedup      = 48 * time.Hour
)
