// Package kitchen keeps the kitchen display fed: it consumes order.placed
// events and maintains the board of tickets cooks work from.
package kitchen

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cowboys44/panda-pos/internal/orders"
	"github.com/cowboys44/panda-pos/internal/redisx"
)

// Ticket is one pending order on the kitchen board.
type Ticket struct {
	OrderID  int64               `json:"order_id"`
	Label    string              `json:"label"`
	PlacedAt time.Time           `json:"placed_at"`
	Lines    []orders.PlacedLine `json:"lines"`
}

// Board stores pending tickets in a single Redis hash keyed by order id.
type Board struct {
	Redis *redis.Client
}

func (b *Board) Add(ctx context.Context, t Ticket) error {
	v, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return b.Redis.HSet(ctx, redisx.KeyKitchenBoard, strconv.FormatInt(t.OrderID, 10), v).Err()
}

func (b *Board) List(ctx context.Context) ([]Ticket, error) {
	m, err := b.Redis.HGetAll(ctx, redisx.KeyKitchenBoard).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Ticket, 0, len(m))
	for _, v := range m {
		var t Ticket
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			continue // skip tickets written by an incompatible version
		}
		out = append(out, t)
	}
	return out, nil
}

// Remove clears a finished order from the board.
func (b *Board) Remove(ctx context.Context, orderID int64) error {
	return b.Redis.HDel(ctx, redisx.KeyKitchenBoard, strconv.FormatInt(orderID, 10)).Err()
}
