package kitchen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	kafkax "github.com/cowboys44/panda-pos/internal/kafka"
	"github.com/cowboys44/panda-pos/internal/orders"
	"github.com/cowboys44/panda-pos/internal/redisx"
)

// Service turns order.placed events into kitchen board tickets.
type Service struct {
	Board       *Board
	Redis       *redis.Client
	ServiceName string
	Logger      *zap.Logger
}

// HandleOrderPlaced is installed as the kafka consumer handler.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	// Kafka redelivers on rebalance; dedup by event id so a ticket is not
	// re-added after the kitchen already cleared it.
	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	if seen, _ := redisx.Exists(ctx, s.Redis, dkey); seen {
		return nil
	}

	t, err := ticketFromEnvelope(env)
	if err != nil {
		s.Logger.Error("bad order.placed payload", zap.String("event_id", env.EventID), zap.Error(err))
		return err
	}
	if err := s.Board.Add(ctx, t); err != nil {
		return err
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	s.Logger.Info("ticket added",
		zap.Int64("order_id", t.OrderID),
		zap.Int("lines", len(t.Lines)))
	return nil
}

func ticketFromEnvelope(env orders.Envelope) (Ticket, error) {
	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return Ticket{}, err
	}
	return Ticket{
		OrderID:  p.OrderID,
		Label:    p.Label,
		PlacedAt: env.OccurredAt,
		Lines:    p.Lines,
	}, nil
}
