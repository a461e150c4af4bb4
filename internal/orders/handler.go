package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/cowboys44/panda-pos/internal/httpx"
	kafkax "github.com/cowboys44/panda-pos/internal/kafka"
	"github.com/cowboys44/panda-pos/internal/payment"
	"github.com/cowboys44/panda-pos/internal/redisx"
)

// PaymentProcessor is what the handler needs from the payment core.
type PaymentProcessor interface {
	Process(ctx context.Context, label string, lines []payment.CartLine) (int64, error)
}

// Publisher is the slice of the kafka producer the handler uses.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Handler struct {
	Repo      *Repo
	Processor PaymentProcessor
	Producer  Publisher
	Redis     *redis.Client
	Service   string
	Logger    *zap.Logger
}

func (h *Handler) Register(r *chi.Mux) {
	r.Post("/api/orders/pay", h.pay)
	r.Get("/api/orders/current", h.currentOrders)
	r.Get("/api/orders/{id}", h.getOrder)
}

// PayRequest mirrors what the register and kiosk terminals submit.
type PayRequest struct {
	Items        []payment.CartLine `json:"items"`
	EmployeeName string             `json:"employeeName"`
}

type PayResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID, err := h.Processor.Process(ctx, req.EmployeeName, req.Items)
	if err != nil {
		h.Logger.Error("payment failed", zap.String("label", req.EmployeeName), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Payment processing failed")
		return
	}

	h.publishPlaced(orderID, req, r.Header.Get("X-Request-Id"))

	httpx.WriteJSON(w, http.StatusOK, PayResponse{
		Message: "Payment processed successfully",
		OrderID: orderID,
	})
}

// publishPlaced announces the committed order for the kitchen display. The
// payment is already durable at this point; a publish failure only delays
// the kitchen feed, it never fails the payment.
func (h *Handler) publishPlaced(orderID int64, req PayRequest, traceID string) {
	if h.Producer == nil {
		return
	}
	lines := make([]PlacedLine, 0, len(req.Items))
	var total float64
	for _, it := range req.Items {
		p := it.Price.Value()
		lines = append(lines, PlacedLine{Product: it.Name, Quantity: it.Quantity, Price: p})
		total += p * float64(it.Quantity)
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: strconv.FormatInt(orderID, 10),
		Payload: kafkax.MustMarshal(OrderPlacedPayload{
			OrderID: orderID,
			Label:   req.EmployeeName,
			Total:   total,
			Lines:   lines,
		}),
	}
	h.Producer.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *Handler) currentOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	out, err := h.Repo.CurrentKioskOrders(ctx)
	if err != nil {
		h.Logger.Error("fetch current orders", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if out == nil {
		out = []Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	// Orders are immutable once paid, so the cache never goes stale.
	key := fmt.Sprintf(redisx.KeyOrder, id)
	if h.Redis != nil {
		if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
			httpx.WriteJSON(w, http.StatusOK, json.RawMessage(s))
			return
		}
	}

	o, err := h.Repo.GetOrder(ctx, id)
	if errors.Is(err, ErrNotFound) {
		httpx.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		h.Logger.Error("fetch order", zap.Int64("order_id", id), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if h.Redis != nil {
		if b, err := json.Marshal(o); err == nil {
			_ = h.Redis.Set(ctx, key, b, redisx.TTLOrderCache).Err()
		}
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}
