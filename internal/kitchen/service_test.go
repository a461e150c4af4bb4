package kitchen

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cowboys44/panda-pos/internal/orders"
)

func TestTicketFromEnvelope(t *testing.T) {
	placed := orders.OrderPlacedPayload{
		OrderID: 123456,
		Label:   "Kiosk",
		Total:   9.80,
		Lines: []orders.PlacedLine{
			{Product: "M_orange_chicken", Quantity: 2, Price: 4.90},
		},
	}
	payload, err := json.Marshal(placed)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	env := orders.Envelope{
		EventType:  orders.EventOrderPlaced,
		OccurredAt: at,
		Payload:    payload,
	}

	ticket, err := ticketFromEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t, int64(123456), ticket.OrderID)
	assert.Equal(t, "Kiosk", ticket.Label)
	assert.Equal(t, at, ticket.PlacedAt)
	require.Len(t, ticket.Lines, 1)
	assert.Equal(t, "M_orange_chicken", ticket.Lines[0].Product)
}

func TestTicketFromEnvelopeBadPayload(t *testing.T) {
	_, err := ticketFromEnvelope(orders.Envelope{Payload: []byte(`"nope"`)})
	require.Error(t, err)
}
