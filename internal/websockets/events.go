package websockets

import (
	"encoding/json"

	"github.com/syande/shoestore-service/internal/models"
)

// Publisher adapts the hub to the sale engine's event interface. Sale
// notifications fan out to everyone; low-stock alerts go to admin dashboards
// only.
type Publisher struct {
	hub *Hub
}

// NewPublisher creates a publisher backed by the given hub.
func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

// SaleCreated broadcasts a recorded sale to all connected clients.
func (p *Publisher) SaleCreated(sale *models.Sale) {
	data, err := json.Marshal(sale)
	if err != nil {
		return
	}

	message, err := json.Marshal(Message{Type: TypeSaleCreated, Data: data})
	if err != nil {
		return
	}

	p.hub.BroadcastMessage(message)
}

// LowStock notifies admin clients that a variant dropped to or below the
// low-stock threshold.
func (p *Publisher) LowStock(variantID int64, stock int) {
	data, err := json.Marshal(struct {
		VariantID int64 `json:"variant_id"`
		Stock     int   `json:"stock"`
	}{VariantID: variantID, Stock: stock})
	if err != nil {
		return
	}

	message, err := json.Marshal(Message{Type: TypeStockLow, Data: data})
	if err != nil {
		return
	}

	p.hub.BroadcastToType(ClientTypeAdmin, message)
}
