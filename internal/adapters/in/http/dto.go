package http

import "time"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderLine is one item of NewOrder.
type NewOrderLine struct {
	Name         string   `json:"name"`
	Quantity     int      `json:"quantity"`
	Extras       []string `json:"extras,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// NewOrder is the body of POST /api/v1/orders.
type NewOrder struct {
	Code         string         `json:"code"`
	Mode         string         `json:"mode"`
	CustomerName string         `json:"customerName,omitempty"`
	Table        string         `json:"table,omitempty"`
	SessionID    string         `json:"sessionId,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	Items        []NewOrderLine `json:"items"`
}

// Created is returned after an order is stored.
type Created struct {
	ID string `json:"id"`
}

// Transition is the body of the transition endpoints.
type Transition struct {
	Target  string `json:"target"`
	Station string `json:"station,omitempty"`
}

// Health reports the terminal's sync state.
type Health struct {
	Status   string     `json:"status"`
	LastSync *time.Time `json:"lastSync,omitempty"`
	Error    string     `json:"error,omitempty"`
}
