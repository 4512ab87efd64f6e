package kitchen

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"
)

// Board is a read model of the whole display.
type Board struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Buckets     []Bucket    `json:"buckets"`
	Preferences Preferences `json:"preferences"`
	LastSync    SyncStatus  `json:"lastSync"`
	Notice      *Notice     `json:"notice,omitempty"`
}

// Bucket groups the orders of one status in display order.
type Bucket struct {
	Status string `json:"status"`
	Orders []Card `json:"orders"`
}

// Card is one order on the display.
type Card struct {
	Position     int               `json:"position"`
	Key          string            `json:"key,omitempty"`
	ID           kernel.UUID       `json:"id"`
	Code         string            `json:"code"`
	CustomerName string            `json:"customerName,omitempty"`
	Table        string            `json:"table,omitempty"`
	Mode         string            `json:"mode"`
	Status       string            `json:"status"`
	Notes        string            `json:"notes,omitempty"`
	NewlyArrived bool              `json:"newlyArrived"`
	Elapsed      time.Duration     `json:"elapsed"`
	Timer        string            `json:"timer"`
	Severity     services.Severity `json:"severity"`
	Items        []ItemCard        `json:"items"`
}

// ItemCard is one item on a card. Per item timers are only filled in while
// the fine timer is on.
type ItemCard struct {
	ID           kernel.UUID        `json:"id"`
	Name         string             `json:"name"`
	Quantity     int                `json:"quantity"`
	Extras       []string           `json:"extras,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Status       string             `json:"status"`
	Station      string             `json:"station,omitempty"`
	Timer        string             `json:"timer,omitempty"`
	Severity     *services.Severity `json:"severity,omitempty"`
}

// Board renders the local view as of the last tick. The newly arrived flag
// is evaluated against the clock directly, so it clears on time without a
// tick.
func (c *Coordinator) Board() Board {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.tickAt
	board := Board{
		GeneratedAt: now,
		Preferences: c.prefs,
		LastSync:    c.lastSync,
	}
	if c.notice != nil {
		n := *c.notice
		board.Notice = &n
	}

	for _, status := range order.ActiveStatuses() {
		bucket := Bucket{Status: status.String(), Orders: []Card{}}
		for _, e := range c.entries {
			if e.order.Status() != status {
				continue
			}
			pos := len(bucket.Orders)
			bucket.Orders = append(bucket.Orders, c.card(e, pos, now))
		}
		board.Buckets = append(board.Buckets, bucket)
	}

	return board
}

// card must be called with c.mu held.
func (c *Coordinator) card(e *entry, pos int, now time.Time) Card {
	o := e.order
	elapsed := services.Elapsed(services.OrderReference(o), now)

	card := Card{
		Position:     pos + 1,
		Key:          c.keys.slotKey(o.Status(), pos),
		ID:           o.ID(),
		Code:         o.Code(),
		CustomerName: o.CustomerName(),
		Table:        o.Table(),
		Mode:         o.Mode().String(),
		Status:       o.Status().String(),
		Notes:        o.Notes(),
		NewlyArrived: c.highlighted(e),
		Elapsed:      elapsed,
		Timer:        c.formatTimer(elapsed),
		Severity:     services.OrderSeverity(o, now),
	}

	for _, it := range o.Items() {
		ic := ItemCard{
			ID:           it.ID(),
			Name:         it.Name(),
			Quantity:     it.Quantity(),
			Extras:       it.Extras(),
			Instructions: it.Instructions(),
			Status:       it.Status().String(),
			Station:      it.Station(),
		}
		if c.prefs.FineTimer {
			sev := services.ItemSeverity(o, it, now)
			ic.Severity = &sev
			ic.Timer = services.FormatElapsedFine(services.Elapsed(services.ItemReference(o, it), now))
		}
		card.Items = append(card.Items, ic)
	}

	return card
}

func (c *Coordinator) formatTimer(elapsed time.Duration) string {
	if c.prefs.FineTimer {
		return services.FormatElapsedFine(elapsed)
	}
	return services.FormatElapsed(elapsed)
}
