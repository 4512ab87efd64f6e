package queries

import (
	"context"

	"kitchen/internal/core/application/kitchen"
	"kitchen/internal/core/domain/model/order"
)

// BoardSource renders the current display.
type BoardSource interface {
	Board() kitchen.Board
}

// GetBoardQueryHandler reads the board from a terminal. It never touches the
// store; the board reflects the local view including unconfirmed changes.
type GetBoardQueryHandler struct {
	source BoardSource
}

func NewGetBoardQueryHandler(source BoardSource) GetBoardQueryHandler {
	return GetBoardQueryHandler{source: source}
}

func (h GetBoardQueryHandler) Handle(_ context.Context, query GetBoardQuery) (kitchen.Board, error) {
	if err := query.Validate(); err != nil {
		return kitchen.Board{}, err
	}

	board := h.source.Board()
	if query.Status() == order.Unknown {
		return board, nil
	}

	kept := make([]kitchen.Bucket, 0, 1)
	for _, b := range board.Buckets {
		if b.Status == query.Status().String() {
			kept = append(kept, b)
		}
	}
	board.Buckets = kept
	return board, nil
}
