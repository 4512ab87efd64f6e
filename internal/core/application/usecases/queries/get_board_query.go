// Package queries contains read operations. The board is read from the
// terminal's local view; statistics are read from the store.
package queries

import (
	"errors"
	"fmt"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrGetBoardQueryIsNotConstructed = errors.New(
	"GetBoardQuery must be created via NewGetBoardQuery constructor",
)

// GetBoardQuery reads the terminal display. Status, when set, keeps only the
// bucket of that status.
//
// Example:
//
//	query, err := NewGetBoardQuery("ready")
//	if err != nil {
//	    return err
//	}
//	board, err := handler.Handle(ctx, query)
type GetBoardQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetBoardQuery builds the query. An empty status reads every bucket; any
// other value must name an active status.
func NewGetBoardQuery(status string) (GetBoardQuery, error) {
	q := GetBoardQuery{guard: guard.NewConstructorGuard()}
	if status == "" {
		return q, nil
	}

	s, err := order.ParseStatus(status)
	if err != nil {
		return GetBoardQuery{}, err
	}
	if !s.IsActive() {
		return GetBoardQuery{}, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is not shown on the board", s))
	}
	q.status = s
	return q, nil
}

func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

// Status returns the bucket filter, order.Unknown for all buckets.
func (q GetBoardQuery) Status() order.Status {
	return q.status
}
