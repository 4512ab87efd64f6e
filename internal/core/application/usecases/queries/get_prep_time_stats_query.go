package queries

import (
	"errors"
	"time"

	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrGetPrepTimeStatsQueryIsNotConstructed = errors.New(
	"GetPrepTimeStatsQuery must be created via NewGetPrepTimeStatsQuery constructor",
)

// GetPrepTimeStatsQuery summarizes how long items took from preparing to
// ready, over items that became ready at or after Since. Station narrows the
// summary to one preparation area.
type GetPrepTimeStatsQuery struct {
	since   time.Time
	station string

	guard guard.ConstructorGuard
}

func NewGetPrepTimeStatsQuery(since time.Time, station string) (GetPrepTimeStatsQuery, error) {
	if since.IsZero() {
		return GetPrepTimeStatsQuery{}, errs.NewValueIsRequiredError("since")
	}
	return GetPrepTimeStatsQuery{since: since, station: station, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPrepTimeStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetPrepTimeStatsQueryIsNotConstructed)
}

func (q GetPrepTimeStatsQuery) Since() time.Time { return q.since }
func (q GetPrepTimeStatsQuery) Station() string  { return q.station }

// GetPrepTimeStatsQueryResponse is in seconds. All figures are zero when no
// item qualifies.
type GetPrepTimeStatsQueryResponse struct {
	Station        string    `json:"station,omitempty"`
	Since          time.Time `json:"since"`
	Count          int64     `json:"count"`
	AverageSeconds float64   `json:"averageSeconds"`
	MedianSeconds  float64   `json:"medianSeconds"`
	P90Seconds     float64   `json:"p90Seconds"`
}
