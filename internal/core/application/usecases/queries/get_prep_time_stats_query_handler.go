package queries

import (
	"context"

	"kitchen/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPrepTimeStatsQueryHandler computes preparation time percentiles in the
// database.
type GetPrepTimeStatsQueryHandler struct {
	db *gorm.DB
}

func NewGetPrepTimeStatsQueryHandler(db *gorm.DB) GetPrepTimeStatsQueryHandler {
	return GetPrepTimeStatsQueryHandler{db: db}
}

// Handle only counts items that have both timestamps. Served items count too
// since they passed through ready. Items finished by marking the whole order
// ready without ever being started carry ready_at = preparing_at; they were
// never timed and are left out.
func (h GetPrepTimeStatsQueryHandler) Handle(
	ctx context.Context,
	query GetPrepTimeStatsQuery,
) (GetPrepTimeStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPrepTimeStatsQueryResponse{}, err
	}

	resp := GetPrepTimeStatsQueryResponse{Station: query.Station(), Since: query.Since()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			count(*),
			COALESCE(avg(secs), 0),
			COALESCE(percentile_cont(0.5) WITHIN GROUP (ORDER BY secs), 0),
			COALESCE(percentile_cont(0.9) WITHIN GROUP (ORDER BY secs), 0)
		FROM (
			SELECT EXTRACT(EPOCH FROM (ready_at - preparing_at))::float8 AS secs
			FROM order_items
			WHERE status IN (?, ?)
				AND preparing_at IS NOT NULL
				AND ready_at IS NOT NULL
				AND ready_at > preparing_at
				AND ready_at >= ?
				AND (? = '' OR station = ?)
		) AS durations
	`,
		order.ItemReady.String(), order.ItemServed.String(),
		query.Since(),
		query.Station(), query.Station(),
	).Row()

	err := row.Scan(&resp.Count, &resp.AverageSeconds, &resp.MedianSeconds, &resp.P90Seconds)
	if err != nil {
		return GetPrepTimeStatsQueryResponse{}, err
	}

	return resp, nil
}
