package actions

import (
	"sort"

	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/query"
	"github.com/dotcommander/shelf/internal/reporter"
)

// Top-K bounds for the rating chart.
const (
	MinTopK     = 5
	MaxTopK     = 20
	DefaultTopK = 10
)

// Rank builds the operation fetching every record of kind for the rating chart.
func Rank(routes reporter.Routes, kind models.ResourceKind, topK int) (reporter.Operation, error) {
	if err := checkKind(kind); err != nil {
		return reporter.Operation{}, err
	}
	if topK < MinTopK || topK > MaxTopK {
		return reporter.Operation{}, invalid("top", "must be between %d and %d", MinTopK, MaxTopK)
	}
	op, _, err := Search(routes, query.All(kind))
	if err != nil {
		return reporter.Operation{}, err
	}
	return op, nil
}

// TopRated sorts the payload's records by rating_value, highest first, and keeps
// the first topK. Ties keep backend order.
func TopRated(kind models.ResourceKind, payload any, topK int) []models.Record {
	records := models.RecordsFromPayload(kind, payload)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Rating() > records[j].Rating()
	})
	if topK >= 0 && len(records) > topK {
		records = records[:topK]
	}
	return records
}
