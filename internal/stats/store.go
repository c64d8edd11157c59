// Package stats computes the dashboard breakdowns: the named, ordered
// count-by-category aggregations behind each chart, plus the headline totals.
package stats

import (
	"context"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
)

// Store is the set of aggregation primitives the engine needs from the
// submission store. Every method applies the shared predicate before
// grouping; ordering of returned buckets is unspecified. Ordering policy
// lives in the engine.
type Store interface {
	// Ping verifies store connectivity.
	Ping(ctx context.Context) error

	// CountSubmissions counts records matching the predicate.
	CountSubmissions(ctx context.Context, f domain.Filter) (int64, error)

	// AverageHeadphoneFreq returns the mean headphone-use rating; ok is false
	// when no records matched.
	AverageHeadphoneFreq(ctx context.Context, f domain.Filter) (avg float64, ok bool, err error)

	// FieldCounts counts records per distinct value of a single-select field,
	// excluding null and empty values.
	FieldCounts(ctx context.Context, f domain.Filter, field string) ([]domain.Bucket, error)

	// ArrayFieldCounts fans out a multi-select array field so each selected
	// item contributes one count. Records with missing or empty arrays
	// contribute nothing.
	ArrayFieldCounts(ctx context.Context, f domain.Filter, field string) ([]domain.Bucket, error)

	// HeadphoneFreqCounts counts records per numeric headphone-use rating.
	HeadphoneFreqCounts(ctx context.Context, f domain.Filter) ([]domain.ValueBucket, error)

	// BotherLevelCounts counts records per bother label, carrying the first
	// observed decibel level of each group as its sort key.
	BotherLevelCounts(ctx context.Context, f domain.Filter) ([]domain.LevelBucket, error)

	// TopFeatureCounts counts records per first-ranked feature.
	TopFeatureCounts(ctx context.Context, f domain.Filter) ([]domain.Bucket, error)
}
