package stats

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/logger"
	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/metrics"
)

// ErrStoreUnavailable is returned when the store cannot be reached at all; no
// partial payload is meaningful without connectivity.
var ErrStoreUnavailable = errors.New("submission store unreachable")

// Engine computes the dashboard payload. Each breakdown runs as its own store
// query; breakdowns fan out concurrently and fail independently, so one slow
// or broken chart never takes down the rest of the dashboard.
type Engine struct {
	store Store
	log   logger.Logger
	met   *metrics.Metrics
}

// NewEngine creates an Engine with the given dependencies.
func NewEngine(store Store, log logger.Logger, met *metrics.Metrics) *Engine {
	return &Engine{store: store, log: log, met: met}
}

// breakdown is one named aggregation feeding one chart. dest points at the
// payload slot the result lands in; slots are disjoint so tasks need no
// coordination beyond the WaitGroup.
type breakdown struct {
	name    string
	dest    *[]domain.Bucket
	compute func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error)
}

// BuildDashboardPayload runs every breakdown plus the total count and average
// concurrently against the store and assembles the response. A failing
// breakdown degrades to an empty array; a failing total count degrades to 0.
// The only error returned is ErrStoreUnavailable, when the store cannot be
// reached before any query runs.
func (e *Engine) BuildDashboardPayload(ctx context.Context, includeDuplicates bool) (*DashboardPayload, error) {
	if err := e.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	f := domain.NewFilter(includeDuplicates)
	payload := &DashboardPayload{}

	var wg sync.WaitGroup
	run := func(task func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task()
		}()
	}

	run(func() { payload.TotalSubmissions = e.totalCount(ctx, f) })
	run(func() { payload.AverageHeadphoneFreq = e.averageHeadphoneFreq(ctx, f) })

	for _, b := range e.breakdowns(payload) {
		b := b
		run(func() { *b.dest = e.computeBreakdown(ctx, f, b) })
	}

	wg.Wait()

	payload.TopOccupation = noData
	if len(payload.OccupationData) > 0 {
		payload.TopOccupation = payload.OccupationData[0].Name
	}

	return payload, nil
}

// breakdowns defines every chart aggregation and its ordering policy.
func (e *Engine) breakdowns(p *DashboardPayload) []breakdown {
	countDesc := func(field string) func(context.Context, domain.Filter) ([]domain.Bucket, error) {
		return func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
			buckets, err := e.store.FieldCounts(ctx, f, field)
			if err != nil {
				return nil, err
			}
			return byCountDesc(buckets), nil
		}
	}

	unwindCountDesc := func(field string) func(context.Context, domain.Filter) ([]domain.Bucket, error) {
		return func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
			buckets, err := e.store.ArrayFieldCounts(ctx, f, field)
			if err != nil {
				return nil, err
			}
			return byCountDesc(buckets), nil
		}
	}

	ordinal := func(field string, rank func(string) int) func(context.Context, domain.Filter) ([]domain.Bucket, error) {
		return func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
			buckets, err := e.store.FieldCounts(ctx, f, field)
			if err != nil {
				return nil, err
			}
			return byRank(buckets, rank), nil
		}
	}

	return []breakdown{
		{"occupation", &p.OccupationData, countDesc("occupation")},
		{"age_group", &p.AgeGroupData, func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
			buckets, err := e.store.FieldCounts(ctx, f, "ageGroup")
			if err != nil {
				return nil, err
			}
			return byNameAsc(buckets), nil
		}},
		{"noise_locations", &p.NoiseLocationData, unwindCountDesc("noiseSourceLocations")},
		{"common_sounds", &p.CommonSoundsData, unwindCountDesc("commonNoiseSources")},
		{"noise_exposure_freq", &p.NoiseExposureFreqData, ordinal("noiseExposureFreq", domain.NoiseExposureRank)},
		{"focus_disturbance", &p.FocusData, ordinal("focusDisturbance", domain.FocusDisturbanceRank)},
		{"headphone_freq_distribution", &p.HeadphoneFreqDistribution, func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
			buckets, err := e.store.HeadphoneFreqCounts(ctx, f)
			if err != nil {
				return nil, err
			}
			return byValueAsc(buckets), nil
		}},
		{"bother_level", &p.BotherLevelData, func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
			buckets, err := e.store.BotherLevelCounts(ctx, f)
			if err != nil {
				return nil, err
			}
			return byLevelAsc(buckets), nil
		}},
		{"community_seriousness", &p.SeriousnessData, countDesc("communitySeriousness")},
		{"map_interest", &p.MapInterestData, countDesc("mapInterest")},
		{"citizen_scientist", &p.CitizenScientistData, countDesc("citizenScientist")},
		{"top_feature", &p.TopFeatureData, countDesc0(e.store.TopFeatureCounts)},
	}
}

// computeBreakdown runs one breakdown and applies the degrade-on-failure
// policy: the failure is logged with the breakdown's name and counted, and
// the chart renders empty.
func (e *Engine) computeBreakdown(ctx context.Context, f domain.Filter, b breakdown) []domain.Bucket {
	buckets, err := b.compute(ctx, f)
	if err != nil {
		e.log.Error("Breakdown query failed, degrading to empty",
			logger.String("breakdown", b.name),
			logger.Error(err),
		)
		e.met.BreakdownFailures.WithLabelValues(b.name).Inc()
		return []domain.Bucket{}
	}
	if buckets == nil {
		buckets = []domain.Bucket{}
	}
	return buckets
}

// totalCount runs the dedicated total-count query. Unlike breakdowns this
// feeds a headline statistic, so its failure is logged and counted
// distinctly; the value degrades to 0 rather than borrowing the summary
// list's length.
func (e *Engine) totalCount(ctx context.Context, f domain.Filter) int64 {
	n, err := e.store.CountSubmissions(ctx, f)
	if err != nil {
		e.log.Error("Total count query failed, reporting 0", logger.Error(err))
		e.met.TotalCountFailures.Inc()
		return 0
	}
	return n
}

// averageHeadphoneFreq formats the mean headphone-use rating to one decimal,
// or noData when there are no matching records or the query fails.
func (e *Engine) averageHeadphoneFreq(ctx context.Context, f domain.Filter) string {
	avg, ok, err := e.store.AverageHeadphoneFreq(ctx, f)
	if err != nil {
		e.log.Error("Breakdown query failed, degrading to empty",
			logger.String("breakdown", "avg_headphone_freq"),
			logger.Error(err),
		)
		e.met.BreakdownFailures.WithLabelValues("avg_headphone_freq").Inc()
		return noData
	}
	if !ok {
		return noData
	}
	return strconv.FormatFloat(avg, 'f', 1, 64)
}

// countDesc0 adapts a store method that already selects its own field.
func countDesc0(
	query func(context.Context, domain.Filter) ([]domain.Bucket, error),
) func(context.Context, domain.Filter) ([]domain.Bucket, error) {
	return func(ctx context.Context, f domain.Filter) ([]domain.Bucket, error) {
		buckets, err := query(ctx, f)
		if err != nil {
			return nil, err
		}
		return byCountDesc(buckets), nil
	}
}
