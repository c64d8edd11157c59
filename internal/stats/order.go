package stats

import (
	"sort"
	"strconv"

	"github.com/AdithyaP-AI72/Urban-Noise-Experience-Survey/internal/domain"
)

// Ordering policy for breakdowns. The store returns unordered buckets; these
// helpers apply the chart-facing order deterministically (ties broken by name
// so repeated requests render identically).

// byCountDesc orders most-common-first.
func byCountDesc(buckets []domain.Bucket) []domain.Bucket {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// byNameAsc orders by label, not by count. Used for age groups, where the
// labels themselves carry the order.
func byNameAsc(buckets []domain.Bucket) []domain.Bucket {
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// byRank orders by a fixed ordinal table, never by count. Unrecognized labels
// rank last.
func byRank(buckets []domain.Bucket, rank func(string) int) []domain.Bucket {
	sort.Slice(buckets, func(i, j int) bool {
		ri, rj := rank(buckets[i].Name), rank(buckets[j].Name)
		if ri != rj {
			return ri < rj
		}
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// byValueAsc orders numeric buckets by value and renders each value as its
// decimal label.
func byValueAsc(buckets []domain.ValueBucket) []domain.Bucket {
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Value < buckets[j].Value
	})
	out := make([]domain.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.Bucket{Name: strconv.Itoa(b.Value), Count: b.Count})
	}
	return out
}

// byLevelAsc orders bother-level groups by their carried decibel level; the
// level is the sort key only and is dropped from the output.
func byLevelAsc(buckets []domain.LevelBucket) []domain.Bucket {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Level != buckets[j].Level {
			return buckets[i].Level < buckets[j].Level
		}
		return buckets[i].Label < buckets[j].Label
	})
	out := make([]domain.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.Bucket{Name: b.Label, Count: b.Count})
	}
	return out
}
