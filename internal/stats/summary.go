package stats

import (
	"sort"

	"github.com/loglens/loglens/internal/model"
)

// PathCount is one ranked path entry in a summary.
type PathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// Summary is the derived, read-only view of one accumulator. Field names
// match the persisted report schema consumed by downstream tooling.
type Summary struct {
	TotalRequests      int64            `json:"total_requests"`
	TotalBytes         int64            `json:"total_bytes"`
	ErrorRate          float64          `json:"error_rate"`
	StatusBreakdown    map[int]int64    `json:"status_breakdown"`
	MethodBreakdown    map[string]int64 `json:"method_breakdown"`
	RegionDistribution map[string]int64 `json:"region_distribution"`
	HourHistogram      map[int]int64    `json:"hour_histogram"`
	PeakHour           *int             `json:"peak_hour"` // null when the histogram is empty
	TopPaths           []PathCount      `json:"top_paths"`
}

// Summarize derives a Summary from the accumulator. It never mutates the
// accumulator: counter maps are copied, so repeated calls yield identical
// results. topK <= 0 selects the default of 5.
func (a *Accumulator) Summarize(topK int) *Summary {
	if topK <= 0 {
		topK = model.DefaultTopPaths
	}

	errorRate := 0.0
	if a.Requests > 0 {
		errorRate = float64(a.Errors) / float64(a.Requests)
	}

	return &Summary{
		TotalRequests:      a.Requests,
		TotalBytes:         a.Bytes,
		ErrorRate:          errorRate,
		StatusBreakdown:    cloneCounts(a.Status),
		MethodBreakdown:    cloneCounts(a.Methods),
		RegionDistribution: cloneCounts(a.Regions),
		HourHistogram:      cloneCounts(a.Hours),
		PeakHour:           a.peakHour(),
		TopPaths:           a.topPaths(topK),
	}
}

// peakHour returns the hour with the highest count, preferring the
// smallest hour on ties, or nil when no hours were recorded.
func (a *Accumulator) peakHour() *int {
	var peak *int
	var best int64
	for h := 0; h < 24; h++ {
		c, ok := a.Hours[h]
		if !ok {
			continue
		}
		if peak == nil || c > best {
			hour := h
			peak = &hour
			best = c
		}
	}
	return peak
}

// topPaths ranks paths by descending count, breaking ties by
// first-encounter order. The result is always non-nil so an empty
// accumulator serializes as an empty list.
func (a *Accumulator) topPaths(topK int) []PathCount {
	ranked := make([]PathCount, 0, len(a.pathOrder))
	for _, p := range a.pathOrder {
		ranked = append(ranked, PathCount{Path: p, Count: a.Paths[p]})
	}
	// Stable sort over encounter-ordered input keeps ties in encounter order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}
