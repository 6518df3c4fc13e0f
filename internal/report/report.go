package report

import (
	"github.com/loglens/loglens/internal/stats"
)

// Rankings singles sources out by traffic volume and error rate.
// A nil entry serializes as JSON null when no source qualifies.
type Rankings struct {
	BusiestServer      *string `json:"busiest_server"`
	HighestErrorServer *string `json:"highest_error_server"`
}

// Report is the single persisted analysis artifact: one summary per
// source, one global summary over the union of all sources, and the
// cross-source rankings. A report is computed once and never mutated in
// place; an updated report is a freshly written replacement file.
type Report struct {
	Servers  map[string]*stats.Summary `json:"servers"`
	Global   *stats.Summary            `json:"global"`
	Rankings Rankings                  `json:"rankings"`
}

// DeriveRankings ranks per-source summaries. names carries the sources in
// assignment order so the result is deterministic: strict comparison
// keeps the earliest source on ties. Sources with zero requests are never
// ranked.
func DeriveRankings(names []string, servers map[string]*stats.Summary) Rankings {
	var rankings Rankings
	var bestRequests int64
	var bestErrorRate float64

	for _, name := range names {
		summary, ok := servers[name]
		if !ok || summary.TotalRequests == 0 {
			continue
		}

		if rankings.BusiestServer == nil || summary.TotalRequests > bestRequests {
			n := name
			rankings.BusiestServer = &n
			bestRequests = summary.TotalRequests
		}
		if rankings.HighestErrorServer == nil || summary.ErrorRate > bestErrorRate {
			n := name
			rankings.HighestErrorServer = &n
			bestErrorRate = summary.ErrorRate
		}
	}
	return rankings
}
