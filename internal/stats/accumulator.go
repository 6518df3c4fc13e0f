package stats

import (
	"github.com/loglens/loglens/internal/logparse"
	"github.com/loglens/loglens/internal/model"
)

// Accumulator is the mutable per-source counter set. It is owned by a
// single worker goroutine until it is handed to the coordinator, after
// which it is treated as immutable input to Merge.
type Accumulator struct {
	Requests int64
	Bytes    int64
	Errors   int64 // records with status >= 400
	Status   map[int]int64
	Methods  map[string]int64
	Paths    map[string]int64
	Regions  map[string]int64
	Hours    map[int]int64 // hour-of-day 0-23 in the record's own offset

	// pathOrder tracks first-encounter order of paths. Top-path ties are
	// broken by this order rather than lexicographically.
	pathOrder []string
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		Status:  make(map[int]int64),
		Methods: make(map[string]int64),
		Paths:   make(map[string]int64),
		Regions: make(map[string]int64),
		Hours:   make(map[int]int64),
	}
}

// Update absorbs one parsed record. Input is assumed already validated by
// the parser; Update has no failure mode.
func (a *Accumulator) Update(rec *model.AccessRecord) {
	a.Requests++
	a.Bytes += rec.Size
	a.Status[rec.Status]++
	a.Methods[rec.Method]++

	if _, seen := a.Paths[rec.Path]; !seen {
		a.pathOrder = append(a.pathOrder, rec.Path)
	}
	a.Paths[rec.Path]++

	a.Regions[logparse.RegionForAddr(rec.Addr)]++
	a.Hours[rec.Timestamp.Hour()]++

	if rec.Status >= 400 {
		a.Errors++
	}
}

// Merge combines incoming into a and returns a. Integer totals add and
// each counter map is combined key-wise, so merging any number of
// accumulators yields identical counts regardless of order. Paths the
// target has not seen are appended to its encounter order in the incoming
// accumulator's own order.
func (a *Accumulator) Merge(incoming *Accumulator) *Accumulator {
	for _, p := range incoming.pathOrder {
		if _, seen := a.Paths[p]; !seen {
			a.pathOrder = append(a.pathOrder, p)
		}
	}

	a.Requests += incoming.Requests
	a.Bytes += incoming.Bytes
	a.Errors += incoming.Errors
	mergeCounts(a.Status, incoming.Status)
	mergeCounts(a.Methods, incoming.Methods)
	mergeCounts(a.Paths, incoming.Paths)
	mergeCounts(a.Regions, incoming.Regions)
	mergeCounts(a.Hours, incoming.Hours)
	return a
}

func mergeCounts[K comparable](dst, src map[K]int64) {
	for k, v := range src {
		dst[k] += v
	}
}

func cloneCounts[K comparable](src map[K]int64) map[K]int64 {
	dst := make(map[K]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
