package loggen

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// timeLayout matches the fixed timestamp grammar of the analyzer.
const timeLayout = "02/Jan/2006:15:04:05 -0700"

// Generator writes synthetic access logs that conform to the analyzer's
// line grammar. It is deterministic for a given seed.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator. A zero seed picks one from the clock.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Line synthesizes one access log line (newline-terminated) for the
// profile, with the timestamp placed inside [base, base+spanHours).
func (g *Generator) Line(p Profile, base time.Time, spanHours int) string {
	hour := g.pickHour(p.PeakHours, spanHours)
	ts := time.Date(base.Year(), base.Month(), base.Day(),
		hour%24, g.rng.Intn(60), g.rng.Intn(60), 0, base.Location())

	addr := g.addrFromRegions(p.RegionWeights)
	method := g.weightedString(p.Methods)
	path := g.weightedString(p.Paths)
	status := g.weightedStatus(p.Statuses)
	size := g.sizeForStatus(status)

	return fmt.Sprintf("%s - - [%s] \"%s %s HTTP/1.1\" %d %d\n",
		addr, ts.Format(timeLayout), method, path, status, size)
}

// WriteLog writes one server's log file into dir, named <profile>.log.
// The row count is baseRows scaled by the profile's multiplier. It
// returns the file path and the number of lines written.
func (g *Generator) WriteLog(p Profile, dir string, baseRows, spanHours int) (string, int, error) {
	if err := p.Validate(); err != nil {
		return "", 0, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("loggen: mkdir %s: %w", dir, err)
	}

	multiplier := p.RowsMultiplier
	if multiplier <= 0 {
		multiplier = 1.0
	}
	rows := int(float64(baseRows) * multiplier)

	path := filepath.Join(dir, p.Name+".log")
	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("loggen: create %s: %w", path, err)
	}
	defer f.Close()

	base := time.Now().UTC().Truncate(time.Second)
	w := bufio.NewWriter(f)
	for i := 0; i < rows; i++ {
		if _, err := w.WriteString(g.Line(p, base, spanHours)); err != nil {
			return "", 0, fmt.Errorf("loggen: write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", 0, fmt.Errorf("loggen: flush %s: %w", path, err)
	}
	return path, rows, nil
}

// pickHour biases 70% of traffic into the profile's peak hours.
func (g *Generator) pickHour(peakHours []int, spanHours int) int {
	if spanHours <= 0 {
		spanHours = 24
	}
	if len(peakHours) > 0 && g.rng.Float64() < 0.70 {
		return peakHours[g.rng.Intn(len(peakHours))]
	}
	limit := spanHours
	if limit > 24 {
		limit = 24
	}
	return g.rng.Intn(limit)
}

// addrFromRegions picks a first-octet range by weight, then fills the
// remaining octets uniformly.
func (g *Generator) addrFromRegions(ranges []OctetRange) string {
	idx := g.weightedIndex(len(ranges), func(i int) float64 { return ranges[i].Weight })
	r := ranges[idx]
	first := r.Low + g.rng.Intn(r.High-r.Low+1)
	return fmt.Sprintf("%d.%d.%d.%d", first, g.rng.Intn(256), g.rng.Intn(256), g.rng.Intn(256))
}

func (g *Generator) weightedString(choices []Choice) string {
	idx := g.weightedIndex(len(choices), func(i int) float64 { return choices[i].Weight })
	return choices[idx].Value
}

func (g *Generator) weightedStatus(choices []StatusChoice) int {
	idx := g.weightedIndex(len(choices), func(i int) float64 { return choices[i].Weight })
	return choices[idx].Status
}

// weightedIndex walks the cumulative weights; a roll past the total
// (weights not summing to 1) falls through to the last option.
func (g *Generator) weightedIndex(n int, weight func(int) float64) int {
	roll := g.rng.Float64()
	cumulative := 0.0
	for i := 0; i < n; i++ {
		cumulative += weight(i)
		if roll <= cumulative {
			return i
		}
	}
	return n - 1
}

// sizeForStatus yields plausible response sizes: server errors short,
// client errors mid-sized, redirects tiny, success pages largest.
func (g *Generator) sizeForStatus(status int) int {
	switch {
	case status >= 500:
		return 200 + g.rng.Intn(1001)
	case status >= 400:
		return 400 + g.rng.Intn(1601)
	case status == 302:
		return 100 + g.rng.Intn(301)
	default:
		return 800 + g.rng.Intn(7201)
	}
}
