// Package analyze coordinates the parse -> accumulate -> merge ->
// summarize pipeline: one worker goroutine per log source, a one-shot
// fan-in handoff to the coordinator, an order-independent reduction, and
// ranking across the per-source summaries.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/loglens/loglens/internal/logparse"
	"github.com/loglens/loglens/internal/logsource"
	"github.com/loglens/loglens/internal/report"
	"github.com/loglens/loglens/internal/stats"
)

// ErrNoSources is returned when a run is started with nothing assigned.
var ErrNoSources = errors.New("analyze: no log sources assigned")

// Config describes one analysis run.
type Config struct {
	// Sources are the log file paths, in assignment order. Each source is
	// processed by exactly one worker.
	Sources []string

	// Units is the total number of cooperating units: one coordinator
	// plus one worker per source. Zero means derive it from Sources; any
	// other value must equal len(Sources)+1 or the run fails before any
	// file is opened.
	Units int

	// TopK bounds the top_paths list in every summary; <= 0 uses the
	// default of 5.
	TopK int
}

func (c Config) validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}
	expected := len(c.Sources) + 1
	if c.Units != 0 && c.Units != expected {
		return fmt.Errorf("analyze: expected %d units (1 coordinator + %d workers, one per source), got %d",
			expected, len(c.Sources), c.Units)
	}
	return nil
}

// contribution is one worker's completed accumulator, delivered to the
// coordinator in a single handoff.
type contribution struct {
	index int
	acc   *stats.Accumulator
}

// Run validates the assignment, fans out one worker per source, blocks
// until every worker has handed off its accumulator, reduces the partial
// results into a global accumulator, and assembles the report. Any worker
// failure aborts the whole run; no partial report is ever produced.
func Run(ctx context.Context, cfg Config) (*report.Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g, ctx := errgroup.WithContext(ctx)

	// The handoff channel is unbuffered: each worker performs exactly one
	// synchronous send, and the coordinator blocks until all have arrived.
	handoff := make(chan contribution)

	log.Printf("analyze: starting %d workers (%d units total)", len(cfg.Sources), len(cfg.Sources)+1)
	for i, path := range cfg.Sources {
		i, path := i, path
		g.Go(func() error {
			acc, err := analyzeSource(ctx, path)
			if err != nil {
				return err
			}
			select {
			case handoff <- contribution{index: i, acc: acc}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	partials := make([]*stats.Accumulator, len(cfg.Sources))
	for received := 0; received < len(cfg.Sources); {
		select {
		case c := <-handoff:
			partials[c.index] = c.acc
			received++
		case <-ctx.Done():
			if err := g.Wait(); err != nil {
				return nil, err
			}
			return nil, ctx.Err()
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("analyze: all %d workers contributed, reducing", len(cfg.Sources))
	return assemble(cfg, partials), nil
}

// RunSerial analyzes every source on the calling goroutine, one at a
// time. It produces the same report as Run because the reduction is
// order-independent; it exists as a comparison and debugging path.
func RunSerial(ctx context.Context, cfg Config) (*report.Report, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	partials := make([]*stats.Accumulator, len(cfg.Sources))
	for i, path := range cfg.Sources {
		acc, err := analyzeSource(ctx, path)
		if err != nil {
			return nil, err
		}
		partials[i] = acc
	}
	return assemble(cfg, partials), nil
}

// analyzeSource runs the worker side: parse and accumulate every line of
// one source. Malformed lines are skipped; a missing or unreadable file
// is fatal for the run.
func analyzeSource(ctx context.Context, path string) (*stats.Accumulator, error) {
	acc := stats.NewAccumulator()
	src := logsource.NewFile(path)

	err := src.EachLine(ctx, func(line string) {
		rec, ok := logparse.ParseAccessLine(line)
		if !ok {
			return
		}
		acc.Update(rec)
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// assemble reduces the partial accumulators in assignment order and
// derives per-source summaries, the global summary, and the rankings.
// Source files are never re-read here.
func assemble(cfg Config, partials []*stats.Accumulator) *report.Report {
	global := stats.NewAccumulator()
	for _, p := range partials {
		global.Merge(p)
	}

	names := make([]string, len(cfg.Sources))
	servers := make(map[string]*stats.Summary, len(partials))
	for i, path := range cfg.Sources {
		names[i] = logsource.SourceName(path)
		servers[names[i]] = partials[i].Summarize(cfg.TopK)
	}

	return &report.Report{
		Servers:  servers,
		Global:   global.Summarize(cfg.TopK),
		Rankings: report.DeriveRankings(names, servers),
	}
}
