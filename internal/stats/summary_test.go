package stats

import (
	"reflect"
	"testing"
)

func TestSummarize_Empty(t *testing.T) {
	s := NewAccumulator().Summarize(0)

	if s.TotalRequests != 0 || s.TotalBytes != 0 {
		t.Errorf("totals = %d/%d, want 0/0", s.TotalRequests, s.TotalBytes)
	}
	if s.ErrorRate != 0 {
		t.Errorf("ErrorRate = %v, want 0 for zero requests", s.ErrorRate)
	}
	if s.PeakHour != nil {
		t.Errorf("PeakHour = %v, want nil for empty histogram", *s.PeakHour)
	}
	if s.TopPaths == nil || len(s.TopPaths) != 0 {
		t.Errorf("TopPaths = %#v, want empty non-nil slice", s.TopPaths)
	}
	if s.StatusBreakdown == nil || s.HourHistogram == nil {
		t.Error("breakdown maps must be non-nil so they serialize as {}")
	}
}

func TestSummarize_ErrorRateBounds(t *testing.T) {
	a := fill(
		rec("10.0.0.1", 9, "GET", "/a", 200, 10),
		rec("10.0.0.2", 9, "GET", "/a", 500, 10),
		rec("10.0.0.3", 9, "GET", "/a", 404, 10),
		rec("10.0.0.4", 9, "GET", "/a", 200, 10),
	)
	s := a.Summarize(0)

	if s.ErrorRate < 0 || s.ErrorRate > 1 {
		t.Errorf("ErrorRate = %v, want within [0,1]", s.ErrorRate)
	}
	if s.ErrorRate != 0.5 {
		t.Errorf("ErrorRate = %v, want 0.5", s.ErrorRate)
	}
}

func TestSummarize_PeakHour(t *testing.T) {
	a := fill(
		rec("10.0.0.1", 9, "GET", "/a", 200, 10),
		rec("10.0.0.2", 14, "GET", "/a", 200, 10),
		rec("10.0.0.3", 14, "GET", "/a", 200, 10),
	)
	s := a.Summarize(0)
	if s.PeakHour == nil || *s.PeakHour != 14 {
		t.Fatalf("PeakHour = %v, want 14", s.PeakHour)
	}
}

func TestSummarize_PeakHourTieBreaksToSmallestHour(t *testing.T) {
	a := fill(
		rec("10.0.0.1", 17, "GET", "/a", 200, 10),
		rec("10.0.0.2", 5, "GET", "/a", 200, 10),
		rec("10.0.0.3", 11, "GET", "/a", 200, 10),
	)
	s := a.Summarize(0)
	if s.PeakHour == nil || *s.PeakHour != 5 {
		t.Fatalf("PeakHour = %v, want 5 on a three-way tie", s.PeakHour)
	}
}

func TestSummarize_TopPathsDefaultK(t *testing.T) {
	a := NewAccumulator()
	paths := []string{"/p1", "/p2", "/p3", "/p4", "/p5", "/p6", "/p7"}
	for i, p := range paths {
		// Give each path a distinct count: /p1 gets 7 hits, /p7 gets 1.
		for n := 0; n < len(paths)-i; n++ {
			a.Update(rec("10.0.0.1", 9, "GET", p, 200, 10))
		}
	}

	s := a.Summarize(0)
	if len(s.TopPaths) != 5 {
		t.Fatalf("len(TopPaths) = %d, want default 5", len(s.TopPaths))
	}
	if s.TopPaths[0].Path != "/p1" || s.TopPaths[0].Count != 7 {
		t.Errorf("TopPaths[0] = %+v, want /p1 with 7", s.TopPaths[0])
	}
	if s.TopPaths[4].Path != "/p5" {
		t.Errorf("TopPaths[4] = %+v, want /p5", s.TopPaths[4])
	}
}

func TestSummarize_TopPathsTieBreaksByFirstEncounter(t *testing.T) {
	a := fill(
		rec("10.0.0.1", 9, "GET", "/zeta", 200, 10),
		rec("10.0.0.2", 9, "GET", "/alpha", 200, 10),
		rec("10.0.0.3", 9, "GET", "/mid", 200, 10),
		rec("10.0.0.4", 9, "GET", "/mid", 200, 10),
	)

	s := a.Summarize(3)
	want := []PathCount{
		{Path: "/mid", Count: 2},
		{Path: "/zeta", Count: 1}, // encountered before /alpha, not lexicographic
		{Path: "/alpha", Count: 1},
	}
	if !reflect.DeepEqual(s.TopPaths, want) {
		t.Errorf("TopPaths = %+v, want %+v", s.TopPaths, want)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	a, b, _ := threeAccumulators()
	a.Merge(b)

	first := a.Summarize(0)
	second := a.Summarize(0)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Summarize differs:\n%+v\n%+v", first, second)
	}
}

func TestSummarize_DoesNotMutateAccumulator(t *testing.T) {
	a, _, _ := threeAccumulators()
	before := fill() // snapshot via counts comparison
	before.Merge(a)

	s := a.Summarize(0)
	// Writing into the summary's maps must not leak into the accumulator.
	s.StatusBreakdown[200] = 999
	s.HourHistogram[9] = 999
	s.TopPaths[0].Count = 999

	if !countsEqual(a, before) {
		t.Error("Summarize or summary mutation changed the accumulator")
	}

	fresh := a.Summarize(0)
	if fresh.StatusBreakdown[200] == 999 {
		t.Error("summary maps alias accumulator state")
	}
}
