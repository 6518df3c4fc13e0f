package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/loglens/loglens/internal/stats"
)

func sampleReport() *Report {
	peak := 14
	name := "server1"
	return &Report{
		Servers: map[string]*stats.Summary{
			"server1": {
				TotalRequests:      2,
				TotalBytes:         300,
				ErrorRate:          0.5,
				StatusBreakdown:    map[int]int64{200: 1, 500: 1},
				MethodBreakdown:    map[string]int64{"GET": 2},
				RegionDistribution: map[string]int64{"Europe": 2},
				HourHistogram:      map[int]int64{14: 2},
				PeakHour:           &peak,
				TopPaths:           []stats.PathCount{{Path: "/a", Count: 2}},
			},
		},
		Global: &stats.Summary{
			TotalRequests:      2,
			TotalBytes:         300,
			ErrorRate:          0.5,
			StatusBreakdown:    map[int]int64{200: 1, 500: 1},
			MethodBreakdown:    map[string]int64{"GET": 2},
			RegionDistribution: map[string]int64{"Europe": 2},
			HourHistogram:      map[int]int64{14: 2},
			PeakHour:           &peak,
			TopPaths:           []stats.PathCount{{Path: "/a", Count: 2}},
		},
		Rankings: Rankings{BusiestServer: &name, HighestErrorServer: &name},
	}
}

func TestWriteAtomicRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "summary.json")

	if err := WriteAtomic(path, sampleReport()); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Servers["server1"].TotalRequests != 2 {
		t.Errorf("TotalRequests = %d, want 2", loaded.Servers["server1"].TotalRequests)
	}
	if loaded.Servers["server1"].HourHistogram[14] != 2 {
		t.Errorf("HourHistogram = %v", loaded.Servers["server1"].HourHistogram)
	}
	if loaded.Rankings.BusiestServer == nil || *loaded.Rankings.BusiestServer != "server1" {
		t.Errorf("BusiestServer = %v", loaded.Rankings.BusiestServer)
	}
}

func TestWriteAtomic_SchemaFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := WriteAtomic(path, sampleReport()); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)

	// Downstream consumers read these exact keys.
	for _, key := range []string{
		`"servers"`, `"global"`, `"rankings"`,
		`"busiest_server"`, `"highest_error_server"`,
		`"total_requests"`, `"total_bytes"`, `"error_rate"`,
		`"status_breakdown"`, `"method_breakdown"`, `"region_distribution"`,
		`"hour_histogram"`, `"peak_hour"`, `"top_paths"`,
	} {
		if !strings.Contains(text, key) {
			t.Errorf("report JSON is missing key %s", key)
		}
	}
	// Integer map keys serialize as strings.
	if !strings.Contains(text, `"200"`) || !strings.Contains(text, `"14"`) {
		t.Error("integer-keyed breakdowns should serialize with string keys")
	}
}

func TestWriteAtomic_NullFieldsWhenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	empty := &Report{
		Servers: map[string]*stats.Summary{},
		Global:  (&stats.Summary{StatusBreakdown: map[int]int64{}, MethodBreakdown: map[string]int64{}, RegionDistribution: map[string]int64{}, HourHistogram: map[int]int64{}, TopPaths: []stats.PathCount{}}),
	}
	if err := WriteAtomic(path, empty); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	var decoded map[string]json.RawMessage
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var global map[string]json.RawMessage
	if err := json.Unmarshal(decoded["global"], &global); err != nil {
		t.Fatalf("decode global: %v", err)
	}
	if string(global["peak_hour"]) != "null" {
		t.Errorf("peak_hour = %s, want null", global["peak_hour"])
	}
	if string(global["top_paths"]) != "[]" {
		t.Errorf("top_paths = %s, want []", global["top_paths"])
	}
	var rankings map[string]json.RawMessage
	if err := json.Unmarshal(decoded["rankings"], &rankings); err != nil {
		t.Fatalf("decode rankings: %v", err)
	}
	if string(rankings["busiest_server"]) != "null" {
		t.Errorf("busiest_server = %s, want null", rankings["busiest_server"])
	}
}

func TestWriteAtomic_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.json")
	if err := WriteAtomic(path, sampleReport()); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "summary.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only summary.json", names)
	}
}

func TestCacheReloadsOnMtimeChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	first := sampleReport()
	if err := WriteAtomic(path, first); err != nil {
		t.Fatalf("WriteAtomic: %v", err)
	}

	cache := NewCache(path)
	got, err := cache.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Global.TotalRequests != 2 {
		t.Fatalf("TotalRequests = %d, want 2", got.Global.TotalRequests)
	}

	second := sampleReport()
	second.Global.TotalRequests = 99
	if err := WriteAtomic(path, second); err != nil {
		t.Fatalf("WriteAtomic replacement: %v", err)
	}
	// Force the mtime forward in case the filesystem clock is coarse.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err = cache.Get()
	if err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if got.Global.TotalRequests != 99 {
		t.Errorf("TotalRequests = %d, want 99 after reload", got.Global.TotalRequests)
	}
}

func TestCache_MissingFile(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := cache.Get(); err == nil {
		t.Fatal("Get on a missing report returned nil error")
	}
}
