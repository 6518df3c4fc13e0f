// Package httpserver exposes the analysis report over HTTP for browsing.
// It is a read-only consumer of the report artifact: the report file is
// polled by modification time and reloaded when the analyzer replaces it.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/loglens/loglens/internal/logparse"
	"github.com/loglens/loglens/internal/logsource"
	"github.com/loglens/loglens/internal/model"
	"github.com/loglens/loglens/internal/report"
)

// Server provides the dashboard HTTP API over one report file and,
// optionally, the directory of raw source logs.
type Server struct {
	addr    string
	reports *report.Cache
	logsDir string // empty disables raw log browsing

	server    *http.Server
	listener  net.Listener
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a dashboard server. logsDir may be empty to disable
// the /api/raw endpoint.
func NewServer(addr string, reports *report.Cache, logsDir string) *Server {
	if addr == "" {
		addr = "127.0.0.1:8000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		reports: reports,
		logsDir: logsDir,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s.routes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener
	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.GET("/api/health", s.handleHealth)
	r.GET("/api/summary", s.handleSummary)
	r.GET("/api/meta", s.handleMeta)
	r.GET("/api/servers", s.handleServers)
	r.GET("/api/server/:name", s.handleServer)
	r.GET("/api/top-paths", s.handleTopPaths)
	r.GET("/api/timeseries", s.handleTimeseries)
	r.GET("/api/raw", s.handleRaw)
}

// current loads the latest report, translating a read failure into a 404
// so the UI can say "run the analyzer first".
func (s *Server) current(c *gin.Context) (*report.Report, bool) {
	rep, err := s.reports.Get()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not available; run loglens first"})
		return nil, false
	}
	return rep, true
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

func (s *Server) handleHealth(c *gin.Context) {
	_, err := s.reports.Get()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptime":        time.Since(s.startTime).String(),
		"report_path":   s.reports.Path(),
		"report_loaded": err == nil,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	rep, ok := s.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleMeta(c *gin.Context) {
	rep, ok := s.current(c)
	if !ok {
		return
	}

	servers := make([]string, 0, len(rep.Servers))
	regionSet := make(map[string]struct{})
	for name, summary := range rep.Servers {
		servers = append(servers, name)
		for region := range summary.RegionDistribution {
			regionSet[region] = struct{}{}
		}
	}
	if rep.Global != nil {
		for region := range rep.Global.RegionDistribution {
			regionSet[region] = struct{}{}
		}
	}
	sort.Strings(servers)

	regions := make([]string, 0, len(regionSet))
	for region := range regionSet {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	c.JSON(http.StatusOK, gin.H{"servers": servers, "regions": regions})
}

func (s *Server) handleServers(c *gin.Context) {
	rep, ok := s.current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, rep.Servers)
}

func (s *Server) handleServer(c *gin.Context) {
	rep, ok := s.current(c)
	if !ok {
		return
	}
	name := c.Param("name")
	summary, found := rep.Servers[name]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "server " + name + " not found"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleTopPaths(c *gin.Context) {
	rep, ok := s.current(c)
	if !ok {
		return
	}

	topK := 10
	if raw := c.Query("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil || k <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		topK = k
	}

	if server := c.Query("server"); server != "" {
		summary, found := rep.Servers[server]
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "server " + server + " not found"})
			return
		}
		paths := summary.TopPaths
		if len(paths) > topK {
			paths = paths[:topK]
		}
		c.JSON(http.StatusOK, paths)
		return
	}

	// Merge the per-server top lists. This is a browsing convenience, not
	// a recomputation: only already-ranked paths participate.
	counts := make(map[string]int64)
	for _, summary := range rep.Servers {
		for _, entry := range summary.TopPaths {
			counts[entry.Path] += entry.Count
		}
	}
	merged := make([]pathCount, 0, len(counts))
	for path, count := range counts {
		merged = append(merged, pathCount{Path: path, Count: count})
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Count != merged[j].Count {
			return merged[i].Count > merged[j].Count
		}
		return merged[i].Path < merged[j].Path
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}
	c.JSON(http.StatusOK, merged)
}

type pathCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

func (s *Server) handleTimeseries(c *gin.Context) {
	rep, ok := s.current(c)
	if !ok {
		return
	}

	var selected map[string]struct{}
	if raw := c.Query("servers"); raw != "" {
		selected = make(map[string]struct{})
		for _, name := range strings.Split(raw, ",") {
			selected[name] = struct{}{}
		}
	}

	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}

	perServer := make(map[string][]int64)
	for name, summary := range rep.Servers {
		if selected != nil {
			if _, want := selected[name]; !want {
				continue
			}
		}
		perServer[name] = hourSeries(summary.HourHistogram)
	}

	var global []int64
	if rep.Global != nil {
		global = hourSeries(rep.Global.HourHistogram)
	}

	c.JSON(http.StatusOK, gin.H{
		"hours":      hours,
		"per_server": perServer,
		"global":     global,
	})
}

func hourSeries(hist map[int]int64) []int64 {
	series := make([]int64, 24)
	for h := 0; h < 24; h++ {
		series[h] = hist[h]
	}
	return series
}

// rawEntry is one row of the ad-hoc raw log browser.
type rawEntry struct {
	IP     string `json:"ip"`
	Time   string `json:"time"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Status int    `json:"status"`
	Bytes  int64  `json:"bytes"`
	Region string `json:"region"`
}

// handleRaw re-parses one raw source log with the same parser and
// classifier the analyzer uses, applying optional filters. It reads the
// file on every request and never writes anything.
func (s *Server) handleRaw(c *gin.Context) {
	if s.logsDir == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "raw log browsing disabled; provide a logs dir"})
		return
	}

	server := c.Query("server")
	if server == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "server query param required"})
		return
	}
	if server != filepath.Base(server) || strings.Contains(server, "..") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid server name"})
		return
	}

	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}
		offset = n
	}
	limit := model.DefaultRawLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > model.MaxRawLimit {
		limit = model.MaxRawLimit
	}

	statusClass := c.Query("status_class")
	methodFilter := c.Query("method")
	regionFilter := c.Query("region")
	pathSub := c.Query("path_sub")

	src := logsource.NewFile(filepath.Join(s.logsDir, server+".log"))
	results := make([]rawEntry, 0, limit)
	skipped := 0

	err := src.EachLine(c.Request.Context(), func(line string) {
		if len(results) >= limit {
			return
		}
		rec, ok := logparse.ParseAccessLine(line)
		if !ok {
			return
		}
		region := logparse.RegionForAddr(rec.Addr)

		if statusClass != "" && !strings.HasPrefix(strconv.Itoa(rec.Status), statusClass) {
			return
		}
		if methodFilter != "" && rec.Method != methodFilter {
			return
		}
		if regionFilter != "" && region != regionFilter {
			return
		}
		if pathSub != "" && !strings.Contains(rec.Path, pathSub) {
			return
		}
		if skipped < offset {
			skipped++
			return
		}

		results = append(results, rawEntry{
			IP:     rec.Addr,
			Time:   rec.Timestamp.Format(time.RFC3339),
			Method: rec.Method,
			Path:   rec.Path,
			Status: rec.Status,
			Bytes:  rec.Size,
			Region: region,
		})
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "log file not found for server " + server})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  results,
		"count":  len(results),
		"offset": offset,
		"limit":  limit,
	})
}
