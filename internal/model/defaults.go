package model

// Shared defaults used by both the analyzer and dashboard binaries.
const (
	DefaultTopPaths   = 5
	DefaultReportPath = "reports/summary.json"
	DefaultRawLimit   = 200
	MaxRawLimit       = 2000
)
