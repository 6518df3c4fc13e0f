package model

import "time"

// AccessRecord represents one parsed web access log line. It is produced
// by the parser and consumed immediately by a stats accumulator; records
// are never stored or transported.
type AccessRecord struct {
	Addr      string    // dotted-quad source address
	Timestamp time.Time // carries the log line's fixed UTC offset
	Method    string    // uppercase HTTP method token
	Path      string    // request path, no embedded whitespace
	Status    int       // 100-599
	Size      int64     // response bytes
}
