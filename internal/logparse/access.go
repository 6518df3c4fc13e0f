package logparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/loglens/loglens/internal/model"
)

// AccessLineRegex matches the fixed access log grammar:
//
//	ADDR - - [DD/Mon/YYYY:HH:MM:SS ±HHMM] "METHOD PATH HTTP/1.1" STATUS SIZE
var AccessLineRegex = regexp.MustCompile(
	`^(\d+\.\d+\.\d+\.\d+)\s+-\s+-\s+\[([^\]]+)\]\s+"([A-Z]+)\s+(\S+)\s+HTTP/1\.1"\s+([1-5]\d{2})\s+(\d+)`,
)

// accessTimeLayout is the timestamp format inside the brackets.
const accessTimeLayout = "02/Jan/2006:15:04:05 -0700"

// ParseAccessLine parses one raw log line into an AccessRecord.
// A line that does not match the grammar, or whose timestamp does not
// parse, returns (nil, false). Callers skip the line and continue; a
// partial record is never produced.
func ParseAccessLine(line string) (*model.AccessRecord, bool) {
	m := AccessLineRegex.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil, false
	}

	ts, err := time.Parse(accessTimeLayout, m[2])
	if err != nil {
		return nil, false
	}

	status, err := strconv.Atoi(m[5])
	if err != nil {
		return nil, false
	}
	size, err := strconv.ParseInt(m[6], 10, 64)
	if err != nil {
		return nil, false
	}

	return &model.AccessRecord{
		Addr:      m[1],
		Timestamp: ts,
		Method:    m[3],
		Path:      m[4],
		Status:    status,
		Size:      size,
	}, true
}
