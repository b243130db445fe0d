package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Header holds the structured fields of one auth log line
type Header struct {
	Timestamp time.Time
	Hostname  string
	Process   string
	PID       *int // present only when the line carried a bracketed id
	Message   string
}

// LineParser splits syslog-style auth log lines.
// Expected shape: "Jan 21 22:04:35 hostname process[pid]: message"
// where the [pid] group is optional.
type LineParser struct {
	re *regexp.Regexp
}

// NewLineParser creates a new auth log line parser
func NewLineParser() *LineParser {
	return &LineParser{
		re: regexp.MustCompile(`^(\w+\s+\d+\s+\d+:\d+:\d+)\s+(\S+)\s+(\S+?)(?:\[(\d+)\])?:\s+(.+)`),
	}
}

// Parse extracts the header and free-text message from one line. The
// timestamp in the source carries no year, so the year is taken from ref
// rather than the ambient clock; lines written across a year boundary are
// misdated by design. Returns nil when the line does not match the
// structural pattern; callers must skip such lines, not fail.
func (p *LineParser) Parse(line string, ref time.Time) *Header {
	matches := p.re.FindStringSubmatch(line)
	if matches == nil {
		return nil
	}

	// 1=timestamp, 2=hostname, 3=process, 4=pid (optional), 5=message
	ts, err := time.Parse("2006 Jan _2 15:04:05", fmt.Sprintf("%d %s", ref.Year(), matches[1]))
	if err != nil {
		// Month/day/time text that defeats the calendar is a structural miss
		return nil
	}

	h := &Header{
		Timestamp: ts,
		Hostname:  matches[2],
		Process:   matches[3],
		Message:   matches[5],
	}

	if matches[4] != "" {
		pid, err := strconv.Atoi(matches[4])
		if err == nil {
			h.PID = &pid
		}
	}

	return h
}
