package pipeline

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"securiwatch/internal/classify"
	"securiwatch/internal/parser"
	"securiwatch/internal/risk"
	"securiwatch/internal/types"
)

// TopN is how many entries the ranked report sections carry
const TopN = 5

// Pipeline turns raw auth log lines into SecurityEvents
type Pipeline struct {
	parser     *parser.LineParser
	classifier *classify.Classifier
	workers    int
}

// New creates a pipeline. workers <= 1 processes lines serially; higher
// values fan the per-line transform out over that many goroutines.
func New(workers int) *Pipeline {
	return &Pipeline{
		parser:     parser.NewLineParser(),
		classifier: classify.New(),
		workers:    workers,
	}
}

// Run processes a batch of raw lines. Blank lines and lines that miss the
// structural pattern are dropped silently; everything else yields exactly
// one event. Output order follows input order regardless of worker count.
// ref supplies the year for the year-less syslog timestamps.
func (p *Pipeline) Run(lines []string, ref time.Time) []types.SecurityEvent {
	if len(lines) == 0 {
		return nil
	}

	slots := make([]*types.SecurityEvent, len(lines))

	if p.workers <= 1 {
		for i, line := range lines {
			slots[i] = p.process(line, ref)
		}
	} else {
		// Each line is independent, so the transform can fan out freely;
		// writing into index-addressed slots restores input order.
		g := new(errgroup.Group)
		g.SetLimit(p.workers)
		for i, line := range lines {
			i, line := i, line
			g.Go(func() error {
				slots[i] = p.process(line, ref)
				return nil
			})
		}
		g.Wait()
	}

	events := make([]types.SecurityEvent, 0, len(lines))
	for _, evt := range slots {
		if evt != nil {
			events = append(events, *evt)
		}
	}
	return events
}

// process transforms one raw line, or returns nil when it is dropped
func (p *Pipeline) process(line string, ref time.Time) *types.SecurityEvent {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	h := p.parser.Parse(line, ref)
	if h == nil {
		return nil
	}

	eventType := p.classifier.Classify(h.Process, h.Message)

	return &types.SecurityEvent{
		Timestamp: h.Timestamp,
		Hostname:  h.Hostname,
		Process:   h.Process,
		PID:       h.PID,
		EventType: eventType,
		User:      parser.ExtractUser(h.Message),
		IPAddress: parser.ExtractIP(h.Message),
		Message:   h.Message,
		RiskScore: risk.Score(eventType, h.Message),
		RawLog:    line,
	}
}

// TypeCount is one row of the per-category breakdown
type TypeCount struct {
	EventType types.EventType `json:"event_type"`
	Count     int             `json:"count"`
}

// SourceCount is one row of the top-source-IP breakdown
type SourceCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

// Report is the aggregated view of one collected batch
type Report struct {
	Total          int                   `json:"total"`
	ByType         []TypeCount           `json:"by_type"`
	RiskEventCount int                   `json:"risk_event_count"`
	TopRisk        []types.SecurityEvent `json:"top_risk"`
	TopSources     []SourceCount         `json:"top_sources"`
}

// Summarize aggregates a batch of events. By-type rows are ordered count
// descending (type name ascending on ties, so reports are deterministic);
// top risk events are ordered score descending with more recent events
// first on equal scores; top sources count risk events per IP.
func Summarize(events []types.SecurityEvent) *Report {
	rep := &Report{Total: len(events)}

	typeCounts := make(map[types.EventType]int)
	sourceCounts := make(map[string]int)
	var riskEvents []types.SecurityEvent

	for _, evt := range events {
		typeCounts[evt.EventType]++
		if evt.RiskScore >= risk.Threshold {
			riskEvents = append(riskEvents, evt)
			if evt.IPAddress != "" {
				sourceCounts[evt.IPAddress]++
			}
		}
	}

	for eventType, count := range typeCounts {
		rep.ByType = append(rep.ByType, TypeCount{EventType: eventType, Count: count})
	}
	sort.Slice(rep.ByType, func(i, j int) bool {
		if rep.ByType[i].Count != rep.ByType[j].Count {
			return rep.ByType[i].Count > rep.ByType[j].Count
		}
		return rep.ByType[i].EventType < rep.ByType[j].EventType
	})

	rep.RiskEventCount = len(riskEvents)

	sort.SliceStable(riskEvents, func(i, j int) bool {
		if riskEvents[i].RiskScore != riskEvents[j].RiskScore {
			return riskEvents[i].RiskScore > riskEvents[j].RiskScore
		}
		return riskEvents[i].Timestamp.After(riskEvents[j].Timestamp)
	})
	if len(riskEvents) > TopN {
		riskEvents = riskEvents[:TopN]
	}
	rep.TopRisk = riskEvents

	for ip, count := range sourceCounts {
		rep.TopSources = append(rep.TopSources, SourceCount{IP: ip, Count: count})
	}
	sort.Slice(rep.TopSources, func(i, j int) bool {
		if rep.TopSources[i].Count != rep.TopSources[j].Count {
			return rep.TopSources[i].Count > rep.TopSources[j].Count
		}
		return rep.TopSources[i].IP < rep.TopSources[j].IP
	})
	if len(rep.TopSources) > TopN {
		rep.TopSources = rep.TopSources[:TopN]
	}

	return rep
}
