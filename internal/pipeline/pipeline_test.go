package pipeline

import (
	"reflect"
	"testing"
	"time"

	"securiwatch/internal/types"
)

var ref = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestPipeline_Run_ConcreteLine(t *testing.T) {
	p := New(1)

	line := "Jan 21 22:04:35 myhost sshd[1234]: Failed password for invalid user admin from 10.0.0.5 port 22 ssh2"
	events := p.Run([]string{line}, ref)

	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	evt := events[0]

	if evt.EventType != types.EventInvalidUser {
		t.Errorf("Expected INVALID_USER, got %s", evt.EventType)
	}
	if evt.User != "admin" {
		t.Errorf("Expected user 'admin', got '%s'", evt.User)
	}
	if evt.IPAddress != "10.0.0.5" {
		t.Errorf("Expected IP '10.0.0.5', got '%s'", evt.IPAddress)
	}
	// Base 8 (INVALID_USER) +2 for "failed", clamped at 10
	if evt.RiskScore != 10 {
		t.Errorf("Expected risk score 10, got %d", evt.RiskScore)
	}
	if evt.Hostname != "myhost" || evt.Process != "sshd" {
		t.Errorf("Unexpected header fields: %s %s", evt.Hostname, evt.Process)
	}
	if evt.PID == nil || *evt.PID != 1234 {
		t.Errorf("Expected pid 1234, got %v", evt.PID)
	}
	if evt.RawLog != line {
		t.Errorf("Raw line not retained")
	}
}

func TestPipeline_Run_OrderAndDrops(t *testing.T) {
	p := New(1)

	lines := []string{
		"Jan 21 22:04:35 myhost sshd[1234]: Accepted password for alice from 10.0.0.5 port 22 ssh2",
		"not a log line",
		"",
		"   ",
		"Jan 21 22:04:36 myhost sudo[99]: alice : TTY=pts/0 ; COMMAND=/bin/ls",
		"Jan 21 22:04:37 myhost sshd[1250]: pam_unix(sshd:auth): authentication failure; rhost=10.0.0.6 user=root",
	}

	events := p.Run(lines, ref)
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	wantTypes := []types.EventType{types.EventAuthSuccess, types.EventSudoCommand, types.EventAuthFailure}
	for i, want := range wantTypes {
		if events[i].EventType != want {
			t.Errorf("Event %d: expected %s, got %s", i, want, events[i].EventType)
		}
	}
}

func TestPipeline_Run_Idempotent(t *testing.T) {
	p := New(1)

	lines := []string{
		"Jan 21 22:04:35 myhost sshd[1234]: Failed password for invalid user admin from 10.0.0.5 port 22 ssh2",
		"Jan 21 22:04:36 myhost su: pam_unix(su:session): session opened for user root by (uid=0)",
	}

	first := p.Run(lines, ref)
	second := p.Run(lines, ref)

	if !reflect.DeepEqual(first, second) {
		t.Error("Two runs over the same input produced different output")
	}
}

func TestPipeline_Run_ParallelMatchesSerial(t *testing.T) {
	lines := []string{
		"Jan 21 22:04:35 myhost sshd[1234]: Failed password for invalid user admin from 10.0.0.5 port 22 ssh2",
		"garbage line",
		"Jan 21 22:04:36 myhost sshd[1235]: Accepted password for alice from 10.0.0.7 port 22 ssh2",
		"",
		"Jan 21 22:04:37 myhost CRON[40]: (root) CMD (run-parts /etc/cron.hourly)",
		"Jan 21 22:04:38 myhost sudo[99]: alice : TTY=pts/0 ; COMMAND=/bin/ls",
	}

	serial := New(1).Run(lines, ref)
	parallel := New(4).Run(lines, ref)

	if !reflect.DeepEqual(serial, parallel) {
		t.Errorf("Parallel output differs from serial:\n%+v\nvs\n%+v", parallel, serial)
	}
}

func TestPipeline_Run_EmptyInput(t *testing.T) {
	p := New(1)

	if events := p.Run(nil, ref); len(events) != 0 {
		t.Errorf("Expected no events for nil input, got %d", len(events))
	}
	if events := p.Run([]string{"", "  ", "\t"}, ref); len(events) != 0 {
		t.Errorf("Expected no events for blank input, got %d", len(events))
	}
}

func TestSummarize_TopRiskRanking(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	scores := []int{9, 9, 7, 8, 9}

	var events []types.SecurityEvent
	for i, score := range scores {
		events = append(events, types.SecurityEvent{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			EventType: types.EventAuthFailure,
			User:      "unknown",
			RiskScore: score,
		})
	}

	rep := Summarize(events)

	if rep.Total != 5 {
		t.Errorf("Expected total 5, got %d", rep.Total)
	}
	if rep.RiskEventCount != 5 {
		t.Errorf("Expected 5 risk events, got %d", rep.RiskEventCount)
	}

	// Score descending, latest first on ties: the 9 from minute 4, then
	// minute 1, then minute 0, then the 8, then the 7.
	wantScores := []int{9, 9, 9, 8, 7}
	wantMinutes := []int{4, 1, 0, 3, 2}
	if len(rep.TopRisk) != 5 {
		t.Fatalf("Expected 5 top risk events, got %d", len(rep.TopRisk))
	}
	for i := range rep.TopRisk {
		if rep.TopRisk[i].RiskScore != wantScores[i] {
			t.Errorf("TopRisk[%d] score = %d, want %d", i, rep.TopRisk[i].RiskScore, wantScores[i])
		}
		if got := rep.TopRisk[i].Timestamp.Minute(); got != wantMinutes[i] {
			t.Errorf("TopRisk[%d] minute = %d, want %d", i, got, wantMinutes[i])
		}
	}
}

func TestSummarize_ByTypeAndSources(t *testing.T) {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	events := []types.SecurityEvent{
		{Timestamp: base, EventType: types.EventAuthFailure, IPAddress: "10.0.0.5", RiskScore: 7},
		{Timestamp: base, EventType: types.EventAuthFailure, IPAddress: "10.0.0.5", RiskScore: 7},
		{Timestamp: base, EventType: types.EventAuthSuccess, IPAddress: "10.0.0.9", RiskScore: 2},
		{Timestamp: base, EventType: types.EventInvalidUser, IPAddress: "10.0.0.6", RiskScore: 8},
	}

	rep := Summarize(events)

	wantByType := []TypeCount{
		{types.EventAuthFailure, 2},
		{types.EventAuthSuccess, 1},
		{types.EventInvalidUser, 1},
	}
	if !reflect.DeepEqual(rep.ByType, wantByType) {
		t.Errorf("ByType = %+v, want %+v", rep.ByType, wantByType)
	}

	if rep.RiskEventCount != 3 {
		t.Errorf("Expected 3 risk events, got %d", rep.RiskEventCount)
	}

	// Low-risk 10.0.0.9 must not appear among sources
	wantSources := []SourceCount{{"10.0.0.5", 2}, {"10.0.0.6", 1}}
	if !reflect.DeepEqual(rep.TopSources, wantSources) {
		t.Errorf("TopSources = %+v, want %+v", rep.TopSources, wantSources)
	}
}

func TestSummarize_Empty(t *testing.T) {
	rep := Summarize(nil)

	if rep.Total != 0 || rep.RiskEventCount != 0 {
		t.Errorf("Expected empty report, got %+v", rep)
	}
	if len(rep.ByType) != 0 || len(rep.TopRisk) != 0 || len(rep.TopSources) != 0 {
		t.Errorf("Expected no breakdown rows, got %+v", rep)
	}
}
