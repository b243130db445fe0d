package report

import (
	"strings"
	"testing"
	"time"

	"securiwatch/internal/pipeline"
	"securiwatch/internal/types"
)

func TestPrintSummary(t *testing.T) {
	events := []types.SecurityEvent{
		{
			Timestamp: time.Date(2025, time.January, 21, 22, 4, 35, 0, time.UTC),
			EventType: types.EventInvalidUser,
			User:      "admin",
			IPAddress: "10.0.0.5",
			Message:   strings.Repeat("x", 120),
			RiskScore: 10,
		},
		{
			Timestamp: time.Date(2025, time.January, 21, 22, 5, 0, 0, time.UTC),
			EventType: types.EventCronJob,
			User:      "root",
			Message:   "(root) CMD (run-parts /etc/cron.hourly)",
			RiskScore: 2,
		},
	}

	var buf strings.Builder
	PrintSummary(&buf, pipeline.Summarize(events))
	out := buf.String()

	for _, want := range []string{
		"Total events: 2",
		"INVALID_USER: 1",
		"Risk events (score >= 5): 1",
		"Type: INVALID_USER | User: admin",
		"10.0.0.5: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}

	// Long messages are truncated for display
	if strings.Contains(out, strings.Repeat("x", 81)) {
		t.Error("Expected message truncation at 80 characters")
	}
	if !strings.Contains(out, strings.Repeat("x", 80)+"...") {
		t.Error("Expected ellipsis after truncated message")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 80); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate(strings.Repeat("a", 90), 80); len(got) != 83 || !strings.HasSuffix(got, "...") {
		t.Errorf("Unexpected truncation result: %q", got)
	}
}
