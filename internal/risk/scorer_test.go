package risk

import (
	"strings"
	"testing"

	"securiwatch/internal/types"
)

func TestScore_BaseTable(t *testing.T) {
	tests := []struct {
		eventType types.EventType
		want      int
	}{
		{types.EventAuthFailure, 7},
		{types.EventInvalidUser, 8},
		{types.EventSudoCommand, 5},
		{types.EventAuthSuccess, 2},
		{types.EventSessionOpen, 3},
		{types.EventSessionClose, 1},
		{types.EventCronJob, 1},
		{types.EventOther, 2},
	}

	for _, tt := range tests {
		// Neutral message: no adjustment keywords
		if got := Score(tt.eventType, "connection closed by peer"); got != tt.want {
			t.Errorf("Score(%s) = %d, want %d", tt.eventType, got, tt.want)
		}
	}
}

func TestScore_Adjustments(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    int
	}{
		{"failed adds two", "Failed password for alice", 2 + 2},
		{"root adds one", "session record for ROOT", 2 + 1},
		{"both cumulative", "Failed password for root", 2 + 2 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(types.EventOther, tt.message); got != tt.want {
				t.Errorf("Score(OTHER, %q) = %d, want %d", tt.message, got, tt.want)
			}
		})
	}
}

func TestScore_Clamped(t *testing.T) {
	if got := Score(types.EventInvalidUser, "Failed password for root"); got != MaxScore {
		t.Errorf("Expected clamp to %d, got %d", MaxScore, got)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	eventTypes := []types.EventType{
		types.EventSudoCommand, types.EventSessionOpen, types.EventSessionClose,
		types.EventAuthFailure, types.EventAuthSuccess, types.EventInvalidUser,
		types.EventCronJob, types.EventOther,
	}
	adversarial := strings.Repeat("failed root ", 100)

	for _, eventType := range eventTypes {
		for _, message := range []string{"", "ok", adversarial} {
			got := Score(eventType, message)
			if got < 0 || got > MaxScore {
				t.Errorf("Score(%s, %q...) = %d, out of range", eventType, message[:min(len(message), 20)], got)
			}
		}
	}
}
