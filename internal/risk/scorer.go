package risk

import (
	"strings"

	"securiwatch/internal/types"
)

// MaxScore is the ceiling of the risk scale
const MaxScore = 10

// Threshold is the score at or above which an event counts as a risk event
const Threshold = 5

// baseScores is the fixed per-category table. Adjustments below can only
// add, so no floor clamp is needed.
var baseScores = map[types.EventType]int{
	types.EventAuthFailure:  7,
	types.EventInvalidUser:  8,
	types.EventSudoCommand:  5,
	types.EventAuthSuccess:  2,
	types.EventSessionOpen:  3,
	types.EventSessionClose: 1,
	types.EventCronJob:      1,
	types.EventOther:        2,
}

// Score computes the heuristic risk score for an event. Pure function of
// its inputs: the base score for the category, +2 when the message mentions
// "failed", +1 when it mentions "root", clamped to MaxScore.
func Score(eventType types.EventType, message string) int {
	score, ok := baseScores[eventType]
	if !ok {
		score = baseScores[types.EventOther]
	}

	lower := strings.ToLower(message)
	if strings.Contains(lower, "failed") {
		score += 2
	}
	if strings.Contains(lower, "root") {
		score++
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}
