package classify

import (
	"strings"

	"securiwatch/internal/types"
)

// rule pairs a predicate over (process, message) with the category it
// yields. Rules are evaluated top to bottom and the first hit wins, so the
// slice order IS the precedence contract.
type rule struct {
	name  string
	match func(process, message string) bool
	event types.EventType
}

// Classifier maps a process name and message to an event category
type Classifier struct {
	rules []rule
}

// New creates a classifier with the fixed rule order. A sudo-invoked cron
// job classifies as SUDO_COMMAND because the sudo rule runs before the cron
// rule. The session rules match case-sensitively; pam writes them lowercase.
func New() *Classifier {
	return &Classifier{
		rules: []rule{
			{
				name:  "sudo_process",
				match: func(process, _ string) bool { return strings.Contains(strings.ToLower(process), "sudo") },
				event: types.EventSudoCommand,
			},
			{
				name:  "session_opened",
				match: func(_, message string) bool { return strings.Contains(message, "session opened") },
				event: types.EventSessionOpen,
			},
			{
				name:  "session_closed",
				match: func(_, message string) bool { return strings.Contains(message, "session closed") },
				event: types.EventSessionClose,
			},
			{
				name:  "auth_failure",
				match: func(_, message string) bool { return containsFold(message, "authentication failure") },
				event: types.EventAuthFailure,
			},
			{
				name:  "accepted",
				match: func(_, message string) bool { return containsFold(message, "accepted") },
				event: types.EventAuthSuccess,
			},
			{
				name:  "invalid_user",
				match: func(_, message string) bool { return containsFold(message, "invalid user") },
				event: types.EventInvalidUser,
			},
			{
				name:  "cron_process",
				match: func(process, _ string) bool { return strings.Contains(strings.ToLower(process), "cron") },
				event: types.EventCronJob,
			},
		},
	}
}

// Classify returns the category for a line. Total: always yields a value,
// OTHER when no rule matches.
func (c *Classifier) Classify(process, message string) types.EventType {
	for _, r := range c.rules {
		if r.match(process, message) {
			return r.event
		}
	}
	return types.EventOther
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
