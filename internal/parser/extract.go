package parser

import (
	"regexp"
	"strings"
)

// User and IP extraction over the free-text message. The patterns are
// ordered heuristics: the first listed pattern that matches anywhere in the
// message wins, even when a later pattern would have matched earlier text.

var (
	userPatterns = []*regexp.Regexp{
		// "Failed password for invalid user admin", "session opened for user root"
		regexp.MustCompile(`user (\w+)`),
		// "Accepted publickey for deploy"
		regexp.MustCompile(`for (\w+)`),
	}

	// Dotted quad, 1-3 digits per octet. Octets are not range-checked, so
	// 999.999.999.999 matches; upstream behaves the same.
	ipPattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// ExtractUser resolves the user name referenced by the message. Falls back
// to "root" when the message mentions root without a matching pattern, and
// to "unknown" otherwise.
func ExtractUser(message string) string {
	for _, re := range userPatterns {
		if m := re.FindStringSubmatch(message); m != nil {
			return m[1]
		}
	}

	if strings.Contains(strings.ToLower(message), "root") {
		return "root"
	}

	return "unknown"
}

// ExtractIP returns the first IPv4-looking substring of the message, or ""
// when none is present.
func ExtractIP(message string) string {
	return ipPattern.FindString(message)
}
