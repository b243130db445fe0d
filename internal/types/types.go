package types

import "time"

// EventType classifies a parsed log line into a security-relevant category
type EventType string

const (
	EventSudoCommand  EventType = "SUDO_COMMAND"
	EventSessionOpen  EventType = "SESSION_OPEN"
	EventSessionClose EventType = "SESSION_CLOSE"
	EventAuthFailure  EventType = "AUTH_FAILURE"
	EventAuthSuccess  EventType = "AUTH_SUCCESS"
	EventInvalidUser  EventType = "INVALID_USER"
	EventCronJob      EventType = "CRON_JOB"
	EventOther        EventType = "OTHER"
)

// SecurityEvent is one structured record produced from a raw auth log line.
// All fields are flat scalars so the record maps directly onto a database
// row or a JSON export.
type SecurityEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Hostname  string    `json:"hostname"`
	Process   string    `json:"process"`
	PID       *int      `json:"pid"`
	EventType EventType `json:"event_type"`
	User      string    `json:"user"`       // "unknown" when no pattern resolved
	IPAddress string    `json:"ip_address"` // empty when no dotted quad found
	Message   string    `json:"message"`
	RiskScore int       `json:"risk_score"` // 0-10, clamped
	RawLog    string    `json:"raw_log"`    // original line, kept for audit
}

// Config represents the application configuration
type Config struct {
	Input struct {
		AuthLogPath  string `yaml:"auth_log_path"`
		Lines        int    `yaml:"lines"`
		UseSudo      bool   `yaml:"use_sudo"`      // read via `sudo tail` subprocess
		PollInterval string `yaml:"poll_interval"` // serve mode, e.g. "60s"
	} `yaml:"input"`

	Pipeline struct {
		Workers int `yaml:"workers"` // <=1 means serial
	} `yaml:"pipeline"`

	Storage struct {
		Enabled bool   `yaml:"enabled"`
		DBPath  string `yaml:"db_path"`
	} `yaml:"storage"`

	Output struct {
		JSONPath string `yaml:"json_path"` // empty disables the export
	} `yaml:"output"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`

	Dashboard struct {
		Enabled bool   `yaml:"enabled"`
		Port    string `yaml:"port"`
	} `yaml:"dashboard"`
}

// PollInterval returns the parsed serve-mode interval, falling back to a
// minute when the config value is missing or unparsable.
func (c *Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Input.PollInterval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}
