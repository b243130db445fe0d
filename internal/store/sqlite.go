package store

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"

	"securiwatch/internal/pipeline"
	"securiwatch/internal/risk"
	"securiwatch/internal/types"
)

// Store persists collected events in SQLite
type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the event database at dbPath
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		hostname TEXT,
		process TEXT,
		pid INTEGER,
		event_type TEXT NOT NULL,
		user_name TEXT,
		ip_address TEXT,
		message TEXT,
		risk_score INTEGER,
		raw_log TEXT,
		collected_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_logs_event_type ON logs(event_type);
	CREATE INDEX IF NOT EXISTS idx_logs_risk ON logs(risk_score, timestamp);`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// SaveAll writes a batch of events inside one transaction and returns how
// many rows were written. A row that fails to insert is logged and skipped
// rather than aborting the batch.
func (s *Store) SaveAll(events []types.SecurityEvent) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO logs
		(timestamp, hostname, process, pid, event_type, user_name, ip_address, message, risk_score, raw_log)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	saved := 0
	for _, evt := range events {
		var pid interface{}
		if evt.PID != nil {
			pid = *evt.PID
		}
		var ip interface{}
		if evt.IPAddress != "" {
			ip = evt.IPAddress
		}

		_, err := stmt.Exec(
			evt.Timestamp,
			evt.Hostname,
			evt.Process,
			pid,
			string(evt.EventType),
			evt.User,
			ip,
			evt.Message,
			evt.RiskScore,
			evt.RawLog,
		)
		if err != nil {
			log.Printf("[STORE] Failed to save event: %v", err)
			continue
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return saved, nil
}

// Stats computes the database-side twin of pipeline.Summarize over every
// stored row
func (s *Store) Stats() (*pipeline.Report, error) {
	rep := &pipeline.Report{}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&rep.Total); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT event_type, COUNT(*) AS n
		FROM logs
		GROUP BY event_type
		ORDER BY n DESC, event_type ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc pipeline.TypeCount
		if err := rows.Scan(&tc.EventType, &tc.Count); err != nil {
			return nil, err
		}
		rep.ByType = append(rep.ByType, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM logs WHERE risk_score >= ?", risk.Threshold).
		Scan(&rep.RiskEventCount)
	if err != nil {
		return nil, err
	}

	rep.TopRisk, err = s.queryEvents(`
		SELECT timestamp, hostname, process, pid, event_type, user_name, ip_address, message, risk_score, raw_log
		FROM logs
		WHERE risk_score >= ?
		ORDER BY risk_score DESC, timestamp DESC
		LIMIT ?
	`, risk.Threshold, pipeline.TopN)
	if err != nil {
		return nil, err
	}

	srcRows, err := s.db.Query(`
		SELECT ip_address, COUNT(*) AS n
		FROM logs
		WHERE risk_score >= ? AND ip_address IS NOT NULL
		GROUP BY ip_address
		ORDER BY n DESC, ip_address ASC
		LIMIT ?
	`, risk.Threshold, pipeline.TopN)
	if err != nil {
		return nil, err
	}
	defer srcRows.Close()
	for srcRows.Next() {
		var sc pipeline.SourceCount
		if err := srcRows.Scan(&sc.IP, &sc.Count); err != nil {
			return nil, err
		}
		rep.TopSources = append(rep.TopSources, sc)
	}
	if err := srcRows.Err(); err != nil {
		return nil, err
	}

	return rep, nil
}

// ListEvents returns the most recently collected events, newest first
func (s *Store) ListEvents(limit int) ([]types.SecurityEvent, error) {
	return s.queryEvents(`
		SELECT timestamp, hostname, process, pid, event_type, user_name, ip_address, message, risk_score, raw_log
		FROM logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
}

func (s *Store) queryEvents(query string, args ...interface{}) ([]types.SecurityEvent, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []types.SecurityEvent
	for rows.Next() {
		var evt types.SecurityEvent
		var pid sql.NullInt64
		var ip sql.NullString

		err := rows.Scan(
			&evt.Timestamp,
			&evt.Hostname,
			&evt.Process,
			&pid,
			&evt.EventType,
			&evt.User,
			&ip,
			&evt.Message,
			&evt.RiskScore,
			&evt.RawLog,
		)
		if err != nil {
			return nil, err
		}

		if pid.Valid {
			p := int(pid.Int64)
			evt.PID = &p
		}
		if ip.Valid {
			evt.IPAddress = ip.String
		}

		events = append(events, evt)
	}
	return events, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
