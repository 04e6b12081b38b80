package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressframe/pctl/pkg/engine"
)

const (
	// FrequencyMinutesDefault is how often a monitor is checked unless the
	// caller overrides it.
	FrequencyMinutesDefault = 120

	insertMonitorSQL = `INSERT INTO monitor
		(id, topic, created, active, feeds, keywords, thresholds, frequency_minutes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectMonitorSQL = `SELECT id, topic, created, active, feeds, keywords,
			thresholds, frequency_minutes, last_check, last_alert, alert_count
		FROM monitor
	`

	// Next id suffix: one past the highest existing monitor number, so ids
	// stay unique after removals.
	nextMonitorSeqSQL = `SELECT COALESCE(MAX(CAST(substr(id, 9) AS INTEGER)), 0) + 1 FROM monitor`

	deleteMonitorSQL = `DELETE FROM monitor WHERE id = ?`

	updateMonitorActiveSQL = `UPDATE monitor SET active = ? WHERE id = ?`

	updateMonitorCheckSQL = `UPDATE monitor SET last_check = ? WHERE id = ?`

	updateMonitorAlertSQL = `UPDATE monitor
		SET last_alert = ?, alert_count = alert_count + 1 WHERE id = ?
	`
)

// ErrMonitorNotFound is returned when the given monitor id does not exist.
var ErrMonitorNotFound = errors.New("monitor not found")

// Monitor is one configured watch topic with its alert thresholds.
type Monitor struct {
	ID               string            `json:"id" yaml:"id"`
	Topic            string            `json:"topic" yaml:"topic"`
	Created          time.Time         `json:"created" yaml:"created"`
	Active           bool              `json:"active" yaml:"active"`
	Feeds            []string          `json:"feeds,omitempty" yaml:"feeds,omitempty"`
	Keywords         []string          `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Thresholds       engine.Thresholds `json:"thresholds" yaml:"thresholds"`
	FrequencyMinutes int               `json:"frequency_minutes" yaml:"frequency_minutes"`
	LastCheck        *time.Time        `json:"last_check,omitempty" yaml:"last_check,omitempty"`
	LastAlert        *time.Time        `json:"last_alert,omitempty" yaml:"last_alert,omitempty"`
	AlertCount       int               `json:"alert_count" yaml:"alert_count"`
}

// AddMonitor registers a new monitor for the topic and returns it. Feeds and
// keywords are optional; a monitor without either falls back to searching the
// topic itself. Thresholds start at the defaults.
func AddMonitor(db *sql.DB, topic string, feeds, keywords []string, frequencyMinutes int) (*Monitor, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if topic == "" {
		return nil, errors.New("topic required")
	}
	if frequencyMinutes <= 0 {
		frequencyMinutes = FrequencyMinutesDefault
	}

	var seq int
	if err := db.QueryRow(nextMonitorSeqSQL).Scan(&seq); err != nil {
		return nil, fmt.Errorf("determining next monitor id: %w", err)
	}

	m := &Monitor{
		ID:               fmt.Sprintf("monitor-%03d", seq),
		Topic:            topic,
		Created:          time.Now().UTC(),
		Active:           true,
		Feeds:            feeds,
		Keywords:         keywords,
		Thresholds:       engine.DefaultThresholds(),
		FrequencyMinutes: frequencyMinutes,
	}

	feedsJSON, err := json.Marshal(stringsOrEmpty(m.Feeds))
	if err != nil {
		return nil, fmt.Errorf("encoding feeds: %w", err)
	}
	keywordsJSON, err := json.Marshal(stringsOrEmpty(m.Keywords))
	if err != nil {
		return nil, fmt.Errorf("encoding keywords: %w", err)
	}
	thresholdsJSON, err := json.Marshal(m.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("encoding thresholds: %w", err)
	}

	if _, err := db.Exec(insertMonitorSQL,
		m.ID, m.Topic, m.Created.Format(time.RFC3339), m.Active,
		string(feedsJSON), string(keywordsJSON), string(thresholdsJSON),
		m.FrequencyMinutes); err != nil {
		return nil, fmt.Errorf("inserting monitor: %w", err)
	}

	return m, nil
}

// ListMonitors returns all monitors in creation order.
func ListMonitors(db *sql.DB) ([]*Monitor, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectMonitorSQL + " ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying monitors: %w", err)
	}
	defer rows.Close()

	list := make([]*Monitor, 0)
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetMonitor returns one monitor by id.
func GetMonitor(db *sql.DB, id string) (*Monitor, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	rows, err := db.Query(selectMonitorSQL+" WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("querying monitor %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("%w: %s", ErrMonitorNotFound, id)
	}
	return scanMonitor(rows)
}

// RemoveMonitor deletes the monitor with the given id.
func RemoveMonitor(db *sql.DB, id string) error {
	if db == nil {
		return errDBNotInitialized
	}

	res, err := db.Exec(deleteMonitorSQL, id)
	if err != nil {
		return fmt.Errorf("deleting monitor %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMonitorNotFound, id)
	}
	return nil
}

// SetMonitorActive pauses or resumes a monitor.
func SetMonitorActive(db *sql.DB, id string, active bool) error {
	if db == nil {
		return errDBNotInitialized
	}

	res, err := db.Exec(updateMonitorActiveSQL, active, id)
	if err != nil {
		return fmt.Errorf("updating monitor %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrMonitorNotFound, id)
	}
	return nil
}

// RecordCheck stamps the monitor's last check time.
func RecordCheck(db *sql.DB, id string, at time.Time) error {
	if db == nil {
		return errDBNotInitialized
	}
	if _, err := db.Exec(updateMonitorCheckSQL, at.UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("recording check for %s: %w", id, err)
	}
	return nil
}

// RecordAlert stamps the monitor's last alert time and bumps its alert count.
func RecordAlert(db *sql.DB, id string, at time.Time) error {
	if db == nil {
		return errDBNotInitialized
	}
	if _, err := db.Exec(updateMonitorAlertSQL, at.UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("recording alert for %s: %w", id, err)
	}
	return nil
}

func scanMonitor(rows *sql.Rows) (*Monitor, error) {
	var m Monitor
	var created string
	var feeds, keywords, thresholds string
	var lastCheck, lastAlert sql.NullString

	if err := rows.Scan(&m.ID, &m.Topic, &created, &m.Active, &feeds,
		&keywords, &thresholds, &m.FrequencyMinutes,
		&lastCheck, &lastAlert, &m.AlertCount); err != nil {
		return nil, fmt.Errorf("scanning monitor row: %w", err)
	}

	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("parsing created time: %w", err)
	}
	m.Created = t

	if err := json.Unmarshal([]byte(feeds), &m.Feeds); err != nil {
		return nil, fmt.Errorf("decoding feeds: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &m.Keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(thresholds), &m.Thresholds); err != nil {
		return nil, fmt.Errorf("decoding thresholds: %w", err)
	}

	if m.LastCheck, err = parseNullTime(lastCheck); err != nil {
		return nil, err
	}
	if m.LastAlert, err = parseNullTime(lastAlert); err != nil {
		return nil, err
	}

	return &m, nil
}

func parseNullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil, fmt.Errorf("parsing time %q: %w", v.String, err)
	}
	return &t, nil
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
