package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS audit_log (
	id              TEXT PRIMARY KEY,
	created_at      TEXT NOT NULL,
	event_type      TEXT NOT NULL,
	profile_id      TEXT,
	platform_id     TEXT,
	data_shared     TEXT,
	data_withheld   TEXT,
	private_influenced INTEGER NOT NULL DEFAULT 0,
	private_exposed    INTEGER NOT NULL DEFAULT 0,
	reason          TEXT,
	details_json    TEXT
);

CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at);
CREATE INDEX IF NOT EXISTS idx_audit_platform ON audit_log(platform_id);
`

// #endregion schema

// #region store-struct

// Store persists audit entries in SQLite.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// #endregion store-struct

// #region constructor

// NewStore opens a SQLite database and runs migrations. logger may be
// nil; logging degrades to a no-op.
func NewStore(dbPath string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, log: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region log-entry

// Log inserts an entry, assigning an ID and timestamp when unset, and
// returns the stored entry.
func (s *Store) Log(entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	sharedJSON, err := json.Marshal(entry.DataShared)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal shared: %w", err)
	}
	withheldJSON, err := json.Marshal(entry.DataWithheld)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal withheld: %w", err)
	}

	var detailsPtr interface{}
	if entry.Details != nil {
		detailsJSON, err := json.Marshal(entry.Details)
		if err != nil {
			return Entry{}, fmt.Errorf("marshal details: %w", err)
		}
		detailsPtr = string(detailsJSON)
	}

	_, err = s.db.Exec(
		`INSERT INTO audit_log (id, created_at, event_type, profile_id, platform_id,
		 data_shared, data_withheld, private_influenced, private_exposed, reason, details_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.Format(time.RFC3339Nano), string(entry.EventType),
		nullable(entry.ProfileID), nullable(entry.PlatformID),
		string(sharedJSON), string(withheldJSON),
		entry.PrivateFieldsInfluenced, entry.PrivateFieldsExposed,
		nullable(entry.Reason), detailsPtr,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	s.log.Info("audit entry recorded",
		zap.String("id", entry.ID),
		zap.String("event_type", string(entry.EventType)),
		zap.String("platform_id", entry.PlatformID),
		zap.Int("shared", len(entry.DataShared)),
		zap.Int("withheld", len(entry.DataWithheld)),
	)
	return entry, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion log-entry

// #region queries

const selectColumns = `id, created_at, event_type, profile_id, platform_id,
	data_shared, data_withheld, private_influenced, private_exposed, reason, details_json`

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT `+selectColumns+` FROM audit_log ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ForPlatform returns all entries for one platform, newest first.
func (s *Store) ForPlatform(platformID string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT `+selectColumns+` FROM audit_log WHERE platform_id = ? ORDER BY created_at DESC`,
		platformID,
	)
	if err != nil {
		return nil, fmt.Errorf("list platform entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdStr, sharedJSON, withheldJSON string
		var profileID, platformID, reason, detailsJSON sql.NullString

		if err := rows.Scan(&entry.ID, &createdStr, &entry.EventType, &profileID, &platformID,
			&sharedJSON, &withheldJSON, &entry.PrivateFieldsInfluenced, &entry.PrivateFieldsExposed,
			&reason, &detailsJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		entry.Timestamp, _ = time.Parse(time.RFC3339Nano, createdStr)
		entry.ProfileID = profileID.String
		entry.PlatformID = platformID.String
		entry.Reason = reason.String
		if err := json.Unmarshal([]byte(sharedJSON), &entry.DataShared); err != nil {
			return nil, fmt.Errorf("unmarshal shared: %w", err)
		}
		if err := json.Unmarshal([]byte(withheldJSON), &entry.DataWithheld); err != nil {
			return nil, fmt.Errorf("unmarshal withheld: %w", err)
		}
		if detailsJSON.Valid {
			if err := json.Unmarshal([]byte(detailsJSON.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshal details: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// #endregion queries

// #region stakeholder-view

// StakeholderView projects entries for an audience: whether private
// context influenced a decision, never which fields. Compliance booleans
// come from the details map and default to compliant when absent.
func StakeholderView(entries []Entry) []StakeholderEntry {
	view := make([]StakeholderEntry, 0, len(entries))
	for _, entry := range entries {
		view = append(view, StakeholderEntry{
			ID:                 entry.ID,
			Timestamp:          entry.Timestamp,
			EventType:          entry.EventType,
			PlatformID:         entry.PlatformID,
			PrivateContextUsed: entry.PrivateFieldsInfluenced > 0,
			Compliance: ComplianceStatus{
				BudgetCompliant:    detailBool(entry.Details, "budget_compliant"),
				MandatoryAddressed: detailBool(entry.Details, "mandatory_addressed"),
			},
		})
	}
	return view
}

func detailBool(details map[string]any, key string) bool {
	if details == nil {
		return true
	}
	if v, ok := details[key].(bool); ok {
		return v
	}
	return true
}

// #endregion stakeholder-view

// #region day-summary

// Summarize aggregates entries recorded on one UTC day.
func (s *Store) Summarize(day time.Time) (DaySummary, error) {
	dayStr := day.UTC().Format("2006-01-02")
	rows, err := s.db.Query(
		`SELECT `+selectColumns+` FROM audit_log WHERE created_at LIKE ? ORDER BY created_at`,
		dayStr+"%",
	)
	if err != nil {
		return DaySummary{}, fmt.Errorf("summarize day: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return DaySummary{}, err
	}

	summary := DaySummary{Day: dayStr, Entries: len(entries)}
	for _, entry := range entries {
		summary.FieldsShared += len(entry.DataShared)
		summary.FieldsWithheld += len(entry.DataWithheld)
		summary.PrivateInfluenced += entry.PrivateFieldsInfluenced
	}
	return summary, nil
}

// #endregion day-summary
