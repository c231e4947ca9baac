package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/reflectlab/JournalPipe/internal/models"
)

// recordColumns is the column list shared by both SQL backends.
const recordColumns = "id, participant_id, condition, personality, answers, analytics, started_at, finished_at, completed"

// encodeRecord serializes the JSON-held columns of a record.
func encodeRecord(rec models.SessionRecord) (answers, analytics string, err error) {
	a := rec.Answers
	if a == nil {
		a = map[string]string{}
	}
	answersJSON, err := json.Marshal(a)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal answers: %w", err)
	}
	analyticsJSON, err := json.Marshal(rec.Analytics)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal analytics: %w", err)
	}
	return string(answersJSON), string(analyticsJSON), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession reads one record from a row or rows cursor.
func scanSession(row rowScanner) (models.SessionRecord, error) {
	var rec models.SessionRecord
	var answersJSON, analyticsJSON string
	err := row.Scan(
		&rec.ID, &rec.Participant, &rec.Condition, &rec.Personality,
		&answersJSON, &analyticsJSON, &rec.StartedAt, &rec.FinishedAt, &rec.Completed,
	)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(answersJSON), &rec.Answers); err != nil {
		return rec, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if err := json.Unmarshal([]byte(analyticsJSON), &rec.Analytics); err != nil {
		return rec, fmt.Errorf("failed to unmarshal analytics: %w", err)
	}
	return rec, nil
}

// collectSessions drains a rows cursor into a slice.
func collectSessions(rows *sql.Rows) ([]models.SessionRecord, error) {
	defer rows.Close()
	var out []models.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// sortSessionsByStart orders records oldest first.
func sortSessionsByStart(recs []models.SessionRecord) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].StartedAt.Before(recs[j].StartedAt) })
}
