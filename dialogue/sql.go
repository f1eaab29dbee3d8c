package dialogue

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tgbotkit/types"
)

// SQLStorage is the single-table backend from spec.md §4.8: update is an
// upsert, get is a select, remove deletes and checks rows affected.
// Grounded on the pack's SQLiteDecisionStore
// (odvcencio-buckley/pkg/orchestrator/decision_store.go), which uses the
// same ensureSchema-then-CRUD shape over database/sql. The table name and
// column shape (chat_id BIGINT PRIMARY KEY, dialogue BYTES) match the
// external interface SPEC_FULL.md §9 documents, so a DBA inspecting the
// database sees exactly what the spec promises.
type SQLStorage[State any] struct {
	db    *sql.DB
	table string
}

// NewSQLStorage opens (or reuses) db and ensures the backing table exists.
// An empty table name defaults to "teloxide_dialogues", the documented
// external interface. State values are serialized with encoding/json and
// stored as the "dialogue" BLOB column.
func NewSQLStorage[State any](db *sql.DB, table string) (*SQLStorage[State], error) {
	if table == "" {
		table = "teloxide_dialogues"
	}
	s := &SQLStorage[State]{db: db, table: table}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("dialogue: failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLStorage[State]) ensureSchema() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			chat_id BIGINT PRIMARY KEY,
			dialogue BLOB NOT NULL
		)`, s.table)
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLStorage[State]) Get(ctx context.Context, chatID types.ChatID) (State, bool, error) {
	var zero State
	query := fmt.Sprintf("SELECT dialogue FROM %s WHERE chat_id = ?", s.table)
	row := s.db.QueryRowContext(ctx, query, int64(chatID))

	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, err
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return zero, false, fmt.Errorf("dialogue: failed to decode state: %w", err)
	}
	return state, true, nil
}

func (s *SQLStorage[State]) Update(ctx context.Context, chatID types.ChatID, state State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("dialogue: failed to encode state: %w", err)
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (chat_id, dialogue) VALUES (?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET dialogue = excluded.dialogue`, s.table)
	_, err = s.db.ExecContext(ctx, query, int64(chatID), raw)
	return err
}

func (s *SQLStorage[State]) Remove(ctx context.Context, chatID types.ChatID) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE chat_id = ?", s.table)
	res, err := s.db.ExecContext(ctx, query, int64(chatID))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
