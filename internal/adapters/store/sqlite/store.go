// Package sqlite persists dream history in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

const listLimit = 50

type Store struct {
	db *sql.DB
}

// Open initializes the database at path, creating the directory and schema as
// needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS dreams (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		dream_text TEXT NOT NULL,
		interpretation TEXT NOT NULL,
		energy INTEGER NOT NULL,
		symbols TEXT NOT NULL DEFAULT '[]',
		sentiment TEXT NOT NULL DEFAULT '',
		date DATETIME NOT NULL,
		is_favorite INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_dreams_user_date ON dreams(user_id, date DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Dream, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, dream_text, interpretation, energy, symbols, sentiment, date, is_favorite
		FROM dreams WHERE user_id = ? ORDER BY date DESC LIMIT ?`, userID, listLimit)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	defer rows.Close()

	var dreams []domain.Dream
	for rows.Next() {
		var d domain.Dream
		var symbolsJSON string
		var favorite int
		if err := rows.Scan(&d.ID, &d.UserID, &d.DreamText, &d.Interpretation, &d.Energy,
			&symbolsJSON, &d.Sentiment, &d.Date, &favorite); err != nil {
			return nil, fmt.Errorf("scan dream: %w", err)
		}
		if err := json.Unmarshal([]byte(symbolsJSON), &d.Symbols); err != nil {
			d.Symbols = nil
		}
		d.IsFavorite = favorite != 0
		dreams = append(dreams, d)
	}
	return dreams, rows.Err()
}

func (s *Store) Append(ctx context.Context, dream domain.Dream) (domain.Dream, error) {
	if dream.ID == "" {
		dream.ID = uuid.NewString()
	}
	if dream.Date.IsZero() {
		dream.Date = time.Now().UTC()
	}
	if dream.Symbols == nil {
		dream.Symbols = []domain.Symbol{}
	}

	symbolsJSON, err := json.Marshal(dream.Symbols)
	if err != nil {
		return domain.Dream{}, fmt.Errorf("encode symbols: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dreams (id, user_id, dream_text, interpretation, energy, symbols, sentiment, date, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dream.ID, dream.UserID, dream.DreamText, dream.Interpretation, dream.Energy,
		string(symbolsJSON), dream.Sentiment, dream.Date, boolToInt(dream.IsFavorite))
	if err != nil {
		return domain.Dream{}, fmt.Errorf("insert dream: %w", err)
	}
	return dream, nil
}

func (s *Store) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM dreams WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete dream: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dream: %w", err)
	}
	if affected == 0 {
		return domain.ErrDreamNotFound
	}
	return nil
}

func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE dreams SET is_favorite = ? WHERE id = ?`, boolToInt(favorite), id)
	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update favorite: %w", err)
	}
	if affected == 0 {
		return domain.ErrDreamNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
