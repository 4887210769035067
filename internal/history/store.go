package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/robalobadob/moviequiz/internal/quiz"
)

// Modes recorded with each result.
const (
	ModeConsole = "console"
	ModeDaily   = "daily"
	ModeHTTP    = "http"
)

// Result is one finished (or abandoned) quiz run.
type Result struct {
	ID        int64     `json:"id"`
	Mode      string    `json:"mode"`
	Correct   int       `json:"correct"`
	Played    int       `json:"played"`
	Total     int       `json:"total"`
	Aborted   bool      `json:"aborted"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromScore builds a Result for a run that ended with s.
func FromScore(mode string, s quiz.Score, aborted bool) Result {
	return Result{Mode: mode, Correct: s.Correct, Played: s.Played, Total: s.Total, Aborted: aborted}
}

// Totals aggregates every recorded run.
type Totals struct {
	Runs    int `json:"runs"`
	Correct int `json:"correct"`
	Played  int `json:"played"`
	Best    int `json:"best"` // most correct answers in a single run
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// InsertResult records r and returns its row ID.
func (s *Store) InsertResult(ctx context.Context, r Result) (int64, error) {
	if r.Mode == "" {
		r.Mode = ModeConsole
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_results(mode, correct, played, total, aborted)
		VALUES(?,?,?,?,?)`, r.Mode, r.Correct, r.Played, r.Total, r.Aborted,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent returns up to limit results, newest first. Default limit is 10.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, correct, played, total, aborted, created_at
		FROM quiz_results
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		var r Result
		var created string
		if err := rows.Scan(&r.ID, &r.Mode, &r.Correct, &r.Played, &r.Total, &r.Aborted, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Totals sums every recorded run.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(correct),0), COALESCE(SUM(played),0), COALESCE(MAX(correct),0)
		FROM quiz_results`,
	).Scan(&t.Runs, &t.Correct, &t.Played, &t.Best)
	return t, err
}
