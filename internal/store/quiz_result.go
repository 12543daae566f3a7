package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const quizResultsTable = "quiz_results"

var quizResultColumns = []string{
	"id", "sequence", "session_id", "deck_id", "deck_name",
	"correct", "total", "percentage", "finished_at",
}

// QuizResult is one finished quiz.
type QuizResult struct {
	ID         int64
	Sequence   int64
	SessionID  string
	DeckID     int
	DeckName   string
	Correct    int
	Total      int
	Percentage int
	FinishedAt time.Time
}

// QuizResultRepo records and queries finished quizzes.
type QuizResultRepo interface {
	// Append stores r, filling in ID and Sequence.
	Append(ctx context.Context, r *QuizResult) error

	// Recent returns up to limit results, newest first. A limit of 0
	// returns everything.
	Recent(ctx context.Context, limit int) ([]QuizResult, error)

	// DeckBest returns the highest percentage scored on a deck. ok is
	// false if the deck has no results.
	DeckBest(ctx context.Context, deckID int) (best int, ok bool, err error)
}

type quizResultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *quizResultRepo) Append(ctx context.Context, res *QuizResult) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now()
	}

	query, args := builder().Insert(quizResultsTable).
		Columns("sequence", "session_id", "deck_id", "deck_name",
			"correct", "total", "percentage", "finished_at").
		Values(seq, res.SessionID, res.DeckID, res.DeckName,
			res.Correct, res.Total, res.Percentage, res.FinishedAt.UnixNano()).
		Query()

	out, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	id, err := out.LastInsertId()
	if err != nil {
		return fmt.Errorf("quiz result id: %w", err)
	}
	res.ID = id
	res.Sequence = seq
	return nil
}

func (r *quizResultRepo) Recent(ctx context.Context, limit int) ([]QuizResult, error) {
	sel := builder().Select(quizResultColumns...).
		From(entsql.Table(quizResultsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz results: %w", err)
	}
	defer rows.Close()

	var out []QuizResult
	for rows.Next() {
		var (
			res      QuizResult
			finished int64
		)
		if err := rows.Scan(&res.ID, &res.Sequence, &res.SessionID, &res.DeckID, &res.DeckName,
			&res.Correct, &res.Total, &res.Percentage, &finished); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		res.FinishedAt = time.Unix(0, finished)
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *quizResultRepo) DeckBest(ctx context.Context, deckID int) (int, bool, error) {
	query, args := builder().Select(entsql.Max("percentage")).
		From(entsql.Table(quizResultsTable)).
		Where(entsql.EQ("deck_id", deckID)).
		Query()

	var best sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !best.Valid) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query deck best: %w", err)
	}
	return int(best.Int64), true, nil
}
