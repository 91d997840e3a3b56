package postgres

import (
	"context"
	"fmt"

	"classquiz-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// MatchRecorder appends completed match records to the match_history table.
// Writes are best-effort from the caller's point of view; a failed append
// never interrupts the game.
type MatchRecorder struct {
	pool *pgxpool.Pool
}

func NewMatchRecorder(pool *pgxpool.Pool) *MatchRecorder {
	return &MatchRecorder{pool: pool}
}

func (r *MatchRecorder) Append(ctx context.Context, record domain.MatchRecord) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO match_history (activity_id, winner, score_a, score_b, completed_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		record.ActivityID, string(record.Winner), record.ScoreA, record.ScoreB, record.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("append match record: %w", err)
	}
	return nil
}
