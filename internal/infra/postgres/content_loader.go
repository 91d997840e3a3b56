package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"classquiz-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// defaultContentID is the single content row the service reads.
const defaultContentID = "default"

// ContentLoader loads the question pools from a JSONB column.
type ContentLoader struct {
	pool *pgxpool.Pool
}

func NewContentLoader(pool *pgxpool.Pool) *ContentLoader {
	return &ContentLoader{pool: pool}
}

func (l *ContentLoader) LoadContent(ctx context.Context) (domain.ContentSet, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM content_sets WHERE id=$1`, defaultContentID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ContentSet{}, domain.ErrContentNotFound
	}
	if err != nil {
		return domain.ContentSet{}, fmt.Errorf("load content: %w", err)
	}
	var set domain.ContentSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.ContentSet{}, fmt.Errorf("unmarshal content: %w", err)
	}
	return set, nil
}
