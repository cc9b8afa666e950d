package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-todo-api/internal/model"
)

// TokenRepository is the PostgreSQL-backed refresh token registry. The
// refresh_tokens table is keyed by user_id, so each user holds exactly
// one slot; Replace is a single upsert statement and therefore atomic
// under concurrent logins.
type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Replace(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (user_id, token, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET token = EXCLUDED.token, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at`,
		userID, token, time.Now().UTC(), expiresAt)
	if err != nil {
		return fmt.Errorf("replace refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Resolve(ctx context.Context, token string) (string, error) {
	var userID string
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, expires_at FROM refresh_tokens WHERE token = $1`, token).
		Scan(&userID, &expiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", model.ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve refresh token: %w", err)
	}
	if time.Now().After(expiresAt) {
		return "", model.ErrRefreshTokenExpired
	}
	return userID, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) CleanExpired(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("clean expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

// StartCleanupTicker periodically removes expired rows until ctx is
// cancelled. Expired tokens are already rejected on resolve; this only
// keeps the table from growing unbounded.
func (r *TokenRepository) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := r.CleanExpired(ctx)
			if err != nil {
				slog.Warn("refresh token cleanup failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("expired refresh tokens removed", "count", removed)
			}
		}
	}
}
