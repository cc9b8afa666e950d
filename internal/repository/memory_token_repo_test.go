package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-todo-api/internal/model"
)

func TestMemoryTokenRepositoryReplaceInvalidatesPrevious(t *testing.T) {
	repo := NewMemoryTokenRepository()
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	require.NoError(t, repo.Replace(ctx, "user-1", "token-1", expires))
	require.NoError(t, repo.Replace(ctx, "user-1", "token-2", expires))

	_, err := repo.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, model.ErrRefreshTokenNotFound)

	userID, err := repo.Resolve(ctx, "token-2")
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestMemoryTokenRepositoryExpiry(t *testing.T) {
	repo := NewMemoryTokenRepository()
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "user-1", "token-1", time.Now().Add(-time.Minute)))

	_, err := repo.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, model.ErrRefreshTokenExpired)
}

func TestMemoryTokenRepositoryRevoke(t *testing.T) {
	repo := NewMemoryTokenRepository()
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "user-1", "token-1", time.Now().Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, "token-1"))

	_, err := repo.Resolve(ctx, "token-1")
	require.ErrorIs(t, err, model.ErrRefreshTokenNotFound)

	// Revoking an unknown token is a no-op.
	require.NoError(t, repo.Revoke(ctx, "token-1"))
}

func TestMemoryTokenRepositoryConcurrentReplaceKeepsOneSlot(t *testing.T) {
	repo := NewMemoryTokenRepository()
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)

	const workers = 50
	tokens := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		tokens[i] = fmt.Sprintf("token-%d", i)
		wg.Add(1)
		go func(tok string) {
			defer wg.Done()
			_ = repo.Replace(ctx, "user-1", tok, expires)
		}(tokens[i])
	}
	wg.Wait()

	resolved := 0
	for _, tok := range tokens {
		if userID, err := repo.Resolve(ctx, tok); err == nil {
			require.Equal(t, "user-1", userID)
			resolved++
		}
	}
	require.Equal(t, 1, resolved)
}
