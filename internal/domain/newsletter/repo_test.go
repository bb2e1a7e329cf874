package newsletter

import (
	"context"
	"testing"
	"time"

	"fitness-tracker/backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepo_CreateCount(t *testing.T) {
	repo := NewRepo(testutil.Firestore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, Subscriber{Email: "a@fit.io", Name: "A", SubscribedAt: time.Now().UTC()}))
	require.NoError(t, repo.Create(ctx, Subscriber{Email: "b@fit.io", Name: "B", SubscribedAt: time.Now().UTC()}))
	assert.ErrorIs(t, repo.Create(ctx, Subscriber{Email: "a@fit.io", Name: "A again"}), ErrConflict)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
