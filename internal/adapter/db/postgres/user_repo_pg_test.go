package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "exercise-tracker-service/internal/domain/tracker"
)

func TestUserRepoPG_CreateAssignsUniqueIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	seen := make(map[int64]bool)
	for _, name := range []string{"alice", "bob", "alice"} { // duplicates permitted
		id, err := repo.Create(ctx, &domain.User{Username: name})
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
}

func TestUserRepoPG_GetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Username: "fcc_test"})
	require.NoError(t, err)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "fcc_test", u.Username)
}

func TestUserRepoPG_GetByID_Missing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	// Absence is nil, not an error
	u, err := repo.GetByID(context.Background(), 12345)
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepoPG_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, name := range []string{"alice", "bob"} {
		_, err := repo.Create(ctx, &domain.User{Username: name})
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
