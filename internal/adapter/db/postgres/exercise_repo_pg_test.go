package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	domain "exercise-tracker-service/internal/domain/tracker"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&UserSchema{}, &ExerciseSchema{})
	require.NoError(t, err)

	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedUser(t *testing.T, repo *UserRepoPG, username string) int64 {
	id, err := repo.Create(context.Background(), &domain.User{Username: username})
	require.NoError(t, err)
	return id
}

func TestExerciseRepoPG_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	userRepo := NewUserRepoPG(db, logger)
	repo := NewExerciseRepoPG(db, logger)
	ctx := context.Background()

	userID := seedUser(t, userRepo, "fcc_test")

	id, err := repo.Create(ctx, &domain.Exercise{
		UserID:      userID,
		Description: "run",
		Duration:    30,
		Date:        day(2023, time.January, 15),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.List(ctx, domain.LogFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "run", got[0].Description)
	assert.Equal(t, 30, got[0].Duration)
	assert.True(t, got[0].Date.Equal(day(2023, time.January, 15)))
}

func TestExerciseRepoPG_List_FiltersByUser(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	userRepo := NewUserRepoPG(db, logger)
	repo := NewExerciseRepoPG(db, logger)
	ctx := context.Background()

	alice := seedUser(t, userRepo, "alice")
	bob := seedUser(t, userRepo, "bob")

	_, err := repo.Create(ctx, &domain.Exercise{UserID: alice, Description: "run", Duration: 30, Date: day(2023, time.March, 1)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Exercise{UserID: bob, Description: "swim", Duration: 20, Date: day(2023, time.March, 1)})
	require.NoError(t, err)

	got, err := repo.List(ctx, domain.LogFilter{UserID: alice})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, alice, got[0].UserID)
}

func TestExerciseRepoPG_List_DateRange(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	userRepo := NewUserRepoPG(db, logger)
	repo := NewExerciseRepoPG(db, logger)
	ctx := context.Background()

	userID := seedUser(t, userRepo, "fcc_test")
	for d := 1; d <= 5; d++ {
		_, err := repo.Create(ctx, &domain.Exercise{
			UserID:      userID,
			Description: fmt.Sprintf("run %d", d),
			Duration:    10 * d,
			Date:        day(2023, time.June, d),
		})
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter domain.LogFilter
		want   int
	}{
		{"no bounds", domain.LogFilter{UserID: userID}, 5},
		{"from only, inclusive", domain.LogFilter{UserID: userID, From: day(2023, time.June, 3)}, 3},
		{"to only, inclusive", domain.LogFilter{UserID: userID, To: day(2023, time.June, 2)}, 2},
		{"closed interval", domain.LogFilter{UserID: userID, From: day(2023, time.June, 2), To: day(2023, time.June, 4)}, 3},
		{"from after to yields empty", domain.LogFilter{UserID: userID, From: day(2023, time.June, 4), To: day(2023, time.June, 2)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestExerciseRepoPG_List_Limit(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	userRepo := NewUserRepoPG(db, logger)
	repo := NewExerciseRepoPG(db, logger)
	ctx := context.Background()

	userID := seedUser(t, userRepo, "fcc_test")
	for d := 1; d <= 5; d++ {
		_, err := repo.Create(ctx, &domain.Exercise{
			UserID:      userID,
			Description: "walk",
			Duration:    5,
			Date:        day(2023, time.June, d),
		})
		require.NoError(t, err)
	}

	capped, err := repo.List(ctx, domain.LogFilter{UserID: userID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, capped, 2)

	// Zero limit means unlimited
	all, err := repo.List(ctx, domain.LogFilter{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestExerciseRepoPG_List_PreservesInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	logger := zaptest.NewLogger(t)
	userRepo := NewUserRepoPG(db, logger)
	repo := NewExerciseRepoPG(db, logger)
	ctx := context.Background()

	userID := seedUser(t, userRepo, "fcc_test")
	// Insert out of date order; listing applies no sort
	for _, d := range []int{3, 1, 2} {
		_, err := repo.Create(ctx, &domain.Exercise{
			UserID:      userID,
			Description: fmt.Sprintf("session %d", d),
			Duration:    d,
			Date:        day(2023, time.June, d),
		})
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, domain.LogFilter{UserID: userID})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "session 3", got[0].Description)
	assert.Equal(t, "session 1", got[1].Description)
	assert.Equal(t, "session 2", got[2].Description)
}
