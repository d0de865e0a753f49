package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "exercise-tracker-service/internal/domain/tracker"
)

// ExerciseRepoPG implements the exercise repository using GORM.
type ExerciseRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewExerciseRepoPG creates a new instance of ExerciseRepoPG.
func NewExerciseRepoPG(db *gorm.DB, log *zap.Logger) *ExerciseRepoPG {
	return &ExerciseRepoPG{db: db, log: log}
}

// ExerciseSchema represents the database schema for the exercises table.
type ExerciseSchema struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"not null;index"` // References users.id
	Description string    `gorm:"not null"`
	Duration    int       `gorm:"not null"` // Minutes
	Date        time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for the ExerciseSchema model.
func (ExerciseSchema) TableName() string {
	return "exercises"
}

// Create inserts a new exercise entry into the database.
func (r *ExerciseRepoPG) Create(ctx context.Context, e *domain.Exercise) (int64, error) {
	if e == nil {
		return 0, errors.New("exercise cannot be nil")
	}

	model := ExerciseSchema{
		UserID:      e.UserID,
		Description: e.Description,
		Duration:    e.Duration,
		Date:        e.Date,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create exercise in db", zap.Error(err), zap.Int64("user_id", e.UserID))
		return 0, fmt.Errorf("failed to create exercise: %w", err)
	}

	r.log.Info("exercise created in db", zap.Int64("id", model.ID), zap.Int64("user_id", e.UserID))
	return model.ID, nil
}

// List retrieves exercise entries matching the filter. User equality is
// always applied; date bounds are inclusive and each optional. No explicit
// sort is applied, so results come back in store order.
func (r *ExerciseRepoPG) List(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if !filter.From.IsZero() {
		q = q.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("date <= ?", filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var models []ExerciseSchema
	if err := q.Find(&models).Error; err != nil {
		r.log.Error("failed to list exercises from db", zap.Error(err), zap.Int64("user_id", filter.UserID))
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}

	exercises := make([]domain.Exercise, len(models))
	for i, model := range models {
		exercises[i] = domain.Exercise{
			ID:          model.ID,
			UserID:      model.UserID,
			Description: model.Description,
			Duration:    model.Duration,
			Date:        model.Date.UTC(),
		}
	}

	return exercises, nil
}
