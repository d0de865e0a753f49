package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "exercise-tracker-service/internal/domain/tracker"
)

// UserRepoPG implements the user repository using GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"` // Unique identifier with auto-increment
	Username string `gorm:"not null"`                 // Display name (required, duplicates permitted)
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Create inserts a new user into the database.
func (r *UserRepoPG) Create(ctx context.Context, u *domain.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Username: u.Username,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("username", u.Username))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a user by their unique ID. Returns nil without error
// when no such user exists.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &domain.User{
		ID:       model.ID,
		Username: model.Username,
	}, nil
}

// List retrieves all users from the database.
func (r *UserRepoPG) List(ctx context.Context) ([]domain.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]domain.User, len(models))
	for i, model := range models {
		users[i] = domain.User{
			ID:       model.ID,
			Username: model.Username,
		}
	}

	return users, nil
}
