package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "exercise-tracker-service/internal/domain/tracker"
	pkgerrors "exercise-tracker-service/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// UserRepository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, SQLite) to be used interchangeably.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)     // Create a new user
	GetByID(ctx context.Context, id int64) (*domain.User, error)   // Retrieve user by ID; nil when absent
	List(ctx context.Context) ([]domain.User, error)               // List all users
}

// ExerciseRepository defines the interface for exercise data access operations.
type ExerciseRepository interface {
	Create(ctx context.Context, e *domain.Exercise) (int64, error)                   // Persist a new exercise entry
	List(ctx context.Context, filter domain.LogFilter) ([]domain.Exercise, error)    // List entries matching the filter
}

// Service implements the business logic for the exercise tracker.
// It provides a clean separation between the transport layer and data layer.
type Service struct {
	users     UserRepository      // Repository for user records
	exercises ExerciseRepository  // Repository for exercise records
	log       *zap.Logger         // Logger for structured logging
	validate  *validator.Validate // Validator for request validation
}

// New creates a new Service with the provided repositories and logger.
func New(users UserRepository, exercises ExerciseRepository, log *zap.Logger) *Service {
	return &Service{users: users, exercises: exercises, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a typed
// validation error with a human-readable message.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// CreateUser creates a new user after validating the request.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	s.log.Info("creating user", zap.String("username", in.Username))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := s.users.Create(ctx, &domain.User{Username: in.Username})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, pkgerrors.NewStoreError("failed to create user", err)
	}

	return &CreateUserResponse{ID: id, Username: in.Username}, nil
}

// ListUsers returns all users projected to their public fields.
// An empty store yields an empty slice, not an error.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	domainUsers, err := s.users.List(ctx)
	if err != nil {
		s.log.Error("failed to list users", zap.Error(err))
		return nil, pkgerrors.NewStoreError("failed to list users", err)
	}

	users := make([]UserSummary, len(domainUsers))
	for i, du := range domainUsers {
		users[i] = UserSummary{
			ID:       du.ID,
			Username: du.Username,
		}
	}

	return &ListUsersResponse{Users: users}, nil
}

// AddExercise logs an exercise for an existing user. The owning user is
// looked up first; nothing is written when the user does not exist. An
// omitted date resolves to today's calendar date.
func (s *Service) AddExercise(ctx context.Context, in AddExerciseRequest) (*AddExerciseResponse, error) {
	s.log.Info("adding exercise",
		zap.Int64("user_id", in.UserID),
		zap.String("description", in.Description),
		zap.Int("duration", in.Duration),
	)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := s.lookupUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	date, err := s.resolveDate(in.Date)
	if err != nil {
		return nil, err
	}

	entry := &domain.Exercise{
		UserID:      u.ID,
		Description: in.Description,
		Duration:    in.Duration,
		Date:        date,
	}
	if _, err := s.exercises.Create(ctx, entry); err != nil {
		s.log.Error("failed to create exercise", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewStoreError("failed to save exercise", err)
	}

	return &AddExerciseResponse{
		ID:          u.ID,
		Username:    u.Username,
		Description: entry.Description,
		Duration:    entry.Duration,
		Date:        domain.FormatDate(entry.Date),
	}, nil
}

// GetLogs builds a filtered, limited view of a user's exercise log.
// Both date bounds are inclusive and independently optional; a reversed
// range yields an empty log rather than an error.
func (s *Service) GetLogs(ctx context.Context, in GetLogsRequest) (*GetLogsResponse, error) {
	u, err := s.lookupUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	filter := domain.LogFilter{UserID: u.ID}
	if in.From != "" {
		from, err := domain.ParseDate(in.From)
		if err != nil {
			s.log.Warn("invalid from date", zap.String("from", in.From))
			return nil, pkgerrors.NewValidationError("from", err.Error())
		}
		filter.From = from
	}
	if in.To != "" {
		to, err := domain.ParseDate(in.To)
		if err != nil {
			s.log.Warn("invalid to date", zap.String("to", in.To))
			return nil, pkgerrors.NewValidationError("to", err.Error())
		}
		filter.To = to
	}
	if in.Limit > 0 {
		filter.Limit = in.Limit
	}

	entries, err := s.exercises.List(ctx, filter)
	if err != nil {
		s.log.Error("failed to list exercises", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewStoreError("failed to query exercise log", err)
	}

	log := make([]LogEntry, len(entries))
	for i, e := range entries {
		log[i] = LogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        domain.FormatDate(e.Date),
		}
	}

	return &GetLogsResponse{
		ID:       u.ID,
		Username: u.Username,
		Count:    len(log),
		Log:      log,
	}, nil
}

// lookupUser fetches a user by ID, mapping absence to a NotFoundError and
// store failures to a StoreError.
func (s *Service) lookupUser(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to look up user", zap.Int64("user_id", id), zap.Error(err))
		return nil, pkgerrors.NewStoreError("failed to look up user", err)
	}
	if u == nil {
		s.log.Warn("user not found", zap.Int64("user_id", id))
		return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user %d not found", id))
	}
	return u, nil
}

// resolveDate parses an optional ISO date, falling back to today.
func (s *Service) resolveDate(in string) (time.Time, error) {
	if in == "" {
		return domain.Today(), nil
	}
	date, err := domain.ParseDate(in)
	if err != nil {
		s.log.Warn("invalid exercise date", zap.String("date", in))
		return time.Time{}, pkgerrors.NewValidationError("date", err.Error())
	}
	return date, nil
}
