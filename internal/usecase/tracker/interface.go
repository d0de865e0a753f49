package tracker

import "context"

// Usecase defines the interface for exercise tracker business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	ListUsers(ctx context.Context) (*ListUsersResponse, error)
	AddExercise(ctx context.Context, in AddExerciseRequest) (*AddExerciseResponse, error)
	GetLogs(ctx context.Context, in GetLogsRequest) (*GetLogsResponse, error)
}
