package tracker

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Username string `validate:"required"`
}

// CreateUserResponse represents the response payload after creating a user.
type CreateUserResponse struct {
	ID       int64
	Username string
}

// UserSummary represents a user projected to its public fields.
type UserSummary struct {
	ID       int64
	Username string
}

// ListUsersResponse represents the response payload for user listing.
type ListUsersResponse struct {
	Users []UserSummary
}

// AddExerciseRequest represents the request payload for logging an exercise.
// Date is an optional ISO-8601 calendar date; empty means "today".
type AddExerciseRequest struct {
	UserID      int64  `validate:"required"`
	Description string `validate:"required"`
	Duration    int    `validate:"required"`
	Date        string
}

// AddExerciseResponse echoes the owning user's identity alongside the
// logged entry, matching the public API shape.
type AddExerciseResponse struct {
	ID          int64
	Username    string
	Description string
	Duration    int
	Date        string
}

// GetLogsRequest represents the request payload for querying a user's log.
// From and To are optional ISO-8601 calendar dates bounding the range
// inclusively. Limit caps the number of entries; zero or negative means
// unlimited.
type GetLogsRequest struct {
	UserID int64
	From   string
	To     string
	Limit  int
}

// LogEntry represents a single exercise projected for the log response.
type LogEntry struct {
	Description string
	Duration    int
	Date        string
}

// GetLogsResponse represents the summary-plus-entries log view.
type GetLogsResponse struct {
	ID       int64
	Username string
	Count    int
	Log      []LogEntry
}
