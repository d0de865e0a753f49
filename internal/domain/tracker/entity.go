package tracker

import "time"

// User represents a tracked user in the system.
type User struct {
	ID       int64  // ID is the unique identifier for the user
	Username string // Username is the display name chosen at creation
}

// Exercise represents a single logged exercise entry belonging to a user.
type Exercise struct {
	ID          int64     // ID is the unique identifier for the entry
	UserID      int64     // UserID references the owning User
	Description string    // Description is free text describing the activity
	Duration    int       // Duration is the activity length in minutes
	Date        time.Time // Date is the calendar date of the activity (UTC midnight)
}

// LogFilter restricts an exercise listing to one user and an optional
// inclusive date range. A zero From or To disables that bound. Limit caps
// the number of returned entries; zero means unlimited.
type LogFilter struct {
	UserID int64
	From   time.Time
	To     time.Time
	Limit  int
}
