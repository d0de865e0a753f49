package handler

import (
	"net/http"
	"strconv"

	"exercise-tracker-service/internal/usecase/tracker"
	pkgerrors "exercise-tracker-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TrackerHandler handles HTTP requests for user and exercise operations
type TrackerHandler struct {
	uc  tracker.Usecase
	log *zap.Logger
}

// NewTrackerHandler creates a new TrackerHandler instance
func NewTrackerHandler(uc tracker.Usecase, log *zap.Logger) *TrackerHandler {
	return &TrackerHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the request body for creating a user.
// Bodies may be form-encoded or JSON.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

// AddExerciseRequest represents the request body for logging an exercise
type AddExerciseRequest struct {
	Description string `form:"description" json:"description"`
	Duration    int    `form:"duration" json:"duration"`
	Date        string `form:"date" json:"date"`
}

// UserResponse represents the response for user data
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ExerciseResponse represents the response after logging an exercise.
// ID and Username identify the owning user, not the entry.
type ExerciseResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogEntryResponse represents one exercise entry in a log response
type LogEntryResponse struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogsResponse represents the summary-plus-entries log response
type LogsResponse struct {
	ID       int64              `json:"id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []LogEntryResponse `json:"log"`
}

// ErrorResponse is the single structured error shape used by every endpoint
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error kind and a human-readable message
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// CreateUser handles POST /api/users
func (h *TrackerHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		h.respondError(c, pkgerrors.NewValidationError("username", "malformed request body"))
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), tracker.CreateUserRequest{
		Username: req.Username,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:       resp.ID,
		Username: resp.Username,
	})
}

// ListUsers handles GET /api/users
func (h *TrackerHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:       u.ID,
			Username: u.Username,
		}
	}

	c.JSON(http.StatusOK, users)
}

// AddExercise handles POST /api/users/:id/exercises
func (h *TrackerHandler) AddExercise(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	var req AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warn("invalid add exercise request", zap.Int64("user_id", userID), zap.Error(err))
		h.respondError(c, pkgerrors.NewValidationError("", "malformed request body"))
		return
	}

	resp, err := h.uc.AddExercise(c.Request.Context(), tracker.AddExerciseRequest{
		UserID:      userID,
		Description: req.Description,
		Duration:    req.Duration,
		Date:        req.Date,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExerciseResponse{
		ID:          resp.ID,
		Username:    resp.Username,
		Description: resp.Description,
		Duration:    resp.Duration,
		Date:        resp.Date,
	})
}

// GetLogs handles GET /api/users/:id/logs
func (h *TrackerHandler) GetLogs(c *gin.Context) {
	userID, ok := h.userIDParam(c)
	if !ok {
		return
	}

	// Unparseable or non-positive limit is ignored: no cap applied
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	resp, err := h.uc.GetLogs(c.Request.Context(), tracker.GetLogsRequest{
		UserID: userID,
		From:   c.Query("from"),
		To:     c.Query("to"),
		Limit:  limit,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	log := make([]LogEntryResponse, len(resp.Log))
	for i, e := range resp.Log {
		log[i] = LogEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		}
	}

	c.JSON(http.StatusOK, LogsResponse{
		ID:       resp.ID,
		Username: resp.Username,
		Count:    resp.Count,
		Log:      log,
	})
}

// userIDParam parses the :id path parameter. An id that cannot name any
// user maps to the same not-found outcome as an unknown one.
func (h *TrackerHandler) userIDParam(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr))
		h.respondError(c, pkgerrors.NewNotFoundError("user", "user "+idStr+" not found"))
		return 0, false
	}
	return id, true
}

// respondError converts usecase errors to the structured error response
func (h *TrackerHandler) respondError(c *gin.Context, err error) {
	status := pkgerrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Internal detail stays in the logs
		msg = "internal server error"
	}

	c.JSON(status, ErrorResponse{
		Error: ErrorBody{
			Kind:    string(pkgerrors.KindOf(err)),
			Message: msg,
		},
	})
}
