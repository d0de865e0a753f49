package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"exercise-tracker-service/internal/adapter/cache"
	dbrepo "exercise-tracker-service/internal/adapter/db/postgres"
	ginhandler "exercise-tracker-service/internal/adapter/gin/handler"
	ginmiddleware "exercise-tracker-service/internal/adapter/gin/middleware"
	ginrouter "exercise-tracker-service/internal/adapter/gin/router"
	"exercise-tracker-service/internal/adapter/repository/cached"
	"exercise-tracker-service/internal/usecase/tracker"
)

// TrackerAPITestSuite exercises the full HTTP stack against an in-memory
// database and a miniredis-backed cache.
type TrackerAPITestSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
}

func (s *TrackerAPITestSuite) SetupTest() {
	logger := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&dbrepo.UserSchema{}, &dbrepo.ExerciseSchema{}))
	s.db = db

	mr := miniredis.RunT(s.T())
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	userCache := cache.NewRedisUserCache(redisClient, time.Minute, logger)

	userRepo := cached.NewCachedUserRepository(dbrepo.NewUserRepoPG(db, logger), userCache, logger)
	exerciseRepo := dbrepo.NewExerciseRepoPG(db, logger)

	uc := tracker.New(userRepo, exerciseRepo, logger)
	h := ginhandler.NewTrackerHandler(uc, logger)

	rateLimiter := ginmiddleware.NewRateLimiter(redisClient, ginmiddleware.RateLimiterConfig{
		RequestsPerSecond: 1000,
		BurstCapacity:     1000,
		Enabled:           true,
	}, logger)

	s.router = ginrouter.SetupRouter(h, rateLimiter, "", logger)
}

func (s *TrackerAPITestSuite) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TrackerAPITestSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (s *TrackerAPITestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (s *TrackerAPITestSuite) createUser(username string) int64 {
	w := s.postForm("/api/users", url.Values{"username": {username}})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp ginhandler.UserResponse
	s.decode(w, &resp)
	s.Require().Positive(resp.ID)
	return resp.ID
}

func (s *TrackerAPITestSuite) TestHealth() {
	w := s.get("/health")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "healthy")
}

func (s *TrackerAPITestSuite) TestCreateAndListUsers() {
	w := s.get("/api/users")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("[]", strings.TrimSpace(w.Body.String()))

	id := s.createUser("fcc_test")

	w = s.get("/api/users")
	s.Equal(http.StatusOK, w.Code)

	var users []ginhandler.UserResponse
	s.decode(w, &users)
	s.Require().Len(users, 1)
	s.Equal(id, users[0].ID)
	s.Equal("fcc_test", users[0].Username)
}

func (s *TrackerAPITestSuite) TestCreateUser_MissingUsername() {
	w := s.postForm("/api/users", url.Values{})
	s.Equal(http.StatusBadRequest, w.Code)

	var resp ginhandler.ErrorResponse
	s.decode(w, &resp)
	s.Equal("validation_error", resp.Error.Kind)
}

// Full create-user / add-exercise / query-log round trip.
func (s *TrackerAPITestSuite) TestExerciseLifecycle() {
	id := s.createUser("fcc_test")

	w := s.postForm(fmt.Sprintf("/api/users/%d/exercises", id), url.Values{
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"2023-01-15"},
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var ex ginhandler.ExerciseResponse
	s.decode(w, &ex)
	s.Equal(id, ex.ID)
	s.Equal("fcc_test", ex.Username)
	s.Equal("run", ex.Description)
	s.Equal(30, ex.Duration)
	s.Equal("Sun Jan 15 2023", ex.Date)

	w = s.get(fmt.Sprintf("/api/users/%d/logs", id))
	s.Require().Equal(http.StatusOK, w.Code)

	var logs ginhandler.LogsResponse
	s.decode(w, &logs)
	s.Equal(id, logs.ID)
	s.Equal("fcc_test", logs.Username)
	s.Equal(1, logs.Count)
	s.Require().Len(logs.Log, 1)
	s.Equal("run", logs.Log[0].Description)
	s.Equal(30, logs.Log[0].Duration)
	s.Equal("Sun Jan 15 2023", logs.Log[0].Date)
}

func (s *TrackerAPITestSuite) TestAddExercise_DefaultsDate() {
	id := s.createUser("fcc_test")

	w := s.postForm(fmt.Sprintf("/api/users/%d/exercises", id), url.Values{
		"description": {"walk"},
		"duration":    {"10"},
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var ex ginhandler.ExerciseResponse
	s.decode(w, &ex)
	s.Equal(time.Now().UTC().Format("Mon Jan 02 2006"), ex.Date)
}

func (s *TrackerAPITestSuite) TestAddExercise_UnknownUser_NothingWritten() {
	w := s.postForm("/api/users/9999/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
	})
	s.Equal(http.StatusNotFound, w.Code)

	var resp ginhandler.ErrorResponse
	s.decode(w, &resp)
	s.Equal("not_found", resp.Error.Kind)

	// The store must be untouched
	var count int64
	s.Require().NoError(s.db.Model(&dbrepo.ExerciseSchema{}).Count(&count).Error)
	s.Zero(count)
}

func (s *TrackerAPITestSuite) TestGetLogs_DateRangeFiltering() {
	id := s.createUser("fcc_test")
	for day := 1; day <= 5; day++ {
		w := s.postForm(fmt.Sprintf("/api/users/%d/exercises", id), url.Values{
			"description": {fmt.Sprintf("run %d", day)},
			"duration":    {"30"},
			"date":        {fmt.Sprintf("2023-06-0%d", day)},
		})
		s.Require().Equal(http.StatusOK, w.Code)
	}

	var logs ginhandler.LogsResponse

	w := s.get(fmt.Sprintf("/api/users/%d/logs?from=2023-06-02&to=2023-06-04", id))
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &logs)
	s.Equal(3, logs.Count)

	// Reversed range yields an empty log, not an error
	w = s.get(fmt.Sprintf("/api/users/%d/logs?from=2023-06-04&to=2023-06-02", id))
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &logs)
	s.Equal(0, logs.Count)
	s.Empty(logs.Log)
}

func (s *TrackerAPITestSuite) TestGetLogs_Limit() {
	id := s.createUser("fcc_test")
	for day := 1; day <= 5; day++ {
		w := s.postForm(fmt.Sprintf("/api/users/%d/exercises", id), url.Values{
			"description": {"session"},
			"duration":    {"15"},
			"date":        {fmt.Sprintf("2023-06-0%d", day)},
		})
		s.Require().Equal(http.StatusOK, w.Code)
	}

	var logs ginhandler.LogsResponse

	w := s.get(fmt.Sprintf("/api/users/%d/logs?limit=2", id))
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &logs)
	s.Equal(2, logs.Count)
	s.Len(logs.Log, 2)

	// Unparseable limit is ignored: all entries come back
	w = s.get(fmt.Sprintf("/api/users/%d/logs?limit=abc", id))
	s.Require().Equal(http.StatusOK, w.Code)
	s.decode(w, &logs)
	s.Equal(5, logs.Count)
}

func (s *TrackerAPITestSuite) TestGetLogs_UnknownUser() {
	w := s.get("/api/users/4242/logs")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TrackerAPITestSuite) TestGetLogs_InvalidFromDate() {
	id := s.createUser("fcc_test")

	w := s.get(fmt.Sprintf("/api/users/%d/logs?from=junk", id))
	s.Equal(http.StatusBadRequest, w.Code)

	var resp ginhandler.ErrorResponse
	s.decode(w, &resp)
	s.Equal("validation_error", resp.Error.Kind)
}

func TestTrackerAPITestSuite(t *testing.T) {
	suite.Run(t, new(TrackerAPITestSuite))
}
