package handler_test

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinebook/internal/config"
	"github.com/user/cinebook/internal/handler"
	"github.com/user/cinebook/internal/middleware"
	"github.com/user/cinebook/internal/model"
	"github.com/user/cinebook/internal/repository"
	"github.com/user/cinebook/internal/router"
	"github.com/user/cinebook/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gob.Register(model.SessionUser{})
}

func newTestServer(t *testing.T) (*gin.Engine, *repository.Repositories) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.InitCache()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	repos := repository.NewRepositories(db)
	cfg := &config.Config{
		Env:       "test",
		AppSecret: testSecret,
		JWTExpiry: time.Hour,
		SiteName:  "GoldenEagle Cinema",
	}

	r := gin.New()
	store := cookie.NewStore([]byte(cfg.AppSecret))
	r.Use(sessions.Sessions("mysession", store))

	h := handler.NewHandler(repos, cfg)
	router.RegisterRoutes(r, h)

	return r, repos
}

// seedShowtime 建一部电影、一条排片和一个场次
func seedShowtime(t *testing.T, repos *repository.Repositories, movieName string, year, month, day int) (movieID, showtimeID int) {
	t.Helper()

	movie, err := repos.Movie.Create(movieName, 120)
	require.NoError(t, err)
	schedule, err := repos.Schedule.CreateSchedule(movie.ID, "18:00", "20:00", 0)
	require.NoError(t, err)
	showtime, err := repos.Schedule.CreateShowtime(schedule.ID, year, month, day)
	require.NoError(t, err)

	return movie.ID, showtime.ID
}

func withAuth(t *testing.T, req *http.Request, userID int, email string) {
	t.Helper()
	token, err := middleware.GenerateToken(userID, email, false, testSecret, time.Hour)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIndexRedirectsHome(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))
}

func TestSaveSeatUnauthenticated(t *testing.T) {
	r, repos := newTestServer(t)
	movieID, showtimeID := seedShowtime(t, repos, "Dune", 2024, 5, 1)

	payload := fmt.Sprintf(`{"row":"A","column":1,"movie_id":%d,"showtime_id":%d}`, movieID, showtimeID)
	req := httptest.NewRequest(http.MethodPost, "/save-seat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// 未登录拒绝，且不写任何行
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	count, err := repos.Ticket.CountByShowtime(showtimeID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSaveSeatBooksThenRejectsRepeat(t *testing.T) {
	r, repos := newTestServer(t)
	movieID, showtimeID := seedShowtime(t, repos, "Dune", 2024, 5, 1)

	user, err := repos.User.Create("alice@example.com", "secret-password", false)
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"row":"A","column":1,"movie_id":%d,"showtime_id":%d}`, movieID, showtimeID)

	// 第一次订座成功
	req := httptest.NewRequest(http.MethodPost, "/save-seat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	withAuth(t, req, user.ID, user.Email)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "A1", body["seat"])
	assert.EqualValues(t, movieID, body["movie_id"])
	assert.EqualValues(t, showtimeID, body["showtime_id"])

	// 同一座位再订一次，幂等失败
	req = httptest.NewRequest(http.MethodPost, "/save-seat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	withAuth(t, req, user.ID, user.Email)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body = decodeJSON(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "already booked")

	count, err := repos.Ticket.CountByShowtime(showtimeID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestSaveSeatRejectsBadBody(t *testing.T) {
	r, repos := newTestServer(t)

	user, err := repos.User.Create("alice@example.com", "secret-password", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/save-seat", strings.NewReader(`{"row":"A"}`))
	req.Header.Set("Content-Type", "application/json")
	withAuth(t, req, user.ID, user.Email)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMoviesFiltersByDate(t *testing.T) {
	r, repos := newTestServer(t)

	seedShowtime(t, repos, "Dune", 2024, 5, 1)
	seedShowtime(t, repos, "Alien", 2024, 5, 2)

	req := httptest.NewRequest(http.MethodGet, "/get_movies?date=2024-05-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)

	movies, ok := body["movies"].([]interface{})
	require.True(t, ok)
	require.Len(t, movies, 1)

	entry := movies[0].(map[string]interface{})
	assert.Equal(t, "Dune", entry["movie_name"])
	assert.EqualValues(t, 120, entry["movie_duration"])
	assert.Equal(t, "18:00", entry["start_time"])
	assert.Equal(t, "20:00", entry["end_time"])
	assert.NotNil(t, entry["movie_id"])
}

func TestGetMoviesRejectsBadDate(t *testing.T) {
	r, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/get_movies?date=not-a-date", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterHappyPath(t *testing.T) {
	r, repos := newTestServer(t)

	form := url.Values{}
	form.Set("email", "alice@example.com")
	form.Set("password", "secret-password")
	form.Set("confirm_password", "secret-password")

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))

	user, err := repos.User.FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.IsAdmin)
	assert.True(t, repos.User.CheckPassword(user, "secret-password"))
}

func TestLoginHappyPath(t *testing.T) {
	r, repos := newTestServer(t)

	_, err := repos.User.Create("alice@example.com", "secret-password", false)
	require.NoError(t, err)

	form := url.Values{}
	form.Set("email", "alice@example.com")
	form.Set("password", "secret-password")

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/home", w.Header().Get("Location"))

	// 登录后应带上 JWT Cookie
	var tokenSet bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" && c.Value != "" {
			tokenSet = true
		}
	}
	assert.True(t, tokenSet)
}

func TestAdminRequiresAdminFlag(t *testing.T) {
	r, repos := newTestServer(t)

	user, err := repos.User.Create("alice@example.com", "secret-password", false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin", strings.NewReader("movie_name=Dune&movie_duration=155"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	withAuth(t, req, user.ID, user.Email)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	count, err := repos.Movie.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
