package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB 每个测试用独立的内存库，开启 TranslateError 以复用
// 生产路径上的唯一索引冲突翻译逻辑
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库串行访问，避免 sqlite 写锁竞争干扰测试
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db))
	return db
}

func newTestRepos(t *testing.T) *Repositories {
	t.Helper()
	return NewRepositories(newTestDB(t))
}

// seedShowtime 建一部电影、一条排片和一个场次，返回场次 ID
func seedShowtime(t *testing.T, repos *Repositories, movieName string, year, month, day int) (movieID, showtimeID int) {
	t.Helper()

	movie, err := repos.Movie.Create(movieName, 120)
	require.NoError(t, err)

	schedule, err := repos.Schedule.CreateSchedule(movie.ID, "18:00", "20:00", 0)
	require.NoError(t, err)

	showtime, err := repos.Schedule.CreateShowtime(schedule.ID, year, month, day)
	require.NoError(t, err)

	return movie.ID, showtime.ID
}
