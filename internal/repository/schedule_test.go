package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByDateFiltersExactDay(t *testing.T) {
	repos := newTestRepos(t)

	movie, err := repos.Movie.Create("Dune", 155)
	require.NoError(t, err)
	schedule, err := repos.Schedule.CreateSchedule(movie.ID, "18:00", "20:35", 0)
	require.NoError(t, err)

	_, err = repos.Schedule.CreateShowtime(schedule.ID, 2024, 5, 1)
	require.NoError(t, err)
	_, err = repos.Schedule.CreateShowtime(schedule.ID, 2024, 5, 2)
	require.NoError(t, err)

	rows, err := repos.Schedule.ListByDate(2024, 5, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, movie.ID, rows[0].MovieID)
	assert.Equal(t, "Dune", rows[0].MovieName)
	assert.Equal(t, 155, rows[0].MovieDuration)
	assert.Equal(t, "18:00", rows[0].StartTime)
	assert.Equal(t, "20:35", rows[0].EndTime)
	assert.Equal(t, 2024, rows[0].ShowYear)
	assert.Equal(t, 5, rows[0].ShowMonth)
	assert.Equal(t, 1, rows[0].ShowDay)

	// 没有场次的日期返回空
	rows, err = repos.Schedule.ListByDate(2024, 6, 1)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestShowtimeDuplicateDateRejected(t *testing.T) {
	repos := newTestRepos(t)

	movie, err := repos.Movie.Create("Dune", 155)
	require.NoError(t, err)
	schedule, err := repos.Schedule.CreateSchedule(movie.ID, "18:00", "20:35", 0)
	require.NoError(t, err)

	_, err = repos.Schedule.CreateShowtime(schedule.ID, 2024, 5, 1)
	require.NoError(t, err)

	_, err = repos.Schedule.CreateShowtime(schedule.ID, 2024, 5, 1)
	assert.ErrorIs(t, err, ErrShowtimeExists)
}

func TestListByMovie(t *testing.T) {
	repos := newTestRepos(t)

	_, showtimeA := seedShowtime(t, repos, "Dune", 2024, 5, 1)
	movieB, _ := seedShowtime(t, repos, "Alien", 2024, 5, 1)

	rows, err := repos.Schedule.ListByMovie(movieB)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alien", rows[0].MovieName)
	assert.NotEqual(t, showtimeA, rows[0].ShowtimeID)
}

func TestListAllJoinsEverything(t *testing.T) {
	repos := newTestRepos(t)

	seedShowtime(t, repos, "Dune", 2024, 5, 1)
	seedShowtime(t, repos, "Alien", 2024, 5, 2)

	rows, err := repos.Schedule.ListAll()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
