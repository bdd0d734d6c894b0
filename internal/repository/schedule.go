package repository

import (
	"errors"

	"github.com/user/cinebook/internal/model"
	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ShowtimeListing 首页/日期查询用的联查结果行
type ShowtimeListing struct {
	MovieID       int    `json:"movie_id"`
	MovieName     string `json:"movie_name"`
	MovieDuration int    `json:"movie_duration"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	ShowtimeID    int    `json:"showtime_id"`
	ShowYear      int    `json:"show_year"`
	ShowMonth     int    `json:"show_month"`
	ShowDay       int    `json:"show_day"`
}

// CreateSchedule 创建排片模板
func (r *ScheduleRepository) CreateSchedule(movieID int, startTime, endTime string, repeatDays int) (*model.Schedule, error) {
	schedule := &model.Schedule{
		MovieID:    movieID,
		StartTime:  startTime,
		EndTime:    endTime,
		RepeatDays: repeatDays,
	}

	if err := r.db.Create(schedule).Error; err != nil {
		return nil, err
	}

	return schedule, nil
}

// CreateShowtime 创建具体日期的场次
// 同一排片同一天重复创建由唯一索引拒绝，返回 ErrShowtimeExists
func (r *ScheduleRepository) CreateShowtime(scheduleID, year, month, day int) (*model.Showtime, error) {
	showtime := &model.Showtime{
		ScheduleID: scheduleID,
		ShowYear:   year,
		ShowMonth:  month,
		ShowDay:    day,
	}

	if err := r.db.Create(showtime).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrShowtimeExists
		}
		return nil, err
	}

	return showtime, nil
}

// FindScheduleByID 根据 ID 查找排片模板
func (r *ScheduleRepository) FindScheduleByID(id int) (*model.Schedule, error) {
	var schedule model.Schedule
	err := r.db.First(&schedule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

// listingQuery 电影-排片-场次三表联查的公共部分
func (r *ScheduleRepository) listingQuery() *gorm.DB {
	return r.db.Table("movies").
		Select("movies.id AS movie_id, movies.name AS movie_name, movies.duration AS movie_duration, "+
			"schedules.start_time, schedules.end_time, "+
			"showtimes.id AS showtime_id, showtimes.show_year, showtimes.show_month, showtimes.show_day").
		Joins("JOIN schedules ON schedules.movie_id = movies.id").
		Joins("JOIN showtimes ON showtimes.schedule_id = schedules.id")
}

// ListAll 首页列表：所有电影及其排片、场次
func (r *ScheduleRepository) ListAll() ([]ShowtimeListing, error) {
	var rows []ShowtimeListing
	err := r.listingQuery().
		Order("movies.id ASC, showtimes.id ASC").
		Scan(&rows).Error
	return rows, err
}

// ListByDate 按日期过滤场次，只返回 (year, month, day) 完全相等的行
func (r *ScheduleRepository) ListByDate(year, month, day int) ([]ShowtimeListing, error) {
	var rows []ShowtimeListing
	err := r.listingQuery().
		Where("showtimes.show_year = ? AND showtimes.show_month = ? AND showtimes.show_day = ?", year, month, day).
		Order("schedules.start_time ASC").
		Scan(&rows).Error
	return rows, err
}

// ListByMovie 电影详情页：指定电影的全部场次
func (r *ScheduleRepository) ListByMovie(movieID int) ([]ShowtimeListing, error) {
	var rows []ShowtimeListing
	err := r.listingQuery().
		Where("movies.id = ?", movieID).
		Order("showtimes.show_year ASC, showtimes.show_month ASC, showtimes.show_day ASC, schedules.start_time ASC").
		Scan(&rows).Error
	return rows, err
}
