package model

import (
	"fmt"
	"time"
)

// User 用户模型
type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email" gorm:"size:360;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// SessionUser 专门用于 Session 存储的用户信息结构
type SessionUser struct {
	ID      int
	Email   string
	IsAdmin bool
}

// Movie 电影模型
type Movie struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" gorm:"size:360;uniqueIndex"`
	Duration  int       `json:"duration" db:"duration"` // 时长（分钟）
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Schedule 排片模板（重复放映的时间段）
type Schedule struct {
	ID         int    `json:"id" db:"id"`
	MovieID    int    `json:"movie_id" db:"movie_id" gorm:"index"`
	StartTime  string `json:"start_time" db:"start_time"` // "HH:MM"
	EndTime    string `json:"end_time" db:"end_time"`
	RepeatDays int    `json:"repeat_days" db:"repeat_days"`
}

// Showtime 具体日期的场次，引用排片模板
// 同一模板同一天只允许一个场次
type Showtime struct {
	ID         int `json:"id" db:"id"`
	ScheduleID int `json:"schedule_id" db:"schedule_id" gorm:"uniqueIndex:idx_showtime_date"`
	ShowYear   int `json:"show_year" db:"show_year" gorm:"uniqueIndex:idx_showtime_date"`
	ShowMonth  int `json:"show_month" db:"show_month" gorm:"uniqueIndex:idx_showtime_date"`
	ShowDay    int `json:"show_day" db:"show_day" gorm:"uniqueIndex:idx_showtime_date"`
}

// Ticket 座位票，一张票对应一个场次的一个座位
// (seat_row, seat_column, showtime_id) 上的唯一索引是防止重复订座的最终保障：
// 并发抢同一个座位时由数据库裁决，最多只有一个请求提交成功
type Ticket struct {
	ID         int       `json:"id" db:"id"`
	SeatRow    string    `json:"seat_row" db:"seat_row" gorm:"size:4;uniqueIndex:idx_seat_showtime"`
	SeatColumn int       `json:"seat_column" db:"seat_column" gorm:"uniqueIndex:idx_seat_showtime"`
	MovieID    int       `json:"movie_id" db:"movie_id"`
	ShowtimeID int       `json:"showtime_id" db:"showtime_id" gorm:"uniqueIndex:idx_seat_showtime"`
	UserID     int       `json:"user_id" db:"user_id" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Seat 座位标签，如 "A1"
func (t *Ticket) Seat() string {
	return fmt.Sprintf("%s%d", t.SeatRow, t.SeatColumn)
}

// Theater 影院，预留表（当前版本单影院，不参与任何查询）
type Theater struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
