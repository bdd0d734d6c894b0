package repository

import (
	"errors"
	"strconv"
	"time"

	"github.com/user/cinebook/internal/model"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Book 订座。单条原子插入，不做"先查后插"：
// 两个请求同时抢一个座位时，先查后插两边都能通过检查，
// 所以把唯一索引的冲突当作"已被预订"的权威信号。
// 冲突时事务回滚，返回 ErrSeatTaken，库里不会留下任何变更
func (r *TicketRepository) Book(seatRow string, seatColumn, movieID, showtimeID, userID int) (*model.Ticket, error) {
	ticket := &model.Ticket{
		SeatRow:    seatRow,
		SeatColumn: seatColumn,
		MovieID:    movieID,
		ShowtimeID: showtimeID,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(ticket).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}

	return ticket, nil
}

// TicketDetail 我的票页面用的联查结果行
type TicketDetail struct {
	TicketID  int    `json:"ticket_id"`
	MovieName string `json:"movie_name"`
	SeatRow   string `json:"seat_row"`
	SeatCol   int    `json:"seat_col"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ShowYear  int    `json:"show_year"`
	ShowMonth int    `json:"show_month"`
	ShowDay   int    `json:"show_day"`
}

// Seat 座位标签，如 "A1"
func (d *TicketDetail) Seat() string {
	return d.SeatRow + strconv.Itoa(d.SeatCol)
}

// ListByUser 用户已订的票，带电影和场次信息
func (r *TicketRepository) ListByUser(userID int) ([]TicketDetail, error) {
	var rows []TicketDetail
	err := r.db.Table("tickets").
		Select("tickets.id AS ticket_id, movies.name AS movie_name, "+
			"tickets.seat_row, tickets.seat_column AS seat_col, "+
			"schedules.start_time, schedules.end_time, "+
			"showtimes.show_year, showtimes.show_month, showtimes.show_day").
		Joins("JOIN showtimes ON showtimes.id = tickets.showtime_id").
		Joins("JOIN schedules ON schedules.id = showtimes.schedule_id").
		Joins("JOIN movies ON movies.id = tickets.movie_id").
		Where("tickets.user_id = ?", userID).
		Order("tickets.id ASC").
		Scan(&rows).Error
	return rows, err
}

// CountByShowtime 某场次已售座位数
func (r *TicketRepository) CountByShowtime(showtimeID int) (int64, error) {
	var count int64
	err := r.db.Model(&model.Ticket{}).Where("showtime_id = ?", showtimeID).Count(&count).Error
	return count, err
}
