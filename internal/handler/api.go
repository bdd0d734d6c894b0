package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/cinebook/internal/middleware"
	"github.com/user/cinebook/internal/model"
	"github.com/user/cinebook/internal/repository"
	"github.com/user/cinebook/internal/utils"
)

// GetMovies 按日期查询当天的电影场次
// GET /get_movies?date=YYYY-MM-DD
func (h *Handler) GetMovies(c *gin.Context) {
	selected, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.BadRequest(c, "日期格式应为 YYYY-MM-DD")
		return
	}

	rows, err := h.Listing.ByDate(selected.Year(), int(selected.Month()), selected.Day())
	if err != nil {
		log.Printf("[API] 按日期查询场次失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	movieData := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		movieData = append(movieData, gin.H{
			"movie_id":       row.MovieID,
			"movie_name":     row.MovieName,
			"movie_duration": row.MovieDuration,
			"start_time":     row.StartTime,
			"end_time":       row.EndTime,
		})
	}

	c.JSON(http.StatusOK, gin.H{"movies": movieData})
}

// SaveSeat 订座
// POST /save-seat，请求体 {"row", "column", "movie_id", "showtime_id"}
// 未登录返回 401 且不写任何行；座位冲突是幂等失败，不算服务端错误
func (h *Handler) SaveSeat(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		utils.Unauthorized(c, "")
		return
	}

	var req model.SeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数不完整")
		return
	}

	ticket, err := h.Repos.Ticket.Book(req.Row, req.Column, req.MovieID, req.ShowtimeID, userID)
	if err == repository.ErrSeatTaken {
		seat := req.Row + strconv.Itoa(req.Column)
		c.JSON(http.StatusOK, gin.H{
			"status":  "error",
			"message": "Seat " + seat + " is already booked.",
		})
		return
	}
	if err != nil {
		log.Printf("[API] 订座失败: %v", err)
		utils.InternalServerError(c, "")
		return
	}

	utils.OK(c, "Seat "+ticket.Seat()+" booked successfully!", gin.H{
		"movie_id":    ticket.MovieID,
		"showtime_id": ticket.ShowtimeID,
		"seat":        ticket.Seat(),
	})
}
