package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/cinebook/internal/model"
	"github.com/user/cinebook/internal/repository"
)

// ==================== 管理后台 ====================

// AdminPage 后台页面：添加电影表单 + 现有电影列表
func (h *Handler) AdminPage(c *gin.Context) {
	h.renderAdmin(c, gin.H{})
}

// AdminMovieCreate 添加电影
// 片名重复时事务回滚，电影表保持原样，只给用户一条提示
func (h *Handler) AdminMovieCreate(c *gin.Context) {
	var form model.MovieForm
	if err := c.ShouldBind(&form); err != nil || form.Validate() != nil {
		h.renderAdmin(c, gin.H{"Error": "片名不能为空，时长必须大于 0"})
		return
	}

	_, err := h.Repos.Movie.Create(form.Name, form.Duration)
	if err == repository.ErrMovieExists {
		h.renderAdmin(c, gin.H{"Error": "电影已存在或发生错误"})
		return
	}
	if err != nil {
		log.Printf("[Admin] 添加电影失败: %v", err)
		h.renderAdmin(c, gin.H{"Error": "电影已存在或发生错误"})
		return
	}

	h.Listing.Invalidate()
	c.Redirect(http.StatusFound, "/admin")
}

// AdminScheduleCreate 为电影添加排片模板
func (h *Handler) AdminScheduleCreate(c *gin.Context) {
	var form model.ScheduleForm
	if err := c.ShouldBind(&form); err != nil || form.Validate() != nil {
		h.renderAdmin(c, gin.H{"Error": "排片信息不完整"})
		return
	}

	movie, err := h.Repos.Movie.FindByID(form.MovieID)
	if err != nil || movie == nil {
		h.renderAdmin(c, gin.H{"Error": "电影不存在"})
		return
	}

	if _, err := h.Repos.Schedule.CreateSchedule(form.MovieID, form.StartTime, form.EndTime, form.RepeatDays); err != nil {
		log.Printf("[Admin] 添加排片失败: %v", err)
		h.renderAdmin(c, gin.H{"Error": "添加排片失败"})
		return
	}

	h.Listing.Invalidate()
	c.Redirect(http.StatusFound, "/admin")
}

// AdminShowtimeCreate 为排片添加具体日期的场次
func (h *Handler) AdminShowtimeCreate(c *gin.Context) {
	var form model.ShowtimeForm
	if err := c.ShouldBind(&form); err != nil || form.Validate() != nil {
		h.renderAdmin(c, gin.H{"Error": "场次信息不完整"})
		return
	}

	schedule, err := h.Repos.Schedule.FindScheduleByID(form.ScheduleID)
	if err != nil || schedule == nil {
		h.renderAdmin(c, gin.H{"Error": "排片不存在"})
		return
	}

	_, err = h.Repos.Schedule.CreateShowtime(form.ScheduleID, form.ShowYear, form.ShowMonth, form.ShowDay)
	if err == repository.ErrShowtimeExists {
		h.renderAdmin(c, gin.H{"Error": "该排片在这一天已有场次"})
		return
	}
	if err != nil {
		log.Printf("[Admin] 添加场次失败: %v", err)
		h.renderAdmin(c, gin.H{"Error": "添加场次失败"})
		return
	}

	h.Listing.Invalidate()
	c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) renderAdmin(c *gin.Context, data gin.H) {
	movies, err := h.Repos.Movie.ListAll()
	if err != nil {
		movies = []*model.Movie{}
	}

	res := gin.H{
		"Title":  "管理后台 - " + h.Config.SiteName,
		"Movies": movies,
	}
	for k, v := range data {
		res[k] = v
	}

	c.HTML(http.StatusOK, "admin.html", h.RenderData(c, res))
}
