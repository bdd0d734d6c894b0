package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/user/cinebook/internal/config"
	"github.com/user/cinebook/internal/middleware"
	"github.com/user/cinebook/internal/model"
	"github.com/user/cinebook/internal/repository"
	"github.com/user/cinebook/internal/service"
)

// Handler HTTP 处理器
type Handler struct {
	Repos   *repository.Repositories
	Config  *config.Config
	Listing *service.ListingService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:   repos,
		Config:  cfg,
		Listing: service.NewListingService(repos.Schedule),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, data gin.H) gin.H {
	// 基础数据
	res := gin.H{
		"SiteName": h.Config.SiteName,
		"SiteUrl":  h.Config.SiteUrl,
		"Path":     c.Request.URL.Path,
		"LoggedIn": false,
	}

	// 注入用户信息
	session := sessions.Default(c)
	if userinfo := session.Get("userinfo"); userinfo != nil {
		if su, ok := userinfo.(model.SessionUser); ok {
			res["UserInfo"] = su
			res["LoggedIn"] = true
		}
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// ==================== 公开页面 ====================

// Index 根路径重定向到首页
func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/home")
}

// Home 首页：所有电影及其排片、场次
func (h *Handler) Home(c *gin.Context) {
	movieData, err := h.Listing.Home()
	if err != nil {
		movieData = []repository.ShowtimeListing{}
	}

	now := time.Now()
	c.HTML(http.StatusOK, "home.html", h.RenderData(c, gin.H{
		"Title":        h.Config.SiteName,
		"MovieData":    movieData,
		"CurrentYear":  now.Year(),
		"CurrentMonth": int(now.Month()),
		"CurrentDay":   now.Day(),
	}))
}

// MovieDetail 电影详情页：电影信息 + 全部场次
func (h *Handler) MovieDetail(c *gin.Context) {
	movieID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.render404(c)
		return
	}

	movie, err := h.Repos.Movie.FindByID(movieID)
	if err != nil || movie == nil {
		h.render404(c)
		return
	}

	showtimes, err := h.Listing.ByMovie(movieID)
	if err != nil || len(showtimes) == 0 {
		// 没有任何场次时原版直接 404
		h.render404(c)
		return
	}

	c.HTML(http.StatusOK, "movie.html", h.RenderData(c, gin.H{
		"Title":     movie.Name + " - " + h.Config.SiteName,
		"Movie":     movie,
		"MovieID":   movieID,
		"Showtimes": showtimes,
	}))
}

// Tickets 我的票页面（路由上已挂 RequireAuth）
func (h *Handler) Tickets(c *gin.Context) {
	userID := middleware.GetUserID(c)

	tickets, err := h.Repos.Ticket.ListByUser(userID)
	if err != nil {
		tickets = []repository.TicketDetail{}
	}

	c.HTML(http.StatusOK, "tickets.html", h.RenderData(c, gin.H{
		"Title":   "我的票 - " + h.Config.SiteName,
		"Tickets": tickets,
	}))
}

func (h *Handler) render404(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", h.RenderData(c, gin.H{
		"Title": "页面未找到 - " + h.Config.SiteName,
	}))
}

// ==================== 认证页面 ====================

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	// 如果已经登录，直接跳转到首页
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title":    "登录 - " + h.Config.SiteName,
		"Redirect": c.Query("redirect"),
	}))
}

// Login 登录处理
func (h *Handler) Login(c *gin.Context) {
	var form model.LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Validate() != nil {
		h.loginError(c, "邮箱或密码格式不正确")
		return
	}

	redirect := c.PostForm("redirect")
	if redirect == "" {
		redirect = "/home"
	}

	// 查找用户
	user, err := h.Repos.User.FindByEmail(form.Email)
	if err != nil || user == nil {
		h.loginError(c, "邮箱或密码错误")
		return
	}

	// 验证密码
	if !h.Repos.User.CheckPassword(user, form.Password) {
		h.loginError(c, "邮箱或密码错误")
		return
	}

	if err := h.establishSession(c, user); err != nil {
		h.loginError(c, "登录失败，请重试")
		return
	}

	c.Redirect(http.StatusFound, redirect)
}

func (h *Handler) loginError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "login.html", h.RenderData(c, gin.H{
		"Title": "登录 - " + h.Config.SiteName,
		"Error": msg,
	}))
}

// RegisterPage 注册页面
func (h *Handler) RegisterPage(c *gin.Context) {
	// 如果已经登录，直接跳转到首页
	if middleware.GetUserID(c) > 0 {
		c.Redirect(http.StatusFound, "/home")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
	}))
}

// Register 注册处理
func (h *Handler) Register(c *gin.Context) {
	var form model.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.registerError(c, "请填写完整的注册信息")
		return
	}

	if form.Password != form.ConfirmPassword {
		h.registerError(c, "两次输入的密码不一致")
		return
	}

	if err := form.Validate(); err != nil {
		h.registerError(c, "邮箱格式不正确，或密码长度不在 8-64 之间")
		return
	}

	// 创建用户，邮箱冲突由唯一索引裁决
	user, err := h.Repos.User.Create(form.Email, form.Password, false)
	if err == repository.ErrEmailTaken {
		h.registerError(c, "该邮箱已被注册")
		return
	}
	if err != nil {
		h.registerError(c, "注册失败，请重试")
		return
	}

	// 注册完成后直接登录
	if err := h.establishSession(c, user); err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	c.Redirect(http.StatusFound, "/home")
}

func (h *Handler) registerError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "register.html", h.RenderData(c, gin.H{
		"Title": "注册 - " + h.Config.SiteName,
		"Error": msg,
	}))
}

// Logout 登出
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)

	// 清理 Session
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/home")
}

// establishSession 设置 JWT Cookie 并把用户信息写入 Session
func (h *Handler) establishSession(c *gin.Context, user *model.User) error {
	token, err := middleware.GenerateToken(user.ID, user.Email, user.IsAdmin, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		return err
	}

	c.SetCookie("token", token, int(h.Config.JWTExpiry.Seconds()), "/", "", false, true)

	session := sessions.Default(c)
	session.Set("userinfo", model.SessionUser{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	return session.Save()
}
