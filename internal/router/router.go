package router

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"
	"github.com/user/cinebook/internal/handler"
	"github.com/user/cinebook/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	// 所有路由都先尝试识别登录用户
	r.Use(middleware.OptionalAuth(h.Config.AppSecret))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ==================== 公开页面 ====================
	r.GET("/", h.Index)
	r.GET("/home", h.Home)
	r.GET("/movie/:id", h.MovieDetail)

	// ==================== 认证页面 ====================
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/logout", h.Logout)

	// ==================== JSON API ====================
	r.GET("/get_movies", h.GetMovies)
	r.POST("/save-seat", h.SaveSeat)

	// ==================== 需要登录的页面 ====================
	tickets := r.Group("/tickets")
	tickets.Use(middleware.RequireAuth(h.Config.AppSecret))
	{
		tickets.GET("", h.Tickets)
	}

	// ==================== 管理后台 ====================
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuth(h.Config.AppSecret))
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("", h.AdminPage)
		admin.POST("", h.AdminMovieCreate)
		admin.POST("/schedule", h.AdminScheduleCreate)
		admin.POST("/showtime", h.AdminShowtimeCreate)
	}
}

// LoadTemplates 使用 multitemplate 加载模板，解决模板继承问题
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	// 获取布局和局部模板
	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	partials, err := filepath.Glob(templatesDir + "/partials/*.html")
	if err != nil {
		panic(err)
	}

	// 组装模板文件列表
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, partials...)
		files = append(files, view)
		return files
	}

	// 模板函数
	funcMap := template.FuncMap{
		"seatLabel": func(row string, col int) string {
			return fmt.Sprintf("%s%d", row, col)
		},
		"showDate": func(year, month, day int) string {
			return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		},
	}

	// 注册所有页面模板
	pages := []string{
		"home", "movie", "tickets",
		"login", "register",
		"admin", "404",
	}

	for _, page := range pages {
		viewPath := templatesDir + "/pages/" + page + ".html"
		r.AddFromFilesFuncs(page+".html", funcMap, assemble(viewPath)...)
	}

	return r
}
