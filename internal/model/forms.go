package model

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// RegisterForm 注册表单
type RegisterForm struct {
	Email           string `form:"email" validate:"required,email,max=360"`
	Password        string `form:"password" validate:"required,min=8,max=64"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// Validate 校验注册表单
func (f *RegisterForm) Validate() error {
	return validate.Struct(f)
}

// LoginForm 登录表单
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required,min=8,max=64"`
}

// Validate 校验登录表单
func (f *LoginForm) Validate() error {
	return validate.Struct(f)
}

// MovieForm 后台添加电影表单
type MovieForm struct {
	Name     string `form:"movie_name" validate:"required,min=1,max=360"`
	Duration int    `form:"movie_duration" validate:"required,gt=0"` // 分钟
}

// Validate 校验电影表单
func (f *MovieForm) Validate() error {
	return validate.Struct(f)
}

// ScheduleForm 后台添加排片表单
type ScheduleForm struct {
	MovieID    int    `form:"movie_id" validate:"required,gt=0"`
	StartTime  string `form:"start_time" validate:"required,len=5"` // "HH:MM"
	EndTime    string `form:"end_time" validate:"required,len=5"`
	RepeatDays int    `form:"repeat_days" validate:"gte=0"`
}

// Validate 校验排片表单
func (f *ScheduleForm) Validate() error {
	return validate.Struct(f)
}

// ShowtimeForm 后台添加场次表单
type ShowtimeForm struct {
	ScheduleID int `form:"schedule_id" validate:"required,gt=0"`
	ShowYear   int `form:"show_year" validate:"required,gte=2000"`
	ShowMonth  int `form:"show_month" validate:"required,gte=1,lte=12"`
	ShowDay    int `form:"show_day" validate:"required,gte=1,lte=31"`
}

// Validate 校验场次表单
func (f *ShowtimeForm) Validate() error {
	return validate.Struct(f)
}

// SeatRequest 订座接口的 JSON 请求体
type SeatRequest struct {
	Row        string `json:"row" binding:"required,alpha,max=4"`
	Column     int    `json:"column" binding:"required,gt=0"`
	MovieID    int    `json:"movie_id" binding:"required,gt=0"`
	ShowtimeID int    `json:"showtime_id" binding:"required,gt=0"`
}
