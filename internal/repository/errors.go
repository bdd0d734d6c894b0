// Package repository 的哨兵错误。上层 handler 依赖这些值区分
// 可恢复的业务冲突（座位被占、邮箱/片名重复）和真正的存储故障：
// 前者渲染成用户可见的提示，后者回滚事务并返回通用错误。
package repository

import "errors"

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// ErrEmailTaken 邮箱已被注册
var ErrEmailTaken = errors.New("email already registered")

// ErrMovieExists 片名已存在
var ErrMovieExists = errors.New("movie already exists")

// ErrShowtimeExists 同一排片同一天的场次已存在
var ErrShowtimeExists = errors.New("showtime already exists")

// ErrSeatTaken 座位已被预订。
// 由 (seat_row, seat_column, showtime_id) 唯一索引的冲突翻译而来，
// 是"已被预订"的权威信号，应用层不做预检查
var ErrSeatTaken = errors.New("seat already booked")
