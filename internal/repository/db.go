package repository

import (
	"fmt"

	"github.com/user/cinebook/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接并建表
func InitDB(databaseURL string) (*gorm.DB, error) {
	// TranslateError 让各方言的唯一索引冲突统一翻译为 gorm.ErrDuplicatedKey，
	// 订座、注册等写路径依赖这个信号
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// Migrate 建表并创建唯一索引（含订座依赖的座位唯一索引）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Schedule{},
		&model.Showtime{},
		&model.Ticket{},
		&model.Theater{},
	)
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Movie    *MovieRepository
	Schedule *ScheduleRepository
	Ticket   *TicketRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Movie:    NewMovieRepository(db),
		Schedule: NewScheduleRepository(db),
		Ticket:   NewTicketRepository(db),
	}
}
