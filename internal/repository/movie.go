package repository

import (
	"errors"
	"time"

	"github.com/user/cinebook/internal/model"
	"gorm.io/gorm"
)

type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create 添加电影，整体包在事务里：
// 片名唯一索引冲突时回滚并返回 ErrMovieExists，不留下半成品数据
func (r *MovieRepository) Create(name string, duration int) (*model.Movie, error) {
	movie := &model.Movie{
		Name:      name,
		Duration:  duration,
		CreatedAt: time.Now(),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(movie).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMovieExists
		}
		return nil, err
	}

	return movie, nil
}

// FindByID 根据 ID 查找电影
func (r *MovieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// ListAll 获取所有电影（后台列表用）
func (r *MovieRepository) ListAll() ([]*model.Movie, error) {
	var movies []*model.Movie
	err := r.db.Order("id ASC").Find(&movies).Error
	return movies, err
}

// Count 获取电影总数
func (r *MovieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}
