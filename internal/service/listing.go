package service

import (
	"fmt"
	"time"

	"github.com/user/cinebook/internal/repository"
	"github.com/user/cinebook/internal/utils"
	"golang.org/x/sync/singleflight"
)

const homeCacheKey = "listing:home"

// ListingService 场次列表服务
// 只服务读路径（首页、按日期查询），订座写路径永远不读缓存
type ListingService struct {
	schedules *repository.ScheduleRepository
	dateCache *utils.ListingCache[[]repository.ShowtimeListing]
	sf        singleflight.Group
}

// NewListingService 创建场次列表服务
func NewListingService(schedules *repository.ScheduleRepository) *ListingService {
	return &ListingService{
		schedules: schedules,
		dateCache: utils.NewListingCache[[]repository.ShowtimeListing](128, 5*time.Minute),
		sf:        singleflight.Group{},
	}
}

// Home 首页列表，走全局缓存
func (s *ListingService) Home() ([]repository.ShowtimeListing, error) {
	if cached, ok := utils.CacheGet(homeCacheKey); ok {
		return cached.([]repository.ShowtimeListing), nil
	}

	// 使用 singleflight 避免并发请求重复查库
	val, err, _ := s.sf.Do(homeCacheKey, func() (interface{}, error) {
		rows, err := s.schedules.ListAll()
		if err != nil {
			return nil, err
		}
		utils.CacheSet(homeCacheKey, rows, 2*time.Minute)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return val.([]repository.ShowtimeListing), nil
}

// ByDate 按日期查询场次，LRU 缓存 + singleflight 去重
func (s *ListingService) ByDate(year, month, day int) ([]repository.ShowtimeListing, error) {
	key := fmt.Sprintf("listing:date:%04d-%02d-%02d", year, month, day)

	if rows, ok := s.dateCache.Get(key); ok {
		return rows, nil
	}

	val, err, _ := s.sf.Do(key, func() (interface{}, error) {
		rows, err := s.schedules.ListByDate(year, month, day)
		if err != nil {
			return nil, err
		}
		s.dateCache.Set(key, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}

	return val.([]repository.ShowtimeListing), nil
}

// ByMovie 指定电影的场次，不缓存（详情页流量低，缓存失效反而麻烦）
func (s *ListingService) ByMovie(movieID int) ([]repository.ShowtimeListing, error) {
	return s.schedules.ListByMovie(movieID)
}

// Invalidate 后台写入（电影/排片/场次）后清空列表缓存
func (s *ListingService) Invalidate() {
	utils.CacheDelete(homeCacheKey)
	s.dateCache.Clear()
}
