package profile

import (
	"context"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"gorm.io/gorm"
)

// 排行榜分段
const (
	BandGold   = "gold"
	BandSilver = "silver"
	BandBronze = "bronze"
)

// 默认和最大排行榜条数
const (
	DefaultLeaderboardLimit = 50
	MaxLeaderboardLimit     = 500
)

var bandColors = map[string]string{
	BandGold:   "#FFD700",
	BandSilver: "#C0C0C0",
	BandBronze: "#CD7F32",
}

// RankInfo 用户在排行榜中的名次
type RankInfo struct {
	UserID string `json:"userId"`
	Rank   int    `json:"rank"` // 从1开始
	XP     int    `json:"xp"`
	Band   string `json:"band"`
	Color  string `json:"color"`
}

// Entry 排行榜条目
type Entry struct {
	RankInfo
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// BandFor 名次对应的分段：前三名 gold，4到10名 silver，其余 bronze
func BandFor(rank int) (band, color string) {
	switch {
	case rank >= 1 && rank <= 3:
		band = BandGold
	case rank >= 4 && rank <= 10:
		band = BandSilver
	default:
		band = BandBronze
	}
	return band, bandColors[band]
}

// Rank 在已按积分降序排列的资料列表中查找用户名次
// 用户不在列表中时返回 false
func Rank(sorted []database.Profile, userID string) (RankInfo, bool) {
	for i, p := range sorted {
		if p.UserID != userID {
			continue
		}
		band, color := BandFor(i + 1)
		return RankInfo{
			UserID: userID,
			Rank:   i + 1,
			XP:     p.XP,
			Band:   band,
			Color:  color,
		}, true
	}
	return RankInfo{}, false
}

// LeaderboardService 排行榜服务接口
type LeaderboardService interface {
	// Leaderboard 积分降序，同分时先注册者在前
	Leaderboard(ctx context.Context, limit int) ([]Entry, error)
	// RankOf 用户在全站中的名次
	RankOf(ctx context.Context, userID string) (RankInfo, error)
}

type leaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService 创建排行榜服务实例
func NewLeaderboardService(db *gorm.DB) LeaderboardService {
	return &leaderboardService{db: db}
}

func (s *leaderboardService) sorted(ctx context.Context, limit int) ([]database.Profile, error) {
	query := s.db.WithContext(ctx).Order("xp DESC").Order("created_at ASC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var profiles []database.Profile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return profiles, nil
}

func (s *leaderboardService) Leaderboard(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}

	profiles, err := s.sorted(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(profiles))
	for i, p := range profiles {
		band, color := BandFor(i + 1)
		entries = append(entries, Entry{
			RankInfo: RankInfo{UserID: p.UserID, Rank: i + 1, XP: p.XP, Band: band, Color: color},
			Name:     p.Name,
			ImageURL: p.ImageURL,
		})
	}
	return entries, nil
}

func (s *leaderboardService) RankOf(ctx context.Context, userID string) (RankInfo, error) {
	profiles, err := s.sorted(ctx, 0)
	if err != nil {
		return RankInfo{}, err
	}
	info, ok := Rank(profiles, userID)
	if !ok {
		return RankInfo{}, apperrors.ErrProfileNotFoundError
	}
	return info, nil
}
