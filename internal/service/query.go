package service

import (
	"context"
	"errors"
	"fmt"

	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"
	"FPLSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrPlayerNotFound 球员不存在
var ErrPlayerNotFound = errors.New("球员不存在")

// QueryService 面向前端的只读查询服务
type QueryService struct {
	repo       repository.QueryRepository
	defconRepo interfaces.DefconRepository
	logger     *logrus.Logger
}

// NewQueryService 创建 QueryService
func NewQueryService(repo repository.QueryRepository, defconRepo interfaces.DefconRepository, logger *logrus.Logger) *QueryService {
	return &QueryService{
		repo:       repo,
		defconRepo: defconRepo,
		logger:     logger,
	}
}

// PlayerListResult 球员列表返回
type PlayerListResult struct {
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
	Total    int64                  `json:"total"`
	Items    []*model.PlayerCurrent `json:"items"`
}

// PlayerDetail 球员详情：当前快照 + 最近变更流水
type PlayerDetail struct {
	Player        *model.PlayerCurrent  `json:"player"`
	RecentChanges []*model.PlayerChange `json:"recent_changes"`
}

// ChangeListResult 变更流水列表返回
type ChangeListResult struct {
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Total    int64                 `json:"total"`
	Items    []*model.PlayerChange `json:"items"`
}

// PriceChangeListResult 身价变动列表返回
type PriceChangeListResult struct {
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
	Total    int64                `json:"total"`
	Items    []*model.PriceChange `json:"items"`
}

// ListPlayers 按条件分页返回球员列表
func (s *QueryService) ListPlayers(ctx context.Context, filter repository.PlayerFilter, page, pageSize int) (*PlayerListResult, error) {
	players, total, err := s.repo.ListPlayers(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	if players == nil {
		players = []*model.PlayerCurrent{}
	}
	return &PlayerListResult{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    players,
	}, nil
}

// GetPlayerDetail 球员详情，附带最近20条变更流水
func (s *QueryService) GetPlayerDetail(ctx context.Context, playerID int) (*PlayerDetail, error) {
	player, err := s.repo.GetPlayerByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("查询球员失败: %w", err)
	}

	changes, err := s.repo.ListChangesByPlayer(ctx, playerID, 20)
	if err != nil {
		// 详情主体可用时流水查询失败只降级，不整体报错
		s.logger.WithError(err).WithField("player_id", playerID).Warn("查询球员变更流水失败")
		changes = []*model.PlayerChange{}
	}

	return &PlayerDetail{
		Player:        player,
		RecentChanges: changes,
	}, nil
}

// ListChanges 按条件分页返回变更流水
func (s *QueryService) ListChanges(ctx context.Context, filter repository.ChangeFilter, page, pageSize int) (*ChangeListResult, error) {
	changes, total, err := s.repo.ListChanges(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = []*model.PlayerChange{}
	}
	return &ChangeListResult{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    changes,
	}, nil
}

// ListPriceChanges 按条件分页返回身价变动明细
func (s *QueryService) ListPriceChanges(ctx context.Context, filter repository.PriceChangeFilter, page, pageSize int) (*PriceChangeListResult, error) {
	changes, total, err := s.repo.ListPriceChanges(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	if changes == nil {
		changes = []*model.PriceChange{}
	}
	return &PriceChangeListResult{
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Items:    changes,
	}, nil
}

// ListUpdates 最近的运行审计记录
func (s *QueryService) ListUpdates(ctx context.Context, updateType string, limit int) ([]*model.DataUpdate, error) {
	updates, err := s.repo.ListUpdates(ctx, updateType, limit)
	if err != nil {
		return nil, err
	}
	if updates == nil {
		updates = []*model.DataUpdate{}
	}
	return updates, nil
}

// ListDefconPlayers 按赛季返回球员防守数据
func (s *QueryService) ListDefconPlayers(ctx context.Context, season string) ([]*model.PlayerDefensiveStat, error) {
	stats, err := s.defconRepo.ListPlayerStats(ctx, season)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []*model.PlayerDefensiveStat{}
	}
	return stats, nil
}

// ListDefconTeams 按赛季返回球队级DefCon聚合（场均CBIT降序）
func (s *QueryService) ListDefconTeams(ctx context.Context, season string) ([]*model.TeamDefconStat, error) {
	stats, err := s.defconRepo.ListTeamStats(ctx, season)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []*model.TeamDefconStat{}
	}
	return stats, nil
}
