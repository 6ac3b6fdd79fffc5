package repository

import (
	"context"
	"fmt"

	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type defconRepository struct {
	db *gorm.DB
}

// NewDefconRepository 创建DefconRepository实例
func NewDefconRepository(db *gorm.DB) interfaces.DefconRepository {
	return &defconRepository{db: db}
}

// UpsertPlayerStats 按（球员+球队+赛季）唯一键批量upsert防守数据
func (r *defconRepository) UpsertPlayerStats(ctx context.Context, stats []*model.PlayerDefensiveStat) (int, error) {
	if len(stats) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "player_name"}, {Name: "team_name"}, {Name: "season"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "matches_played", "minutes_90s", "clearances", "blocks",
			"interceptions", "tackles_won", "tackles_attempted", "ball_recoveries",
			"minutes_played", "data_source", "last_updated",
		}),
	}).Create(&stats).Error; err != nil {
		return 0, fmt.Errorf("upsert球员防守数据失败: %w", err)
	}
	return len(stats), nil
}

// ListPlayerStats 按赛季读取全部球员防守数据（供球队级聚合）
func (r *defconRepository) ListPlayerStats(ctx context.Context, season string) ([]*model.PlayerDefensiveStat, error) {
	var stats []*model.PlayerDefensiveStat
	if err := r.db.WithContext(ctx).
		Where("season = ?", season).
		Order("team_name ASC, player_name ASC").
		Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("读取球员防守数据失败: %w", err)
	}
	return stats, nil
}

// ListTeamStats 按赛季读取球队级聚合，场均CBIT高的在前
func (r *defconRepository) ListTeamStats(ctx context.Context, season string) ([]*model.TeamDefconStat, error) {
	var stats []*model.TeamDefconStat
	if err := r.db.WithContext(ctx).
		Where("season = ?", season).
		Order("avg_cbit_per_game DESC").
		Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("读取球队DefCon数据失败: %w", err)
	}
	return stats, nil
}

// UpsertTeamStats 按（球队+赛季）唯一键批量upsert球队级聚合
func (r *defconRepository) UpsertTeamStats(ctx context.Context, stats []*model.TeamDefconStat) (int, error) {
	if len(stats) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "team_name"}, {Name: "season"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_cbit_actions", "total_cbitr_actions", "matches_played",
			"avg_cbit_per_game", "avg_cbitr_per_game", "last_updated",
		}),
	}).Create(&stats).Error; err != nil {
		return 0, fmt.Errorf("upsert球队DefCon数据失败: %w", err)
	}
	return len(stats), nil
}
