package repository

import (
	"context"
	"fmt"

	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type playerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository 创建PlayerRepository实例
func NewPlayerRepository(db *gorm.DB) interfaces.PlayerRepository {
	return &playerRepository{db: db}
}

// ListCurrent 读取上一快照全量（表为空返回空切片，不报错）
func (r *playerRepository) ListCurrent(ctx context.Context) ([]*model.PlayerCurrent, error) {
	var players []*model.PlayerCurrent
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&players).Error; err != nil {
		return nil, fmt.Errorf("读取当前快照失败: %w", err)
	}
	return players, nil
}

// UpsertPlayers 整表按主键批量upsert（每个球员ID至多一行的不变量由主键冲突更新保证）
func (r *playerRepository) UpsertPlayers(ctx context.Context, players []*model.PlayerCurrent) (int, error) {
	if len(players) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&players).Error; err != nil {
		return 0, fmt.Errorf("upsert当前快照失败: %w", err)
	}
	return len(players), nil
}
