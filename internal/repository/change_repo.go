package repository

import (
	"context"
	"fmt"

	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"

	"gorm.io/gorm"
)

type changeRepository struct {
	db *gorm.DB
}

// NewChangeRepository 创建ChangeRepository实例（只追加，不提供更新/删除）
func NewChangeRepository(db *gorm.DB) interfaces.ChangeRepository {
	return &changeRepository{db: db}
}

// InsertChanges 批量写入变更流水；空列表直接跳过，不发起任何写请求
func (r *changeRepository) InsertChanges(ctx context.Context, changes []*model.PlayerChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Create(&changes).Error; err != nil {
		return 0, fmt.Errorf("写入变更流水失败: %w", err)
	}
	return len(changes), nil
}

// InsertPriceChanges 批量写入身价变动明细；空列表直接跳过
func (r *changeRepository) InsertPriceChanges(ctx context.Context, changes []*model.PriceChange) (int, error) {
	if len(changes) == 0 {
		return 0, nil
	}
	if err := r.db.WithContext(ctx).Create(&changes).Error; err != nil {
		return 0, fmt.Errorf("写入身价变动失败: %w", err)
	}
	return len(changes), nil
}
