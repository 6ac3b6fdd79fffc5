package repository

import (
	"context"
	"fmt"
	"time"

	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type updateRepository struct {
	db *gorm.DB
}

// NewUpdateRepository 创建UpdateRepository实例
func NewUpdateRepository(db *gorm.DB) interfaces.UpdateRepository {
	return &updateRepository{db: db}
}

// CreateRunning 创建一条running状态的审计记录，返回其ID
func (r *updateRepository) CreateRunning(ctx context.Context, updateType, triggeredBy string) (uint64, error) {
	record := &model.DataUpdate{
		UpdateUUID:  uuid.NewString(),
		UpdateType:  updateType,
		Status:      model.UpdateStatusRunning,
		TriggeredBy: triggeredBy,
		StartedAt:   time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, fmt.Errorf("创建运行审计记录失败: %w", err)
	}
	return record.ID, nil
}

// Complete 对审计记录的唯一一次终态写入（每次运行独占一条记录，不存在并发写入方）
func (r *updateRepository) Complete(ctx context.Context, id uint64, status string, playersUpdated, changesDetected int, errText string) error {
	updates := map[string]interface{}{
		"status":           status,
		"players_updated":  playersUpdated,
		"changes_detected": changesDetected,
		"completed_at":     time.Now(),
	}
	if errText != "" {
		updates["error_message"] = errText
	}
	if err := r.db.WithContext(ctx).Model(&model.DataUpdate{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("更新运行审计记录失败: %w", err)
	}
	return nil
}
