package repository

import (
	"context"
	"fmt"

	"FPLSync/internal/model"

	"gorm.io/gorm"
)

// PlayerFilter 球员列表筛选条件
type PlayerFilter struct {
	Position string // 位置：GKP/DEF/MID/FWD
	TeamName string // 球队名（精确匹配）
	Search   string // 球员名模糊搜索
	SortBy   string // 排序字段：total_points/now_cost/form/selected_by_percent/web_name
}

// ChangeFilter 变更流水筛选条件
type ChangeFilter struct {
	ChangeType string // 变更类型：new_player/price_change/points_update/form_change
	PlayerID   int    // 球员ID，0表示不过滤
	Gameweek   int    // 轮次，0表示不过滤
}

// PriceChangeFilter 身价变动筛选条件
type PriceChangeFilter struct {
	Direction string // rise=涨价 / fall=降价，空表示全部
	Gameweek  int
}

// QueryRepository 面向前端只读查询的仓储接口
type QueryRepository interface {
	// ListPlayers 按过滤条件分页查询球员快照
	ListPlayers(ctx context.Context, filter PlayerFilter, page, pageSize int) ([]*model.PlayerCurrent, int64, error)
	// GetPlayerByID 按主键获取单个球员
	GetPlayerByID(ctx context.Context, id int) (*model.PlayerCurrent, error)
	// ListChangesByPlayer 单球员最近的变更流水（时间倒序）
	ListChangesByPlayer(ctx context.Context, playerID, limit int) ([]*model.PlayerChange, error)
	// ListChanges 按过滤条件分页查询变更流水
	ListChanges(ctx context.Context, filter ChangeFilter, page, pageSize int) ([]*model.PlayerChange, int64, error)
	// ListPriceChanges 按过滤条件分页查询身价变动明细
	ListPriceChanges(ctx context.Context, filter PriceChangeFilter, page, pageSize int) ([]*model.PriceChange, int64, error)
	// ListUpdates 最近的运行审计记录（开始时间倒序）
	ListUpdates(ctx context.Context, updateType string, limit int) ([]*model.DataUpdate, error)
}

type queryRepository struct {
	db *gorm.DB
}

// NewQueryRepository 创建 QueryRepository 实例
func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

// playerSortColumns 可排序字段白名单（防注入，未知字段回落默认排序）
var playerSortColumns = map[string]string{
	"total_points":        "total_points DESC",
	"now_cost":            "now_cost DESC",
	"form":                "form DESC",
	"selected_by_percent": "selected_by_percent DESC",
	"web_name":            "web_name ASC",
}

// ListPlayers 按过滤条件分页查询球员快照
func (r *queryRepository) ListPlayers(ctx context.Context, filter PlayerFilter, page, pageSize int) ([]*model.PlayerCurrent, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.PlayerCurrent{})
	if filter.Position != "" {
		db = db.Where("position = ?", filter.Position)
	}
	if filter.TeamName != "" {
		db = db.Where("team_name = ?", filter.TeamName)
	}
	if filter.Search != "" {
		db = db.Where("web_name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计球员数量失败: %w", err)
	}

	order, ok := playerSortColumns[filter.SortBy]
	if !ok {
		order = "total_points DESC"
	}

	var players []*model.PlayerCurrent
	if err := db.
		Order(order).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&players).Error; err != nil {
		return nil, 0, fmt.Errorf("查询球员列表失败: %w", err)
	}
	return players, total, nil
}

// GetPlayerByID 按主键获取单个球员，不存在返回gorm.ErrRecordNotFound
func (r *queryRepository) GetPlayerByID(ctx context.Context, id int) (*model.PlayerCurrent, error) {
	var player model.PlayerCurrent
	if err := r.db.WithContext(ctx).First(&player, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// ListChangesByPlayer 单球员最近的变更流水
func (r *queryRepository) ListChangesByPlayer(ctx context.Context, playerID, limit int) ([]*model.PlayerChange, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var changes []*model.PlayerChange
	if err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("recorded_at DESC, id DESC").
		Limit(limit).
		Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("查询球员变更流水失败: %w", err)
	}
	return changes, nil
}

// ListChanges 按过滤条件分页查询变更流水
func (r *queryRepository) ListChanges(ctx context.Context, filter ChangeFilter, page, pageSize int) ([]*model.PlayerChange, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.PlayerChange{})
	if filter.ChangeType != "" {
		db = db.Where("change_type = ?", filter.ChangeType)
	}
	if filter.PlayerID > 0 {
		db = db.Where("player_id = ?", filter.PlayerID)
	}
	if filter.Gameweek > 0 {
		db = db.Where("gameweek = ?", filter.Gameweek)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计变更流水失败: %w", err)
	}

	var changes []*model.PlayerChange
	if err := db.
		Order("recorded_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&changes).Error; err != nil {
		return nil, 0, fmt.Errorf("查询变更流水失败: %w", err)
	}
	return changes, total, nil
}

// ListPriceChanges 按过滤条件分页查询身价变动明细
func (r *queryRepository) ListPriceChanges(ctx context.Context, filter PriceChangeFilter, page, pageSize int) ([]*model.PriceChange, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	db := r.db.WithContext(ctx).Model(&model.PriceChange{})
	switch filter.Direction {
	case "rise":
		db = db.Where("price_change > 0")
	case "fall":
		db = db.Where("price_change < 0")
	}
	if filter.Gameweek > 0 {
		db = db.Where("gameweek = ?", filter.Gameweek)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计身价变动失败: %w", err)
	}

	var changes []*model.PriceChange
	if err := db.
		Order("change_date DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&changes).Error; err != nil {
		return nil, 0, fmt.Errorf("查询身价变动失败: %w", err)
	}
	return changes, total, nil
}

// ListUpdates 最近的运行审计记录
func (r *queryRepository) ListUpdates(ctx context.Context, updateType string, limit int) ([]*model.DataUpdate, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	db := r.db.WithContext(ctx).Model(&model.DataUpdate{})
	if updateType != "" {
		db = db.Where("update_type = ?", updateType)
	}
	var updates []*model.DataUpdate
	if err := db.
		Order("started_at DESC, id DESC").
		Limit(limit).
		Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("查询运行审计记录失败: %w", err)
	}
	return updates, nil
}
