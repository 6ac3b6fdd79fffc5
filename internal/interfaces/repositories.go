package interfaces

import (
	"context"

	"FPLSync/internal/model"
)

// PlayerRepository 球员当前状态表的数据库操作接口
type PlayerRepository interface {
	ListCurrent(ctx context.Context) ([]*model.PlayerCurrent, error)          // 读取上一快照（表为空返回空切片）
	UpsertPlayers(ctx context.Context, players []*model.PlayerCurrent) (int, error) // 整表按主键upsert，返回写入行数
}

// ChangeRepository 变更流水表的数据库操作接口（只追加）
type ChangeRepository interface {
	InsertChanges(ctx context.Context, changes []*model.PlayerChange) (int, error)
	InsertPriceChanges(ctx context.Context, changes []*model.PriceChange) (int, error)
}

// UpdateRepository 运行审计表的数据库操作接口
type UpdateRepository interface {
	CreateRunning(ctx context.Context, updateType, triggeredBy string) (uint64, error)             // 创建running记录，返回其ID
	Complete(ctx context.Context, id uint64, status string, playersUpdated, changesDetected int, errText string) error // 对审计记录的唯一一次终态写入
}

// DefconRepository 防守数据相关表的数据库操作接口
type DefconRepository interface {
	UpsertPlayerStats(ctx context.Context, stats []*model.PlayerDefensiveStat) (int, error)
	ListPlayerStats(ctx context.Context, season string) ([]*model.PlayerDefensiveStat, error)
	UpsertTeamStats(ctx context.Context, stats []*model.TeamDefconStat) (int, error)
	ListTeamStats(ctx context.Context, season string) ([]*model.TeamDefconStat, error)
}
