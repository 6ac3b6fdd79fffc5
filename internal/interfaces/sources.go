package interfaces

import (
	"context"

	"FPLSync/internal/model"
)

// PlayerSource 球员快照数据源接口（API拉取策略）
type PlayerSource interface {
	GetName() string                                                       // 数据源名称
	FetchPlayers(ctx context.Context) ([]*model.PlayerCurrent, int, error) // 拉取全量快照，返回（快照，当前轮次，错误）
}

// DefconSource 防守数据数据源接口（HTML抓取策略）
type DefconSource interface {
	GetName() string
	FetchDefensiveStats(ctx context.Context) ([]*model.DefensiveRow, error)  // 目标表缺失返回空切片而非错误
	FetchPossessionStats(ctx context.Context) ([]*model.PossessionRow, error) // 同上
}
