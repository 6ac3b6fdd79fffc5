package service

import (
	"context"
	"fmt"
	"time"

	"FPLSync/internal/adapter/fplapi"
	"FPLSync/internal/config"
	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"
	"FPLSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UpdateService FPL快照同步编排器：拉取→差分→落库→审计，单线程顺序执行。
// 三步写入（变更流水、快照upsert、审计终态）之间没有事务边界：
// 流水写入成功而快照upsert失败时两表短暂不一致，由下一次成功运行覆盖修复。
type UpdateService struct {
	logger   *logrus.Logger
	source   interfaces.PlayerSource
	players  interfaces.PlayerRepository
	changes  interfaces.ChangeRepository
	updates  interfaces.UpdateRepository
	detector *ChangeDetector
}

// UpdateSummary 单次运行的结果摘要（供入口打印）
type UpdateSummary struct {
	Gameweek       int `json:"gameweek"`
	PlayersUpdated int `json:"players_updated"`
	ChangesStored  int `json:"changes_stored"`
}

// NewUpdateService 创建编排器（在内部装配适配器与仓储）
func NewUpdateService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *UpdateService {
	sourceCfg := cfg.Sources["fpl"]
	return &UpdateService{
		logger:   logger,
		source:   fplapi.NewFPLAdapter(&sourceCfg, logger),
		players:  repository.NewPlayerRepository(db),
		changes:  repository.NewChangeRepository(db),
		updates:  repository.NewUpdateRepository(db),
		detector: NewChangeDetector(cfg.Sync.FormChangeThreshold),
	}
}

// RunUpdate 执行一次完整同步。运行状态机：none→running→{success,failed}，
// 终态恰好写入一次；任何拉取/差分/落库错误记入failed审计后原样返回给调用方。
func (s *UpdateService) RunUpdate(ctx context.Context, triggeredBy string) (*UpdateSummary, error) {
	runID := s.startRun(ctx, triggeredBy)

	summary, err := s.runPipeline(ctx)
	if err != nil {
		s.completeRun(ctx, runID, model.UpdateStatusFailed, 0, 0, err.Error())
		return nil, err
	}

	s.completeRun(ctx, runID, model.UpdateStatusSuccess, summary.PlayersUpdated, summary.ChangesStored, "")
	s.logger.Infof("同步完成：更新%d名球员，记录%d条变更（GW %d）", summary.PlayersUpdated, summary.ChangesStored, summary.Gameweek)
	return summary, nil
}

// runPipeline 拉取→差分→落库主流程
func (s *UpdateService) runPipeline(ctx context.Context) (*UpdateSummary, error) {
	// 1. 拉取最新全量快照
	snapshot, gameweek, err := s.source.FetchPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("拉取%s快照失败: %w", s.source.GetName(), err)
	}

	// 2. 读取上一快照（读取失败仅告警，按空快照继续——首轮导入同样走这条路径）
	previous, err := s.players.ListCurrent(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("读取上一快照失败，按空快照处理")
		previous = nil
	}

	// 3. 差分
	changes, priceChanges := s.detector.Detect(previous, snapshot, gameweek, time.Now())

	// 4. 先写变更流水（空列表在仓储层直接跳过）
	storedChanges, err := s.changes.InsertChanges(ctx, changes)
	if err != nil {
		return nil, err
	}
	storedPriceChanges, err := s.changes.InsertPriceChanges(ctx, priceChanges)
	if err != nil {
		return nil, err
	}

	// 5. 再整表upsert最新快照
	playersUpdated, err := s.players.UpsertPlayers(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	return &UpdateSummary{
		Gameweek:       gameweek,
		PlayersUpdated: playersUpdated,
		ChangesStored:  storedChanges + storedPriceChanges,
	}, nil
}

// startRun 创建running审计记录；写入失败仅记日志不中断运行（返回0表示无审计ID）
func (s *UpdateService) startRun(ctx context.Context, triggeredBy string) uint64 {
	runID, err := s.updates.CreateRunning(ctx, "fpl", triggeredBy)
	if err != nil {
		s.logger.WithError(err).Error("创建运行审计记录失败，本次运行将没有审计ID")
		return 0
	}
	s.logger.Infof("开始同步运行，审计ID: %d", runID)
	return runID
}

// completeRun 审计终态写入；runID为0时no-op，自身写入失败只记日志（尽力而为）
func (s *UpdateService) completeRun(ctx context.Context, runID uint64, status string, playersUpdated, changesDetected int, errText string) {
	if runID == 0 {
		return
	}
	if err := s.updates.Complete(ctx, runID, status, playersUpdated, changesDetected, errText); err != nil {
		s.logger.WithError(err).Error("写入运行审计终态失败")
	}
}
