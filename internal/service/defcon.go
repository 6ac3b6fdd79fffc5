package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FPLSync/internal/adapter/fbref"
	"FPLSync/internal/config"
	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"
	"FPLSync/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefconService FBref防守数据抓取编排器：抓取防守表与控球表→名字匹配补充夺回球权→
// 球员级upsert→球队级CBIT聚合。与FPL同步共用同一张审计表，update_type区分。
type DefconService struct {
	logger  *logrus.Logger
	source  interfaces.DefconSource
	repo    interfaces.DefconRepository
	updates interfaces.UpdateRepository
	season  string
}

// DefconSummary 单次抓取的结果摘要
type DefconSummary struct {
	Season           string `json:"season"`
	PlayersProcessed int    `json:"players_processed"`
	TeamsAggregated  int    `json:"teams_aggregated"`
}

// NewDefconService 创建编排器
func NewDefconService(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *DefconService {
	sourceCfg := cfg.Sources["fbref"]
	return &DefconService{
		logger:  logger,
		source:  fbref.NewFBrefAdapter(&sourceCfg, logger),
		repo:    repository.NewDefconRepository(db),
		updates: repository.NewUpdateRepository(db),
		// URL用"2024-25"格式，库内统一存"2024/25"
		season: strings.Replace(sourceCfg.Season, "-", "/", 1),
	}
}

// RunDefconUpdate 执行一次完整抓取，审计状态机与FPL同步一致
func (s *DefconService) RunDefconUpdate(ctx context.Context, triggeredBy string) (*DefconSummary, error) {
	runID := s.startRun(ctx, triggeredBy)

	summary, err := s.runPipeline(ctx)
	if err != nil {
		s.completeRun(ctx, runID, model.UpdateStatusFailed, 0, 0, err.Error())
		return nil, err
	}

	s.completeRun(ctx, runID, model.UpdateStatusSuccess, summary.PlayersProcessed, summary.TeamsAggregated, "")
	s.logger.Infof("DefCon抓取完成：%d名球员，%d支球队（赛季%s）", summary.PlayersProcessed, summary.TeamsAggregated, summary.Season)
	return summary, nil
}

func (s *DefconService) runPipeline(ctx context.Context) (*DefconSummary, error) {
	// 1. 抓取防守统计表（主数据，失败即整次失败）
	defRows, err := s.source.FetchDefensiveStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("抓取%s防守数据失败: %w", s.source.GetName(), err)
	}
	if len(defRows) == 0 {
		return nil, fmt.Errorf("防守统计表没有可入库的数据")
	}

	// 2. 抓取控球统计表补充夺回球权数（辅助数据，失败仅告警，按零值继续）
	posRows, err := s.source.FetchPossessionStats(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("抓取控球数据失败，夺回球权按0处理")
		posRows = nil
	}
	recoveries := make(map[string]int, len(posRows))
	for _, row := range posRows {
		recoveries[recoveryKey(row.PlayerName, row.TeamName)] = row.BallRecoveries
	}

	// 3. 组装球员级记录（夺回球权按球员名+球队名精确匹配，匹配不到留0）
	now := time.Now()
	stats := make([]*model.PlayerDefensiveStat, 0, len(defRows))
	for _, row := range defRows {
		stats = append(stats, &model.PlayerDefensiveStat{
			PlayerName:       strings.TrimSpace(row.PlayerName),
			TeamName:         strings.TrimSpace(row.TeamName),
			Season:           s.season,
			Position:         standardizePosition(row.PositionRaw),
			MatchesPlayed:    row.MatchesPlayed,
			Minutes90s:       row.Minutes90s,
			Clearances:       row.Clearances,
			Blocks:           row.Blocks,
			Interceptions:    row.Interceptions,
			TacklesWon:       row.TacklesWon,
			TacklesAttempted: row.TacklesAttempted,
			BallRecoveries:   recoveries[recoveryKey(row.PlayerName, row.TeamName)],
			MinutesPlayed:    int(row.Minutes90s * 90),
			DataSource:       "fbref",
			LastUpdated:      now,
		})
	}

	playersProcessed, err := s.repo.UpsertPlayerStats(ctx, stats)
	if err != nil {
		return nil, err
	}

	// 4. 从库内当季全量数据做球队级聚合（而非本次抓到的子集）
	teamsAggregated, err := s.aggregateTeams(ctx, now)
	if err != nil {
		return nil, err
	}

	return &DefconSummary{
		Season:           s.season,
		PlayersProcessed: playersProcessed,
		TeamsAggregated:  teamsAggregated,
	}, nil
}

// aggregateTeams 球队级CBIT聚合：总数为队内球员求和，场次取队内球员最大值，
// 场均=总数/场次（场次为0时按1，避免除零）
func (s *DefconService) aggregateTeams(ctx context.Context, now time.Time) (int, error) {
	playerStats, err := s.repo.ListPlayerStats(ctx, s.season)
	if err != nil {
		return 0, err
	}

	byTeam := make(map[string]*model.TeamDefconStat)
	var order []string
	for _, p := range playerStats {
		team, ok := byTeam[p.TeamName]
		if !ok {
			team = &model.TeamDefconStat{
				TeamName:    p.TeamName,
				Season:      s.season,
				LastUpdated: now,
			}
			byTeam[p.TeamName] = team
			order = append(order, p.TeamName)
		}
		cbit := p.Clearances + p.Blocks + p.Interceptions + p.TacklesWon
		team.TotalCBITActions += cbit
		team.TotalCBITRActions += cbit + p.BallRecoveries
		if p.MatchesPlayed > team.MatchesPlayed {
			team.MatchesPlayed = p.MatchesPlayed
		}
	}

	teams := make([]*model.TeamDefconStat, 0, len(byTeam))
	for _, name := range order {
		team := byTeam[name]
		matches := team.MatchesPlayed
		if matches < 1 {
			matches = 1
		}
		team.AvgCBITPerGame = float64(team.TotalCBITActions) / float64(matches)
		team.AvgCBITRPerGame = float64(team.TotalCBITRActions) / float64(matches)
		teams = append(teams, team)
	}

	return s.repo.UpsertTeamStats(ctx, teams)
}

func (s *DefconService) startRun(ctx context.Context, triggeredBy string) uint64 {
	runID, err := s.updates.CreateRunning(ctx, "defcon", triggeredBy)
	if err != nil {
		s.logger.WithError(err).Error("创建运行审计记录失败，本次运行将没有审计ID")
		return 0
	}
	s.logger.Infof("开始DefCon抓取运行，审计ID: %d", runID)
	return runID
}

func (s *DefconService) completeRun(ctx context.Context, runID uint64, status string, playersProcessed, teamsAggregated int, errText string) {
	if runID == 0 {
		return
	}
	if err := s.updates.Complete(ctx, runID, status, playersProcessed, teamsAggregated, errText); err != nil {
		s.logger.WithError(err).Error("写入运行审计终态失败")
	}
}

// recoveryKey 夺回球权匹配键：球员名+球队名，去首尾空白后精确匹配（区分大小写）
func recoveryKey(player, team string) string {
	return strings.TrimSpace(player) + "|" + strings.TrimSpace(team)
}

// standardizePosition FBref位置标准化为GK/DEF/MID/FWD；复合位置（如"DF,MF"）取第一个
func standardizePosition(raw string) string {
	primary := raw
	if idx := strings.IndexByte(raw, ','); idx >= 0 {
		primary = raw[:idx]
	}
	switch strings.TrimSpace(strings.ToUpper(primary)) {
	case "GK":
		return "GK"
	case "DF":
		return "DEF"
	case "MF":
		return "MID"
	case "FW":
		return "FWD"
	default:
		return "MID"
	}
}
