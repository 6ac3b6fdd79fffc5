package fplapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"FPLSync/internal/config"
	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"
	"FPLSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFPLAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.PlayerSource {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现PlayerSource接口 ==========
func (a *Adapter) GetName() string {
	return "FPL"
}

// FetchPlayers 拉取bootstrap-static全量快照，按外键关联球队名/位置名后返回扁平结构。
// 非2xx响应或JSON解析失败直接报错（向上传播，当次运行失败）。
func (a *Adapter) FetchPlayers(ctx context.Context) ([]*model.PlayerCurrent, int, error) {
	bootstrapURL := fmt.Sprintf("%s/bootstrap-static/", strings.TrimRight(a.cfg.BaseURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bootstrapURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("构建bootstrap请求失败: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("请求FPL API失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, fmt.Errorf("FPL API返回异常状态码: %d", resp.StatusCode)
	}

	var bootstrap model.BootstrapResponse
	if err := json.NewDecoder(resp.Body).Decode(&bootstrap); err != nil {
		return nil, 0, fmt.Errorf("解析bootstrap响应失败: %w", err)
	}

	// 1. 取当前轮次（events中is_current为true的轮次；没有则为0）
	currentGW := 0
	for _, e := range bootstrap.Events {
		if e.IsCurrent {
			currentGW = e.ID
			break
		}
	}

	// 2. 构建球队/位置查找表（外键关联出可读名称）
	teamLookup := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teamLookup[t.ID] = t.Name
	}
	positionLookup := make(map[int]string, len(bootstrap.ElementTypes))
	for _, p := range bootstrap.ElementTypes {
		positionLookup[p.ID] = p.SingularNameShort
	}

	// 3. 转换为扁平快照
	now := time.Now()
	players := make([]*model.PlayerCurrent, 0, len(bootstrap.Elements))
	for _, e := range bootstrap.Elements {
		players = append(players, &model.PlayerCurrent{
			ID:                e.ID,
			WebName:           e.WebName,
			Position:          positionLookup[e.ElementType],
			TeamName:          teamLookup[e.Team],
			NowCost:           e.NowCost,
			TotalPoints:       e.TotalPoints,
			PointsPerGame:     parseFloatOrZero(e.PointsPerGame),
			SelectedByPercent: parseFloatOrZero(e.SelectedByPercent),
			Form:              parseFloatOrZero(e.Form),
			Minutes:           e.Minutes,
			GoalsScored:       e.GoalsScored,
			Assists:           e.Assists,
			CleanSheets:       e.CleanSheets,
			GoalsConceded:     e.GoalsConceded,
			OwnGoals:          e.OwnGoals,
			PenaltiesSaved:    e.PenaltiesSaved,
			PenaltiesMissed:   e.PenaltiesMissed,
			YellowCards:       e.YellowCards,
			RedCards:          e.RedCards,
			Saves:             e.Saves,
			Bonus:             e.Bonus,
			BPS:               e.BPS,
			Influence:         parseFloatOrZero(e.Influence),
			Creativity:        parseFloatOrZero(e.Creativity),
			Threat:            parseFloatOrZero(e.Threat),
			ICTIndex:          parseFloatOrZero(e.ICTIndex),
			DreamteamCount:    e.DreamteamCount,
			InDreamteam:       e.InDreamteam,
			CurrentGameweek:   currentGW,
			UpdatedAt:         now,
		})
	}

	a.logger.Infof("FPL拉取完成，共%d名球员（GW %d）", len(players), currentGW)
	return players, currentGW, nil
}

// parseFloatOrZero 官方API把浮点字段序列化为字符串，缺失/空串/解析失败统一按0.0处理
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}
