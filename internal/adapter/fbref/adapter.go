package fbref

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"FPLSync/internal/config"
	"FPLSync/internal/interfaces"
	"FPLSync/internal/model"
	"FPLSync/internal/utils/httpclient"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

type Adapter struct {
	cfg        *config.SourceConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewFBrefAdapter(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.DefconSource {
	return &Adapter{
		cfg:        cfg,
		httpClient: httpclient.NewHTTPClient(cfg, logger),
		logger:     logger,
	}
}

// GetName ========== 实现DefconSource接口 ==========
func (a *Adapter) GetName() string {
	return "FBref"
}

// FetchDefensiveStats 抓取防守统计表（#stats_defense）。
// 页面上找不到目标表时返回空切片而非错误（由service层决定是否算失败）。
func (a *Adapter) FetchDefensiveStats(ctx context.Context) ([]*model.DefensiveRow, error) {
	pageURL := fmt.Sprintf("%s/en/comps/9/%s/defense/Premier-League-Stats", strings.TrimRight(a.cfg.BaseURL, "/"), a.cfg.Season)
	doc, err := a.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#stats_defense")
	if table.Length() == 0 {
		a.logger.Warn("页面上未找到防守统计表 #stats_defense")
		return []*model.DefensiveRow{}, nil
	}

	var rows []*model.DefensiveRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		// 跳过FBref表格中间重复插入的表头行
		if tr.HasClass("thead") {
			return
		}
		playerName := cellText(tr, "player")
		if playerName == "" || playerName == "Player" {
			return
		}
		rows = append(rows, &model.DefensiveRow{
			PlayerName:       playerName,
			TeamName:         cellText(tr, "team"),
			PositionRaw:      cellText(tr, "position"),
			MatchesPlayed:    cellInt(tr, "games"),
			Minutes90s:       cellFloat(tr, "minutes_90s"),
			Clearances:       cellInt(tr, "clearances"),
			Blocks:           cellInt(tr, "blocks"),
			Interceptions:    cellInt(tr, "interceptions"),
			TacklesWon:       cellInt(tr, "tackles_won"),
			TacklesAttempted: cellInt(tr, "tackles"),
		})
	})

	a.logger.Infof("FBref防守数据抓取完成，共%d行", len(rows))
	return rows, nil
}

// FetchPossessionStats 抓取控球统计表（#stats_possession），仅取夺回球权列。
// 请求前按配置延时，避免对FBref限速策略触发封禁。
func (a *Adapter) FetchPossessionStats(ctx context.Context) ([]*model.PossessionRow, error) {
	if a.cfg.RequestDelay > 0 {
		select {
		case <-time.After(time.Duration(a.cfg.RequestDelay) * time.Second):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	pageURL := fmt.Sprintf("%s/en/comps/9/%s/possession/Premier-League-Stats", strings.TrimRight(a.cfg.BaseURL, "/"), a.cfg.Season)
	doc, err := a.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table#stats_possession")
	if table.Length() == 0 {
		a.logger.Warn("页面上未找到控球统计表 #stats_possession")
		return []*model.PossessionRow{}, nil
	}

	var rows []*model.PossessionRow
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		playerName := cellText(tr, "player")
		if playerName == "" || playerName == "Player" {
			return
		}
		rows = append(rows, &model.PossessionRow{
			PlayerName:     playerName,
			TeamName:       cellText(tr, "team"),
			BallRecoveries: cellInt(tr, "ball_recoveries"),
		})
	})

	a.logger.Infof("FBref控球数据抓取完成，共%d行", len(rows))
	return rows, nil
}

// fetchDocument 拉取页面并解析为goquery文档
func (a *Adapter) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建FBref请求失败: %w", err)
	}
	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求FBref失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("FBref返回异常状态码: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析FBref页面失败: %w", err)
	}
	return doc, nil
}

// cellText 按data-stat属性取单元格文本（FBref每个单元格都带data-stat标识）
func cellText(tr *goquery.Selection, stat string) string {
	return strings.TrimSpace(tr.Find(fmt.Sprintf(`[data-stat="%s"]`, stat)).First().Text())
}

// cellInt 数值单元格缺失/非法按0处理
func cellInt(tr *goquery.Selection, stat string) int {
	v, err := strconv.Atoi(cellText(tr, stat))
	if err != nil {
		return 0
	}
	return v
}

// cellFloat 浮点单元格缺失/非法按0处理
func cellFloat(tr *goquery.Selection, stat string) float64 {
	v, err := strconv.ParseFloat(cellText(tr, stat), 64)
	if err != nil {
		return 0
	}
	return v
}
