package fbref_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"FPLSync/internal/adapter/fbref"
	"FPLSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FBref防守统计页的最小样例（单元格按官方页面带data-stat属性，中间混入重复表头行）
const defensePage = `<html><body>
<table id="stats_defense">
<tbody>
<tr>
  <td data-stat="player">William Saliba</td>
  <td data-stat="team">Arsenal</td>
  <td data-stat="position">DF</td>
  <td data-stat="games">10</td>
  <td data-stat="minutes_90s">9.8</td>
  <td data-stat="clearances">40</td>
  <td data-stat="blocks">12</td>
  <td data-stat="interceptions">15</td>
  <td data-stat="tackles_won">18</td>
  <td data-stat="tackles">26</td>
</tr>
<tr class="thead"><td data-stat="player">Player</td></tr>
<tr>
  <td data-stat="player">Declan Rice</td>
  <td data-stat="team">Arsenal</td>
  <td data-stat="position">MF,DF</td>
  <td data-stat="games">9</td>
  <td data-stat="minutes_90s">8.5</td>
  <td data-stat="clearances">11</td>
  <td data-stat="blocks">9</td>
  <td data-stat="interceptions">13</td>
  <td data-stat="tackles_won">21</td>
  <td data-stat="tackles">30</td>
</tr>
<tr><td data-stat="player"></td></tr>
</tbody>
</table>
</body></html>`

const possessionPage = `<html><body>
<table id="stats_possession">
<tbody>
<tr>
  <td data-stat="player">William Saliba</td>
  <td data-stat="team">Arsenal</td>
  <td data-stat="ball_recoveries">34</td>
</tr>
</tbody>
</table>
</body></html>`

func newTestConfig(baseURL string) *config.SourceConfig {
	return &config.SourceConfig{BaseURL: baseURL, Season: "2024-25", Timeout: 5}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFetchDefensiveStats_ParsesTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/en/comps/9/2024-25/defense/Premier-League-Stats", r.URL.Path)
		fmt.Fprint(w, defensePage)
	}))
	defer srv.Close()

	adapter := fbref.NewFBrefAdapter(newTestConfig(srv.URL), quietLogger())
	rows, err := adapter.FetchDefensiveStats(context.Background())

	require.NoError(t, err)
	// 重复表头行与空名行被跳过
	require.Len(t, rows, 2)

	saliba := rows[0]
	assert.Equal(t, "William Saliba", saliba.PlayerName)
	assert.Equal(t, "Arsenal", saliba.TeamName)
	assert.Equal(t, "DF", saliba.PositionRaw)
	assert.Equal(t, 10, saliba.MatchesPlayed)
	assert.Equal(t, 9.8, saliba.Minutes90s)
	assert.Equal(t, 40, saliba.Clearances)
	assert.Equal(t, 12, saliba.Blocks)
	assert.Equal(t, 15, saliba.Interceptions)
	assert.Equal(t, 18, saliba.TacklesWon)
	assert.Equal(t, 26, saliba.TacklesAttempted)

	assert.Equal(t, "MF,DF", rows[1].PositionRaw)
}

func TestFetchDefensiveStats_MissingTable_EmptyNoError(t *testing.T) {
	// 页面存在但目标表缺失（FBref偶尔把表藏进注释）：返回空切片而非错误
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>no table here</p></body></html>`)
	}))
	defer srv.Close()

	adapter := fbref.NewFBrefAdapter(newTestConfig(srv.URL), quietLogger())
	rows, err := adapter.FetchDefensiveStats(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFetchDefensiveStats_Non2xx_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	adapter := fbref.NewFBrefAdapter(newTestConfig(srv.URL), quietLogger())
	_, err := adapter.FetchDefensiveStats(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestFetchPossessionStats_ParsesRecoveries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/en/comps/9/2024-25/possession/Premier-League-Stats", r.URL.Path)
		fmt.Fprint(w, possessionPage)
	}))
	defer srv.Close()

	adapter := fbref.NewFBrefAdapter(newTestConfig(srv.URL), quietLogger())
	rows, err := adapter.FetchPossessionStats(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "William Saliba", rows[0].PlayerName)
	assert.Equal(t, 34, rows[0].BallRecoveries)
}

func TestFetchPossessionStats_ContextCancelledDuringDelay(t *testing.T) {
	// 请求间隔等待期间取消context应立即返回
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, possessionPage)
	}))
	defer srv.Close()

	cfg := newTestConfig(srv.URL)
	cfg.RequestDelay = 30
	adapter := fbref.NewFBrefAdapter(cfg, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := adapter.FetchPossessionStats(ctx)

	require.ErrorIs(t, err, context.Canceled)
}
