package fplapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"FPLSync/internal/adapter/fplapi"
	"FPLSync/internal/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// FPL官方bootstrap-static响应的最小样例（浮点字段按官方行为序列化为字符串）
const bootstrapJSON = `{
	"events": [
		{"id": 1, "is_current": false},
		{"id": 2, "is_current": true},
		{"id": 3, "is_current": false}
	],
	"teams": [
		{"id": 1, "name": "Arsenal"},
		{"id": 2, "name": "Chelsea"}
	],
	"element_types": [
		{"id": 1, "singular_name_short": "GKP"},
		{"id": 3, "singular_name_short": "MID"}
	],
	"elements": [
		{
			"id": 233,
			"web_name": "Saka",
			"team": 1,
			"element_type": 3,
			"now_cost": 102,
			"total_points": 56,
			"points_per_game": "5.6",
			"selected_by_percent": "43.2",
			"form": "6.8",
			"minutes": 810,
			"goals_scored": 4,
			"assists": 6,
			"influence": "320.4",
			"creativity": "410.8",
			"threat": "380.0",
			"ict_index": "111.2",
			"in_dreamteam": true,
			"dreamteam_count": 3
		},
		{
			"id": 15,
			"web_name": "Raya",
			"team": 1,
			"element_type": 1,
			"now_cost": 55,
			"total_points": 30,
			"points_per_game": "",
			"selected_by_percent": "n/a",
			"form": "3.0",
			"saves": 28,
			"clean_sheets": 4
		}
	]
}`

func newTestConfig(baseURL string) *config.SourceConfig {
	return &config.SourceConfig{BaseURL: baseURL, Timeout: 5}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFetchPlayers_ParsesBootstrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/bootstrap-static/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(bootstrapJSON))
	}))
	defer srv.Close()

	adapter := fplapi.NewFPLAdapter(newTestConfig(srv.URL), quietLogger())
	players, gameweek, err := adapter.FetchPlayers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, gameweek)
	require.Len(t, players, 2)

	saka := players[0]
	assert.Equal(t, 233, saka.ID)
	assert.Equal(t, "Saka", saka.WebName)
	// 外键关联出可读名称
	assert.Equal(t, "Arsenal", saka.TeamName)
	assert.Equal(t, "MID", saka.Position)
	assert.Equal(t, 102, saka.NowCost)
	assert.Equal(t, 56, saka.TotalPoints)
	// 官方API把浮点字段序列化为字符串
	assert.Equal(t, 5.6, saka.PointsPerGame)
	assert.Equal(t, 43.2, saka.SelectedByPercent)
	assert.Equal(t, 6.8, saka.Form)
	assert.Equal(t, 111.2, saka.ICTIndex)
	assert.True(t, saka.InDreamteam)
	assert.Equal(t, 2, saka.CurrentGameweek)

	raya := players[1]
	assert.Equal(t, "GKP", raya.Position)
	// 空串/非法浮点字符串统一按0处理
	assert.Equal(t, 0.0, raya.PointsPerGame)
	assert.Equal(t, 0.0, raya.SelectedByPercent)
	assert.Equal(t, 28, raya.Saves)
}

func TestFetchPlayers_NoCurrentGameweek(t *testing.T) {
	// 赛季前/赛季后events里没有is_current轮次，按0处理
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"events":[{"id":1,"is_current":false}],"teams":[],"element_types":[],"elements":[]}`))
	}))
	defer srv.Close()

	adapter := fplapi.NewFPLAdapter(newTestConfig(srv.URL), quietLogger())
	players, gameweek, err := adapter.FetchPlayers(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, gameweek)
	assert.Empty(t, players)
}

func TestFetchPlayers_Non2xx_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := fplapi.NewFPLAdapter(newTestConfig(srv.URL), quietLogger())
	_, _, err := adapter.FetchPlayers(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchPlayers_BadJSON_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>Cloudflare challenge</html>`))
	}))
	defer srv.Close()

	adapter := fplapi.NewFPLAdapter(newTestConfig(srv.URL), quietLogger())
	_, _, err := adapter.FetchPlayers(context.Background())

	require.Error(t, err)
}
