package api

import (
	"net/http"
	"strings"

	"FPLSync/internal/config"
	"FPLSync/internal/repository"
	"FPLSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefconHandler 防守数据查询接口
type DefconHandler struct {
	queryService  *service.QueryService
	defaultSeason string
	logger        *logrus.Logger
}

// NewDefconHandler 创建 DefconHandler。默认赛季取自fbref数据源配置
func NewDefconHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *DefconHandler {
	repo := repository.NewQueryRepository(db)
	defconRepo := repository.NewDefconRepository(db)
	svc := service.NewQueryService(repo, defconRepo, logger)
	return &DefconHandler{
		queryService:  svc,
		defaultSeason: strings.Replace(cfg.Sources["fbref"].Season, "-", "/", 1),
		logger:        logger,
	}
}

// ListDefconPlayers 球员防守数据列表
// GET /api/defcon/players?season=2024/25
func (h *DefconHandler) ListDefconPlayers(c *gin.Context) {
	season := c.DefaultQuery("season", h.defaultSeason)

	result, err := h.queryService.ListDefconPlayers(c.Request.Context(), season)
	if err != nil {
		h.logger.WithError(err).Error("ListDefconPlayers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": season, "items": result})
}

// ListDefconTeams 球队级DefCon聚合列表（场均CBIT降序）
// GET /api/defcon/teams?season=2024/25
func (h *DefconHandler) ListDefconTeams(c *gin.Context) {
	season := c.DefaultQuery("season", h.defaultSeason)

	result, err := h.queryService.ListDefconTeams(c.Request.Context(), season)
	if err != nil {
		h.logger.WithError(err).Error("ListDefconTeams failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"season": season, "items": result})
}
