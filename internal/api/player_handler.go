package api

import (
	"errors"
	"net/http"
	"strconv"

	"FPLSync/internal/repository"
	"FPLSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PlayerHandler 提供给前端的球员查询接口
type PlayerHandler struct {
	queryService *service.QueryService
	logger       *logrus.Logger
}

// NewPlayerHandler 创建 PlayerHandler
func NewPlayerHandler(db *gorm.DB, logger *logrus.Logger) *PlayerHandler {
	repo := repository.NewQueryRepository(db)
	defconRepo := repository.NewDefconRepository(db)
	svc := service.NewQueryService(repo, defconRepo, logger)
	return &PlayerHandler{
		queryService: svc,
		logger:       logger,
	}
}

// ListPlayers 球员列表接口
// GET /api/players?position=MID&team=Arsenal&search=salah&sort=total_points&page=1&page_size=20
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	filter := repository.PlayerFilter{
		Position: c.Query("position"),
		TeamName: c.Query("team"),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sort", "total_points"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.queryService.ListPlayers(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListPlayers failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPlayerDetail 球员详情 + 最近变更流水
// GET /api/players/:id
func (h *PlayerHandler) GetPlayerDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	result, err := h.queryService.GetPlayerDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("GetPlayerDetail failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
