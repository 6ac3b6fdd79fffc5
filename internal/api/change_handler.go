package api

import (
	"net/http"
	"strconv"

	"FPLSync/internal/repository"
	"FPLSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ChangeHandler 变更流水、身价变动与运行审计的查询接口
type ChangeHandler struct {
	queryService *service.QueryService
	logger       *logrus.Logger
}

// NewChangeHandler 创建 ChangeHandler
func NewChangeHandler(db *gorm.DB, logger *logrus.Logger) *ChangeHandler {
	repo := repository.NewQueryRepository(db)
	defconRepo := repository.NewDefconRepository(db)
	svc := service.NewQueryService(repo, defconRepo, logger)
	return &ChangeHandler{
		queryService: svc,
		logger:       logger,
	}
}

// ListChanges 变更流水列表
// GET /api/changes?type=price_change&player_id=233&gameweek=5&page=1&page_size=20
func (h *ChangeHandler) ListChanges(c *gin.Context) {
	playerID, _ := strconv.Atoi(c.Query("player_id"))
	gameweek, _ := strconv.Atoi(c.Query("gameweek"))
	filter := repository.ChangeFilter{
		ChangeType: c.Query("type"),
		PlayerID:   playerID,
		Gameweek:   gameweek,
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.queryService.ListChanges(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListChanges failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPriceChanges 身价变动列表
// GET /api/price-changes?direction=rise&gameweek=5&page=1&page_size=20
// direction 可选：rise=涨价 / fall=降价
func (h *ChangeHandler) ListPriceChanges(c *gin.Context) {
	gameweek, _ := strconv.Atoi(c.Query("gameweek"))
	filter := repository.PriceChangeFilter{
		Direction: c.Query("direction"),
		Gameweek:  gameweek,
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.queryService.ListPriceChanges(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListPriceChanges failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListUpdates 最近的运行审计记录
// GET /api/updates?type=fpl&limit=20
func (h *ChangeHandler) ListUpdates(c *gin.Context) {
	updateType := c.Query("type")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.queryService.ListUpdates(c.Request.Context(), updateType, limit)
	if err != nil {
		h.logger.WithError(err).Error("ListUpdates failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": result})
}
