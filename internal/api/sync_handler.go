package api

import (
	"net/http"

	"FPLSync/internal/config"
	"FPLSync/internal/model"
	"FPLSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SyncHandler struct {
	updateService *service.UpdateService
	defconService *service.DefconService
	logger        *logrus.Logger
}

func NewSyncHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *SyncHandler {
	return &SyncHandler{
		updateService: service.NewUpdateService(db, logger, cfg),
		defconService: service.NewDefconService(db, logger, cfg),
		logger:        logger,
	}
}

// SyncFPLHandler 手动触发一次FPL快照同步
// @Summary 同步FPL球员快照并记录变更
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /sync/fpl [post]
func (h *SyncHandler) SyncFPLHandler(c *gin.Context) {
	summary, err := h.updateService.RunUpdate(c.Request.Context(), model.UpdateTriggerManual)
	if err != nil {
		h.logger.Errorf("FPL同步失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "FPL同步成功",
		"summary": summary,
	})
}

// SyncDefconHandler 手动触发一次FBref防守数据抓取
// @Summary 抓取FBref防守数据并更新DefCon聚合
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /sync/defcon [post]
func (h *SyncHandler) SyncDefconHandler(c *gin.Context) {
	summary, err := h.defconService.RunDefconUpdate(c.Request.Context(), model.UpdateTriggerManual)
	if err != nil {
		h.logger.Errorf("DefCon抓取失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "DefCon抓取成功",
		"summary": summary,
	})
}
