package main

import (
	"context"
	"log"

	"FPLSync/internal/config"
	"FPLSync/internal/model"
	"FPLSync/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 一次性FPL同步入口：拉取快照→记录变更→退出。失败时以非零码退出，适合外部调度器接管
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)

	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		logrusLogger.Fatalf("连接PostgreSQL失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.PlayerCurrent{},
		&model.PlayerChange{},
		&model.PriceChange{},
		&model.DataUpdate{},
	); err != nil {
		logrusLogger.Fatalf("数据库表结构迁移失败: %v", err)
	}

	summary, err := service.NewUpdateService(db, logrusLogger, cfg).RunUpdate(context.Background(), model.UpdateTriggerManual)
	if err != nil {
		logrusLogger.Fatalf("FPL同步失败: %v", err)
	}
	logrusLogger.Infof("FPL同步成功：更新%d名球员，记录%d条变更（GW %d）",
		summary.PlayersUpdated, summary.ChangesStored, summary.Gameweek)
}
