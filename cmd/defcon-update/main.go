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

// 一次性DefCon抓取入口：抓取FBref防守数据→更新球员与球队聚合→退出
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
		&model.PlayerDefensiveStat{},
		&model.TeamDefconStat{},
		&model.DataUpdate{},
	); err != nil {
		logrusLogger.Fatalf("数据库表结构迁移失败: %v", err)
	}

	summary, err := service.NewDefconService(db, logrusLogger, cfg).RunDefconUpdate(context.Background(), model.UpdateTriggerManual)
	if err != nil {
		logrusLogger.Fatalf("DefCon抓取失败: %v", err)
	}
	logrusLogger.Infof("DefCon抓取成功：%d名球员，%d支球队（赛季%s）",
		summary.PlayersProcessed, summary.TeamsAggregated, summary.Season)
}
