package model

import (
	"time"
)

// PlayerDefensiveStat FBref防守数据快照（按球员+球队+赛季唯一，整表upsert覆盖）
type PlayerDefensiveStat struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PlayerName        string    `gorm:"column:player_name;type:varchar(128);not null;uniqueIndex:uk_player_team_season;comment:球员名"`
	TeamName          string    `gorm:"column:team_name;type:varchar(64);not null;uniqueIndex:uk_player_team_season;comment:球队名"`
	Season            string    `gorm:"column:season;type:varchar(16);not null;uniqueIndex:uk_player_team_season;comment:赛季（如2024/25）"`
	Position          string    `gorm:"column:position;type:varchar(8);not null;comment:标准化位置：GK/DEF/MID/FWD"`
	MatchesPlayed     int       `gorm:"column:matches_played;type:int;default:0;comment:出场场次"`
	Minutes90s        float64   `gorm:"column:minutes_90s;type:numeric(6,1);default:0;comment:折合90分钟场次"`
	Clearances        int       `gorm:"column:clearances;type:int;default:0;comment:解围"`
	Blocks            int       `gorm:"column:blocks;type:int;default:0;comment:封堵"`
	Interceptions     int       `gorm:"column:interceptions;type:int;default:0;comment:抢断拦截"`
	TacklesWon        int       `gorm:"column:tackles_won;type:int;default:0;comment:铲断"`
	TacklesAttempted  int       `gorm:"column:tackles_attempted;type:int;default:0;comment:铲断尝试"`
	BallRecoveries    int       `gorm:"column:ball_recoveries;type:int;default:0;comment:夺回球权（来自possession表）"`
	MinutesPlayed     int       `gorm:"column:minutes_played;type:int;default:0;comment:出场分钟（90s*90取整）"`
	DataSource        string    `gorm:"column:data_source;type:varchar(32);default:fbref;comment:数据来源"`
	LastUpdated       time.Time `gorm:"column:last_updated;type:timestamp;not null;comment:更新时间"`
}

// TableName 指定球员防守数据表名
func (PlayerDefensiveStat) TableName() string { return "player_defensive_stats" }

// TeamDefconStat 球队级DefCon聚合（按球队+赛季唯一）
type TeamDefconStat struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	TeamName          string    `gorm:"column:team_name;type:varchar(64);not null;uniqueIndex:uk_team_season;comment:球队名"`
	Season            string    `gorm:"column:season;type:varchar(16);not null;uniqueIndex:uk_team_season;comment:赛季"`
	TotalCBITActions  int       `gorm:"column:total_cbit_actions;type:int;default:0;comment:解围+封堵+拦截+铲断总数"`
	TotalCBITRActions int       `gorm:"column:total_cbitr_actions;type:int;default:0;comment:CBIT+夺回球权总数"`
	MatchesPlayed     int       `gorm:"column:matches_played;type:int;default:0;comment:出场场次（取队内球员最大值）"`
	AvgCBITPerGame    float64   `gorm:"column:avg_cbit_per_game;type:numeric(8,2);default:0;comment:场均CBIT"`
	AvgCBITRPerGame   float64   `gorm:"column:avg_cbitr_per_game;type:numeric(8,2);default:0;comment:场均CBIT+R"`
	LastUpdated       time.Time `gorm:"column:last_updated;type:timestamp;not null;comment:更新时间"`
}

// TableName 指定球队DefCon表名
func (TeamDefconStat) TableName() string { return "team_defcon_stats" }
