package model

import (
	"time"
)

// PlayerCurrent 球员当前状态快照（每个球员仅一行，每次同步整表upsert覆盖）
type PlayerCurrent struct {
	ID                int       `gorm:"column:id;primaryKey;comment:FPL官方球员ID（elements.id，非自增）"`
	WebName           string    `gorm:"column:web_name;type:varchar(64);not null;comment:球员展示名"`
	Position          string    `gorm:"column:position;type:varchar(8);not null;index;comment:位置（GKP/DEF/MID/FWD）"`
	TeamName          string    `gorm:"column:team_name;type:varchar(64);not null;index;comment:所属球队"`
	NowCost           int       `gorm:"column:now_cost;type:int;not null;comment:当前身价（以0.1百万镑为单位的整数）"`
	TotalPoints       int       `gorm:"column:total_points;type:int;not null;comment:赛季累计积分"`
	PointsPerGame     float64   `gorm:"column:points_per_game;type:numeric(6,2);default:0;comment:场均积分"`
	SelectedByPercent float64   `gorm:"column:selected_by_percent;type:numeric(6,2);default:0;comment:持有率（百分比）"`
	Form              float64   `gorm:"column:form;type:numeric(6,2);default:0;comment:近期状态值（缺失按0.0）"`
	Minutes           int       `gorm:"column:minutes;type:int;default:0;comment:出场分钟"`
	GoalsScored       int       `gorm:"column:goals_scored;type:int;default:0;comment:进球"`
	Assists           int       `gorm:"column:assists;type:int;default:0;comment:助攻"`
	CleanSheets       int       `gorm:"column:clean_sheets;type:int;default:0;comment:零封场次"`
	GoalsConceded     int       `gorm:"column:goals_conceded;type:int;default:0;comment:失球"`
	OwnGoals          int       `gorm:"column:own_goals;type:int;default:0;comment:乌龙球"`
	PenaltiesSaved    int       `gorm:"column:penalties_saved;type:int;default:0;comment:扑出点球"`
	PenaltiesMissed   int       `gorm:"column:penalties_missed;type:int;default:0;comment:罚失点球"`
	YellowCards       int       `gorm:"column:yellow_cards;type:int;default:0;comment:黄牌"`
	RedCards          int       `gorm:"column:red_cards;type:int;default:0;comment:红牌"`
	Saves             int       `gorm:"column:saves;type:int;default:0;comment:扑救"`
	Bonus             int       `gorm:"column:bonus;type:int;default:0;comment:附加分"`
	BPS               int       `gorm:"column:bps;type:int;default:0;comment:附加分系统原始分"`
	Influence         float64   `gorm:"column:influence;type:numeric(8,2);default:0;comment:影响力指数"`
	Creativity        float64   `gorm:"column:creativity;type:numeric(8,2);default:0;comment:创造力指数"`
	Threat            float64   `gorm:"column:threat;type:numeric(8,2);default:0;comment:威胁指数"`
	ICTIndex          float64   `gorm:"column:ict_index;type:numeric(8,2);default:0;comment:ICT综合指数"`
	DreamteamCount    int       `gorm:"column:dreamteam_count;type:int;default:0;comment:入选梦之队次数"`
	InDreamteam       bool      `gorm:"column:in_dreamteam;type:boolean;default:false;comment:当前是否在梦之队"`
	CurrentGameweek   int       `gorm:"column:current_gameweek;type:int;default:0;comment:抓取时的当前轮次（无进行中轮次为0）"`
	UpdatedAt         time.Time `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间"`
}

// TableName 指定球员当前状态表名
func (PlayerCurrent) TableName() string { return "players_current" }
