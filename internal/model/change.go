package model

import (
	"time"

	"gorm.io/datatypes"
)

// 变更类型枚举（闭集，核心逻辑只产生这四种）
const (
	ChangeTypeNewPlayer    = "new_player"    // 上一快照中不存在的球员
	ChangeTypePriceChange  = "price_change"  // 身价变动
	ChangeTypePointsUpdate = "points_update" // 累计积分变动
	ChangeTypeFormChange   = "form_change"   // form变动超过阈值
)

// PlayerChange 球员变更流水（只追加，核心逻辑不更新不删除）
type PlayerChange struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PlayerID   int            `gorm:"column:player_id;type:int;not null;index;comment:FPL球员ID"`
	Gameweek   int            `gorm:"column:gameweek;type:int;not null;index;comment:变更发生的轮次"`
	ChangeType string         `gorm:"column:change_type;type:varchar(32);not null;index;comment:变更类型：new_player/price_change/points_update/form_change"`
	WebName    string         `gorm:"column:web_name;type:varchar(64);not null;comment:球员展示名"`
	Payload    datatypes.JSON `gorm:"column:payload;type:jsonb;not null;comment:各类型专属字段"`
	RecordedAt time.Time      `gorm:"column:recorded_at;type:timestamp;not null;index;comment:记录时间"`
}

// TableName 指定变更流水表名
func (PlayerChange) TableName() string { return "player_history" }

// PriceChange 身价变动明细（只追加；new_player不产生此记录）
type PriceChange struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	PlayerID         int       `gorm:"column:player_id;type:int;not null;index;comment:FPL球员ID"`
	OldPrice         float64   `gorm:"column:old_price;type:numeric(6,1);not null;comment:原身价（百万镑）"`
	NewPrice         float64   `gorm:"column:new_price;type:numeric(6,1);not null;comment:新身价（百万镑）"`
	PriceDelta       float64   `gorm:"column:price_change;type:numeric(6,1);not null;comment:变动值（(新-旧)/10，百万镑）"`
	OwnershipPercent float64   `gorm:"column:ownership_percent;type:numeric(6,2);not null;comment:变动时的持有率"`
	Gameweek         int       `gorm:"column:gameweek;type:int;not null;index;comment:变动发生的轮次"`
	ChangeDate       time.Time `gorm:"column:change_date;type:timestamp;not null;index;comment:变动时间"`
}

// TableName 指定身价变动表名
func (PriceChange) TableName() string { return "price_changes" }

// NewPlayerPayload new_player类型的payload（携带完整属性集）
type NewPlayerPayload struct {
	Position          string  `json:"position"`
	TeamName          string  `json:"team_name"`
	NowCost           int     `json:"now_cost"`
	TotalPoints       int     `json:"total_points"`
	PointsPerGame     float64 `json:"points_per_game"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	Form              float64 `json:"form"`
}

// PricePayload price_change类型的payload（仅携带新身价）
type PricePayload struct {
	NowCost int `json:"now_cost"`
}

// PointsPayload points_update类型的payload
type PointsPayload struct {
	TotalPoints int `json:"total_points"`
}

// FormPayload form_change类型的payload
type FormPayload struct {
	Form float64 `json:"form"`
}
