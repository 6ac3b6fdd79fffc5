package model

import (
	"time"
)

// 运行审计状态枚举：running进入一次，终态恰好发生一次
const (
	UpdateStatusRunning = "running"
	UpdateStatusSuccess = "success"
	UpdateStatusFailed  = "failed"
)

// 触发方式
const (
	UpdateTriggerScheduled = "scheduled" // cron调度
	UpdateTriggerManual    = "manual"    // API手动触发
)

// DataUpdate 一次同步运行的审计记录（创建时running，结束时恰好一次终态写入）
type DataUpdate struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID"`
	UpdateUUID      string     `gorm:"column:update_uuid;type:varchar(64);uniqueIndex;not null;comment:全局唯一运行ID"`
	UpdateType      string     `gorm:"column:update_type;type:varchar(32);not null;comment:任务类型：fpl/defcon"`
	Status          string     `gorm:"column:status;type:varchar(16);not null;index;comment:状态：running/success/failed"`
	TriggeredBy     string     `gorm:"column:triggered_by;type:varchar(32);not null;comment:触发方式：scheduled/manual"`
	PlayersUpdated  int        `gorm:"column:players_updated;type:int;default:0;comment:本次upsert的球员数"`
	ChangesDetected int        `gorm:"column:changes_detected;type:int;default:0;comment:本次写入的变更记录数"`
	ErrorMessage    *string    `gorm:"column:error_message;type:text;comment:失败时的错误文本"`
	StartedAt       time.Time  `gorm:"column:started_at;type:timestamp;not null;comment:开始时间"`
	CompletedAt     *time.Time `gorm:"column:completed_at;type:timestamp;comment:结束时间"`
}

// TableName 指定运行审计表名
func (DataUpdate) TableName() string { return "data_updates" }
