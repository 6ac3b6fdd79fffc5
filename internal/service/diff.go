package service

import (
	"encoding/json"
	"math"
	"time"

	"FPLSync/internal/model"

	"gorm.io/datatypes"
)

// ChangeDetector 快照差分器：对比新旧两份全量快照，产出变更流水与身价变动明细。
// 输出只依赖入参（时间戳由调用方传入），同一组入参多次调用结果逐字节一致。
type ChangeDetector struct {
	formThreshold float64
}

// NewChangeDetector 创建差分器，threshold非正时回落到默认0.1
func NewChangeDetector(formThreshold float64) *ChangeDetector {
	if formThreshold <= 0 {
		formThreshold = 0.1
	}
	return &ChangeDetector{formThreshold: formThreshold}
}

// Detect 对比新旧快照。
// 规则（按新快照顺序逐球员，球员内固定按 身价→积分→form 顺序检查）：
//   - 上一快照为空：视为首次全量导入，不产出任何记录；
//   - 球员在上一快照缺失：产出一条new_player（携带完整属性集），不产出身价变动明细；
//   - 身价不等：产出一条price_change流水 + 一条身价变动明细（差值=(新-旧)/10，换算为百万镑）；
//   - 累计积分不等：产出一条points_update；
//   - form差的绝对值严格大于阈值：产出一条form_change（恰好等于阈值不触发，静默丢弃）。
//
// 仅存在于上一快照的球员（转会离队等）不做检查，也没有removed类流水。
func (d *ChangeDetector) Detect(prev, curr []*model.PlayerCurrent, gameweek int, now time.Time) ([]*model.PlayerChange, []*model.PriceChange) {
	if len(prev) == 0 {
		return nil, nil
	}

	prevByID := make(map[int]*model.PlayerCurrent, len(prev))
	for _, p := range prev {
		prevByID[p.ID] = p
	}

	var changes []*model.PlayerChange
	var priceChanges []*model.PriceChange

	for _, np := range curr {
		op, ok := prevByID[np.ID]
		if !ok {
			changes = append(changes, &model.PlayerChange{
				PlayerID:   np.ID,
				Gameweek:   gameweek,
				ChangeType: model.ChangeTypeNewPlayer,
				WebName:    np.WebName,
				Payload: marshalPayload(model.NewPlayerPayload{
					Position:          np.Position,
					TeamName:          np.TeamName,
					NowCost:           np.NowCost,
					TotalPoints:       np.TotalPoints,
					PointsPerGame:     np.PointsPerGame,
					SelectedByPercent: np.SelectedByPercent,
					Form:              np.Form,
				}),
				RecordedAt: now,
			})
			continue
		}

		// 身价变动（身价以0.1百万镑为单位的整数存储，对外按百万镑呈现）
		if op.NowCost != np.NowCost {
			priceChanges = append(priceChanges, &model.PriceChange{
				PlayerID:         np.ID,
				OldPrice:         float64(op.NowCost) / 10,
				NewPrice:         float64(np.NowCost) / 10,
				PriceDelta:       float64(np.NowCost-op.NowCost) / 10,
				OwnershipPercent: np.SelectedByPercent,
				Gameweek:         gameweek,
				ChangeDate:       now,
			})
			changes = append(changes, &model.PlayerChange{
				PlayerID:   np.ID,
				Gameweek:   gameweek,
				ChangeType: model.ChangeTypePriceChange,
				WebName:    np.WebName,
				Payload:    marshalPayload(model.PricePayload{NowCost: np.NowCost}),
				RecordedAt: now,
			})
		}

		// 累计积分变动
		if op.TotalPoints != np.TotalPoints {
			changes = append(changes, &model.PlayerChange{
				PlayerID:   np.ID,
				Gameweek:   gameweek,
				ChangeType: model.ChangeTypePointsUpdate,
				WebName:    np.WebName,
				Payload:    marshalPayload(model.PointsPayload{TotalPoints: np.TotalPoints}),
				RecordedAt: now,
			})
		}

		// form变动（阈值为严格大于，边界值不触发）
		if math.Abs(op.Form-np.Form) > d.formThreshold {
			changes = append(changes, &model.PlayerChange{
				PlayerID:   np.ID,
				Gameweek:   gameweek,
				ChangeType: model.ChangeTypeFormChange,
				WebName:    np.WebName,
				Payload:    marshalPayload(model.FormPayload{Form: np.Form}),
				RecordedAt: now,
			})
		}
	}

	return changes, priceChanges
}

// marshalPayload 序列化payload结构体（固定字段顺序，保证输出确定性）
func marshalPayload(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return b
}
