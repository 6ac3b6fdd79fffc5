package service_test

import (
	"testing"
	"time"

	"FPLSync/internal/model"
	"FPLSync/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// player 构造测试球员快照
func player(id, nowCost, totalPoints int, form float64) *model.PlayerCurrent {
	return &model.PlayerCurrent{
		ID:                id,
		WebName:           "Player" + string(rune('A'+id%26)),
		Position:          "MID",
		TeamName:          "Arsenal",
		NowCost:           nowCost,
		TotalPoints:       totalPoints,
		Form:              form,
		SelectedByPercent: 12.5,
	}
}

var testTime = time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)

func TestDetect_EmptyPrevious_NoRecords(t *testing.T) {
	// 上一快照为空视为首次全量导入，不产出任何记录
	d := service.NewChangeDetector(0.1)

	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.0), player(2, 60, 20, 3.0)}
	changes, priceChanges := d.Detect(nil, curr, 5, testTime)

	assert.Empty(t, changes)
	assert.Empty(t, priceChanges)
}

func TestDetect_NoChanges_ZeroRecords(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	changes, priceChanges := d.Detect(prev, curr, 5, testTime)

	assert.Empty(t, changes)
	assert.Empty(t, priceChanges)
}

func TestDetect_NewPlayer(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	newcomer := player(2, 45, 0, 0.0)
	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.0), newcomer}

	changes, priceChanges := d.Detect(prev, curr, 5, testTime)

	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeTypeNewPlayer, changes[0].ChangeType)
	assert.Equal(t, 2, changes[0].PlayerID)
	assert.Equal(t, 5, changes[0].Gameweek)
	assert.Equal(t, newcomer.WebName, changes[0].WebName)
	// payload携带完整属性集
	assert.JSONEq(t, `{"position":"MID","team_name":"Arsenal","now_cost":45,"total_points":0,"points_per_game":0,"selected_by_percent":12.5,"form":0}`, string(changes[0].Payload))
	// 新球员不产出身价变动明细
	assert.Empty(t, priceChanges)
}

func TestDetect_PriceChange(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 55, 10, 2.0)}

	changes, priceChanges := d.Detect(prev, curr, 7, testTime)

	require.Len(t, priceChanges, 1)
	pc := priceChanges[0]
	assert.Equal(t, 1, pc.PlayerID)
	assert.Equal(t, 5.0, pc.OldPrice)
	assert.Equal(t, 5.5, pc.NewPrice)
	assert.Equal(t, 0.5, pc.PriceDelta)
	assert.Equal(t, 12.5, pc.OwnershipPercent)
	assert.Equal(t, 7, pc.Gameweek)
	assert.Equal(t, testTime, pc.ChangeDate)

	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeTypePriceChange, changes[0].ChangeType)
	assert.JSONEq(t, `{"now_cost":55}`, string(changes[0].Payload))
}

func TestDetect_PriceDrop_NegativeDelta(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 60, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 55, 10, 2.0)}

	_, priceChanges := d.Detect(prev, curr, 7, testTime)

	require.Len(t, priceChanges, 1)
	assert.Equal(t, -0.5, priceChanges[0].PriceDelta)
}

func TestDetect_PointsUpdate(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 50, 16, 2.0)}

	changes, priceChanges := d.Detect(prev, curr, 5, testTime)

	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeTypePointsUpdate, changes[0].ChangeType)
	assert.JSONEq(t, `{"total_points":16}`, string(changes[0].Payload))
	assert.Empty(t, priceChanges)
}

func TestDetect_FormChange_Triggered(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.25)}

	changes, _ := d.Detect(prev, curr, 5, testTime)

	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeTypeFormChange, changes[0].ChangeType)
	assert.JSONEq(t, `{"form":2.25}`, string(changes[0].Payload))
}

func TestDetect_FormChange_SmallDiff_NotTriggered(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.05)}

	changes, _ := d.Detect(prev, curr, 5, testTime)

	assert.Empty(t, changes)
}

func TestDetect_FormChange_ExactThreshold_NotTriggered(t *testing.T) {
	// 阈值为严格大于：差值恰好等于阈值不触发（0.5为二进制可精确表示的阈值）
	d := service.NewChangeDetector(0.5)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.5)}

	changes, _ := d.Detect(prev, curr, 5, testTime)

	assert.Empty(t, changes)
}

func TestDetect_MultipleChangesPerPlayer(t *testing.T) {
	// 同一球员身价+积分+form同时变动：三条流水+一条身价变动明细，固定顺序
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 55, 16, 3.0)}

	changes, priceChanges := d.Detect(prev, curr, 5, testTime)

	require.Len(t, changes, 3)
	assert.Equal(t, model.ChangeTypePriceChange, changes[0].ChangeType)
	assert.Equal(t, model.ChangeTypePointsUpdate, changes[1].ChangeType)
	assert.Equal(t, model.ChangeTypeFormChange, changes[2].ChangeType)
	require.Len(t, priceChanges, 1)
}

func TestDetect_RemovedPlayer_Ignored(t *testing.T) {
	// 仅存在于上一快照的球员（转会离队）不产出任何记录
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0), player(2, 60, 20, 3.0)}
	curr := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}

	changes, priceChanges := d.Detect(prev, curr, 5, testTime)

	assert.Empty(t, changes)
	assert.Empty(t, priceChanges)
}

func TestDetect_Ordering_FollowsNewSnapshot(t *testing.T) {
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0), player(2, 60, 20, 3.0)}
	// 新快照顺序：2在前
	curr := []*model.PlayerCurrent{player(2, 60, 25, 3.0), player(1, 50, 16, 2.0)}

	changes, _ := d.Detect(prev, curr, 5, testTime)

	require.Len(t, changes, 2)
	assert.Equal(t, 2, changes[0].PlayerID)
	assert.Equal(t, 1, changes[1].PlayerID)
}

func TestDetect_Deterministic(t *testing.T) {
	// 同一组入参多次调用结果逐字节一致（payload为结构体序列化，字段顺序固定）
	d := service.NewChangeDetector(0.1)

	prev := []*model.PlayerCurrent{player(1, 50, 10, 2.0)}
	curr := []*model.PlayerCurrent{player(1, 55, 16, 3.0), player(2, 45, 0, 0.0)}

	changes1, prices1 := d.Detect(prev, curr, 5, testTime)
	changes2, prices2 := d.Detect(prev, curr, 5, testTime)

	require.Equal(t, len(changes1), len(changes2))
	for i := range changes1 {
		assert.Equal(t, changes1[i].ChangeType, changes2[i].ChangeType)
		assert.Equal(t, string(changes1[i].Payload), string(changes2[i].Payload))
	}
	assert.Equal(t, prices1, prices2)
}
