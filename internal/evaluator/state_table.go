package evaluator

import (
	"sync"
	"time"

	"github.com/mnmalikdev/beelive-backend/internal/models"
)

// AlertState 单个 (蜂箱, 报警类型) 的报警状态
// 零值即初始状态：未激活、无历史
// 仅由所属类型的检查逻辑修改；进程重启后全部归零（状态是活性缓存，不是账本）
type AlertState struct {
	IsActive        bool
	LastTriggeredAt *time.Time
	LastClearedAt   *time.Time
	LastValue       *float64
}

// hiveStates 单个蜂箱的全部评估状态
// mu 保证同一蜂箱的连续评估串行执行（单写者）
type hiveStates struct {
	mu     sync.Mutex
	states map[models.AlertKind]*AlertState
	weight WeightTrendTracker
}

// state 获取指定类型的状态，不存在则创建零值状态
func (h *hiveStates) state(kind models.AlertKind) *AlertState {
	s, ok := h.states[kind]
	if !ok {
		s = &AlertState{}
		h.states[kind] = s
	}
	return s
}

// StateTable 按 (hive_id, AlertKind) 索引的报警状态表
// 纯内存结构：评估器显式持有，不跨进程持久化，
// 重启后越界指标会重新触发一次（预期行为）
type StateTable struct {
	mu    sync.RWMutex
	hives map[string]*hiveStates
}

// NewStateTable 创建状态表
func NewStateTable() *StateTable {
	return &StateTable{
		hives: make(map[string]*hiveStates),
	}
}

// hive 获取蜂箱的状态集合，不存在则创建
func (t *StateTable) hive(hiveID string) *hiveStates {
	t.mu.RLock()
	h, ok := t.hives[hiveID]
	t.mu.RUnlock()
	if ok {
		return h
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if h, ok = t.hives[hiveID]; ok {
		return h
	}
	h = &hiveStates{states: make(map[models.AlertKind]*AlertState)}
	t.hives[hiveID] = h
	return h
}

// Snapshot 返回指定 (蜂箱, 类型) 状态的副本（用于观测和测试）
func (t *StateTable) Snapshot(hiveID string, kind models.AlertKind) AlertState {
	h := t.hive(hiveID)
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.state(kind)
}
