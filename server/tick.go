package server

import (
	"time"

	"doodlewar/protocol"
)

const (
	// TicksPerSecond 世界推进频率（60 TPS）
	TicksPerSecond = 60
	// BroadcastEvery 每隔多少个 tick 广播一次快照
	BroadcastEvery = 2
)

var tickInterval = time.Duration(1000/TicksPerSecond) * time.Millisecond // 16ms

// activate 两人到齐后开始推进世界
func (m *Match) activate() {
	if m.state != StateWaiting {
		return
	}
	m.state = StateActive
	m.task = m.sched.Every(tickInterval, m.tick)
	Log.Infow("match started", "code", m.Code)
}

// tick 一次推进：最新输入 → 更新世界 → 按节拍广播。返回 false 停止调度
func (m *Match) tick() bool {
	if m.state != StateActive {
		return false
	}
	start := time.Now()
	m.world.Step(m.inputs)

	if m.world.Ended() {
		// 决胜 tick 总是补发一帧快照，客户端能看到最终比分
		m.broadcastState()
		winner := m.world.Winner
		m.broadcast(protocol.Win{
			Winner: winner,
			Kills:  m.world.Combatants[winner-1].Kills,
		})
		m.end("won")
	} else if m.world.Tick%BroadcastEvery == 0 {
		m.broadcastState()
	}

	m.metrics.AddTick(time.Since(start).Nanoseconds())
	return m.state == StateActive
}

// end 停止模拟；重复调用无副作用
func (m *Match) end(reason string) {
	if m.state == StateEnded {
		return
	}
	m.state = StateEnded
	if m.task != nil {
		m.task.Cancel()
		m.task = nil
	}
	Log.Infow("match ended", "code", m.Code, "reason", reason, "tick", m.world.Tick, "winner", m.world.Winner)
}
