package server

import (
	"sync/atomic"
)

// Metrics 服务运行期的关键指标；事件循环写入，HTTP 协程读取
type Metrics struct {
	TickCount        int64 // 全部比赛累计 Tick 次数
	TotalTickNs      int64 // Tick 累计耗时（纳秒）
	InputsAccepted   int64 // 写入输入缓冲的输入数
	InputsIgnored    int64 // 未加入比赛的连接发送的输入数
	MalformedDropped int64 // 无法解码被丢弃的消息数
	UnknownDropped   int64 // 未知类型被丢弃的消息数
	SnapshotsSent    int64 // 广播的状态快照数
	SendDropped      int64 // 发送队列满被丢弃的出站消息数
	ActiveMatches    int64 // 注册表中的比赛数
	Connections      int64 // 当前连接数
}

func (m *Metrics) IncAccepted()         { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *Metrics) IncIgnored()          { atomic.AddInt64(&m.InputsIgnored, 1) }
func (m *Metrics) IncMalformed()        { atomic.AddInt64(&m.MalformedDropped, 1) }
func (m *Metrics) IncUnknown()          { atomic.AddInt64(&m.UnknownDropped, 1) }
func (m *Metrics) IncSnapshots()        { atomic.AddInt64(&m.SnapshotsSent, 1) }
func (m *Metrics) IncSendDropped()      { atomic.AddInt64(&m.SendDropped, 1) }
func (m *Metrics) SetMatches(n int)     { atomic.StoreInt64(&m.ActiveMatches, int64(n)) }
func (m *Metrics) AddConnections(d int) { atomic.AddInt64(&m.Connections, int64(d)) }
func (m *Metrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}

// Snapshot 返回只读副本，便于 HTTP 输出
func (m *Metrics) Snapshot() map[string]any {
	tick := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if tick > 0 {
		avgMs = float64(total) / float64(tick) / 1e6
	}
	return map[string]any{
		"tick_count":        tick,
		"avg_tick_ms":       avgMs,
		"inputs_accepted":   atomic.LoadInt64(&m.InputsAccepted),
		"inputs_ignored":    atomic.LoadInt64(&m.InputsIgnored),
		"malformed_dropped": atomic.LoadInt64(&m.MalformedDropped),
		"unknown_dropped":   atomic.LoadInt64(&m.UnknownDropped),
		"snapshots_sent":    atomic.LoadInt64(&m.SnapshotsSent),
		"send_dropped":      atomic.LoadInt64(&m.SendDropped),
		"active_matches":    atomic.LoadInt64(&m.ActiveMatches),
		"connections":       atomic.LoadInt64(&m.Connections),
	}
}
