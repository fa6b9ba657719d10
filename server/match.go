package server

import (
	"math/rand"

	"doodlewar/game"
	"doodlewar/protocol"
)

// MatchState 比赛生命周期
type MatchState int

const (
	StateWaiting MatchState = iota
	StateActive
	StateEnded
)

func (s MatchState) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	default:
		return "ended"
	}
}

// Match 一场两人比赛：权威世界维护在内存，由事件循环单线程推进
type Match struct {
	Code string

	state  MatchState
	conns  [2]Conn
	inputs [2]game.Input // 每个槽位最近一次输入，后写覆盖
	world  *game.World

	sched   Scheduler
	task    Task
	metrics *Metrics
}

// newMatch 创建比赛，初始为等待状态
func newMatch(code string, sched Scheduler, metrics *Metrics, rng *rand.Rand) *Match {
	return &Match{
		Code:    code,
		state:   StateWaiting,
		world:   game.NewWorld(game.DefaultArena(), rng),
		sched:   sched,
		metrics: metrics,
	}
}

// State 当前生命周期状态
func (m *Match) State() MatchState { return m.state }

// World 比赛世界（只能在事件循环中读取）
func (m *Match) World() *game.World { return m.world }

// seat 占用槽位 i（0 或 1）
func (m *Match) seat(i int, c Conn) {
	m.conns[i] = c
	m.inputs[i] = game.Input{}
}

// unseat 释放槽位并清空其输入
func (m *Match) unseat(i int) {
	m.conns[i] = nil
	m.inputs[i] = game.Input{}
}

func (m *Match) full() bool  { return m.conns[0] != nil && m.conns[1] != nil }
func (m *Match) empty() bool { return m.conns[0] == nil && m.conns[1] == nil }

// occupants 当前在座人数
func (m *Match) occupants() int {
	n := 0
	for _, c := range m.conns {
		if c != nil {
			n++
		}
	}
	return n
}

// sendTo 只发给槽位 i
func (m *Match) sendTo(i int, msg protocol.Message) {
	send(m.conns[i], msg)
}

// broadcast 编码一次，发给所有在座连接
func (m *Match) broadcast(msg protocol.Message) {
	b, err := protocol.Encode(msg)
	if err != nil {
		Log.Errorw("encode broadcast", "code", m.Code, "kind", msg.Kind(), "err", err)
		return
	}
	for _, c := range m.conns {
		if c != nil {
			c.Send(b)
		}
	}
}

// broadcastState 广播当前世界快照
func (m *Match) broadcastState() {
	m.broadcast(protocol.BuildState(m.world))
	m.metrics.IncSnapshots()
}

// MatchSummary 管理接口输出的比赛概要
type MatchSummary struct {
	Code    string `json:"code"`
	State   string `json:"state"`
	Players int    `json:"players"`
	Tick    int    `json:"tick"`
	Kills   [2]int `json:"kills"`
}

func (m *Match) summary() MatchSummary {
	return MatchSummary{
		Code:    m.Code,
		State:   m.state.String(),
		Players: m.occupants(),
		Tick:    m.world.Tick,
		Kills:   [2]int{m.world.Combatants[0].Kills, m.world.Combatants[1].Kills},
	}
}
