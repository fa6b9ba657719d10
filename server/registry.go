package server

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
	"sort"
	"strings"
	"time"

	"doodlewar/game"
	"doodlewar/protocol"
)

const (
	codeLength      = 4
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 64
)

// CodeGenerator 生成候选房间码
type CodeGenerator func() string

// RandomCode 从 A-Z0-9 均匀抽取 4 个字符
func RandomCode() string {
	var sb strings.Builder
	limit := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(fmt.Sprintf("read random code: %v", err))
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String()
}

// NormalizeCode 房间码大小写不敏感
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type membership struct {
	match *Match
	slot  int // 1 或 2
}

// Registry 管理全部比赛与连接归属；只能在事件循环中调用
type Registry struct {
	matches map[string]*Match
	members map[ConnID]membership

	sched   Scheduler
	metrics *Metrics
	newCode CodeGenerator
	newRNG  func() *mrand.Rand
}

// NewRegistry codes 为 nil 时使用 RandomCode
func NewRegistry(sched Scheduler, metrics *Metrics, codes CodeGenerator) *Registry {
	if codes == nil {
		codes = RandomCode
	}
	if metrics == nil {
		metrics = &Metrics{}
	}
	return &Registry{
		matches: make(map[string]*Match),
		members: make(map[ConnID]membership),
		sched:   sched,
		metrics: metrics,
		newCode: codes,
		newRNG: func() *mrand.Rand {
			return mrand.New(mrand.NewSource(time.Now().UnixNano()))
		},
	}
}

// uniqueCode 房间码在全部现存比赛中唯一
func (r *Registry) uniqueCode() string {
	for i := 0; i < maxCodeAttempts; i++ {
		code := NormalizeCode(r.newCode())
		if _, taken := r.matches[code]; !taken && code != "" {
			return code
		}
	}
	panic(fmt.Sprintf("no free match code after %d attempts", maxCodeAttempts))
}

// CreateMatch 新建比赛，c 坐 1 号位并收到 created
func (r *Registry) CreateMatch(c Conn) string {
	r.leave(c.ID())

	code := r.uniqueCode()
	m := newMatch(code, r.sched, r.metrics, r.newRNG())
	m.seat(0, c)
	r.matches[code] = m
	r.members[c.ID()] = membership{match: m, slot: 1}
	r.metrics.SetMatches(len(r.matches))

	send(c, protocol.Created{Code: code, PlayerNum: 1})
	Log.Infow("match created", "code", code, "conn", c.ID())
	return code
}

// JoinMatch c 坐 2 号位，双方收到 start 后比赛开始。
// 失败时只返回错误，不影响任何其他连接。
func (r *Registry) JoinMatch(c Conn, code string) (int, error) {
	code = NormalizeCode(code)
	m, ok := r.matches[code]
	if !ok {
		return 0, &Error{Kind: KindNotFound, Code: code}
	}
	if m.full() || m.state != StateWaiting {
		return 0, &Error{Kind: KindFull, Code: code}
	}
	if mem, seated := r.members[c.ID()]; seated && mem.match == m {
		return 0, &Error{Kind: KindFull, Code: code}
	}

	r.leave(c.ID())
	m.seat(1, c)
	r.members[c.ID()] = membership{match: m, slot: 2}

	send(c, protocol.Joined{Code: code, PlayerNum: 2})
	m.sendTo(0, protocol.OpponentJoined{})
	m.broadcast(protocol.Start{PlayerNum1: 1, PlayerNum2: 2})
	Log.Infow("match joined", "code", code, "conn", c.ID())

	m.activate()
	return 2, nil
}

// SubmitInput 覆盖该连接槽位的最新输入；未入座的连接忽略
func (r *Registry) SubmitInput(id ConnID, in game.Input) {
	mem, ok := r.members[id]
	if !ok {
		r.metrics.IncIgnored()
		return
	}
	mem.match.inputs[mem.slot-1] = in
	r.metrics.IncAccepted()
}

// Disconnect 连接关闭：离开所在比赛
func (r *Registry) Disconnect(id ConnID) {
	r.leave(id)
}

// leave 释放槽位、停止模拟并通知对手；两人都离开后删除比赛
func (r *Registry) leave(id ConnID) {
	mem, ok := r.members[id]
	if !ok {
		return
	}
	delete(r.members, id)

	m := mem.match
	m.unseat(mem.slot - 1)
	m.end("player left")
	m.broadcast(protocol.OpponentLeft{})
	Log.Infow("player left match", "code", m.Code, "conn", id, "slot", mem.slot)

	if m.empty() {
		delete(r.matches, m.Code)
		r.metrics.SetMatches(len(r.matches))
		Log.Infow("match removed", "code", m.Code)
	}
}

// Lookup 按房间码查找比赛
func (r *Registry) Lookup(code string) (*Match, bool) {
	m, ok := r.matches[NormalizeCode(code)]
	return m, ok
}

// SlotOf 连接所在比赛与槽位，未入座时 slot 为 0
func (r *Registry) SlotOf(id ConnID) (string, int) {
	mem, ok := r.members[id]
	if !ok {
		return "", 0
	}
	return mem.match.Code, mem.slot
}

// Matches 按房间码排序的比赛概要
func (r *Registry) Matches() []MatchSummary {
	out := make([]MatchSummary, 0, len(r.matches))
	for _, m := range r.matches {
		out = append(out, m.summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Close 停止全部比赛的模拟
func (r *Registry) Close() {
	for _, m := range r.matches {
		m.end("shutdown")
	}
}
