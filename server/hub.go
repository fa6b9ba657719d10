package server

import (
	"context"

	"github.com/pkg/errors"

	"doodlewar/protocol"
)

const inboxSize = 1024

// Hub 单一事件循环：连接事件、消息处理、比赛 tick 全部在 Run 所在协程串行执行
type Hub struct {
	inbox chan func()
	done  chan struct{}

	conns    map[ConnID]Conn
	registry *Registry
	metrics  *Metrics
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewHub 创建事件循环；需调用 Run 后才开始处理
func NewHub(metrics *Metrics) *Hub {
	return newHub(metrics, nil)
}

func newHub(metrics *Metrics, codes CodeGenerator) *Hub {
	if metrics == nil {
		metrics = &Metrics{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		inbox:   make(chan func(), inboxSize),
		done:    make(chan struct{}),
		conns:   make(map[ConnID]Conn),
		metrics: metrics,
		ctx:     ctx,
		cancel:  cancel,
	}
	h.registry = NewRegistry(&loopScheduler{ctx: ctx, post: h.post}, metrics, codes)
	return h
}

// Metrics 运行指标
func (h *Hub) Metrics() *Metrics { return h.metrics }

// Run 处理投递的事件直到 ctx 取消
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.cancel()
	for {
		select {
		case <-ctx.Done():
			h.registry.Close()
			Log.Infow("hub stopped", "matches", len(h.registry.matches), "conns", len(h.conns))
			return
		case fn := <-h.inbox:
			fn()
		}
	}
}

// post 投递到事件循环；循环已退出时返回 false
func (h *Hub) post(fn func()) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.inbox <- fn:
		return true
	case <-h.done:
		return false
	}
}

// Call 在事件循环中同步执行 fn
func (h *Hub) Call(fn func()) bool {
	reply := make(chan struct{})
	if !h.post(func() {
		fn()
		close(reply)
	}) {
		return false
	}
	select {
	case <-reply:
		return true
	case <-h.done:
		return false
	}
}

// Connect 登记新连接并回复 connected
func (h *Hub) Connect(c Conn) {
	h.post(func() {
		h.conns[c.ID()] = c
		h.metrics.AddConnections(1)
		c.Send(protocol.MustEncode(protocol.Connected{ID: string(c.ID())}))
		Log.Debugw("conn registered", "conn", c.ID())
	})
}

// Deliver 投递一条入站原始消息
func (h *Hub) Deliver(id ConnID, raw []byte) {
	h.post(func() { h.handleMessage(id, raw) })
}

// Disconnect 连接关闭后离开比赛并注销
func (h *Hub) Disconnect(id ConnID) {
	h.post(func() {
		if _, ok := h.conns[id]; !ok {
			return
		}
		code, slot := h.registry.SlotOf(id)
		h.registry.Disconnect(id)
		delete(h.conns, id)
		h.metrics.AddConnections(-1)
		Log.Debugw("conn unregistered", "conn", id, "match", code, "slot", slot)
	})
}

// Matches 当前比赛概要（可在任意协程调用）
func (h *Hub) Matches() []MatchSummary {
	var out []MatchSummary
	if !h.Call(func() { out = h.registry.Matches() }) {
		return []MatchSummary{}
	}
	return out
}

func (h *Hub) handleMessage(id ConnID, raw []byte) {
	c, ok := h.conns[id]
	if !ok {
		return
	}
	msg, err := protocol.Decode(raw)
	if err != nil {
		if errors.Cause(err) == protocol.ErrUnknownMessageKind {
			h.metrics.IncUnknown()
		} else {
			h.metrics.IncMalformed()
		}
		Log.Debugw("inbound message dropped", "conn", id, "err", err)
		return
	}

	switch m := msg.(type) {
	case protocol.Create:
		h.registry.CreateMatch(c)
	case protocol.Join:
		if _, err := h.registry.JoinMatch(c, m.Code); err != nil {
			var me *Error
			if errors.As(err, &me) {
				send(c, protocol.Error{Msg: me.UserMessage()})
			}
			Log.Infow("join rejected", "conn", id, "err", err)
		}
	case protocol.InputUpdate:
		h.registry.SubmitInput(id, m.Input)
	}
}
