package server

import (
	"encoding/json"
	"sync"
	"time"
)

// fakeConn 记录收到的全部消息（已解码）
type fakeConn struct {
	id ConnID

	mu   sync.Mutex
	msgs []map[string]any
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: ConnID(id)}
}

func (f *fakeConn) ID() ConnID { return f.id }

func (f *fakeConn) Send(b []byte) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	f.mu.Lock()
	f.msgs = append(f.msgs, m)
	f.mu.Unlock()
}

func (f *fakeConn) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.msgs))
	for _, m := range f.msgs {
		out = append(out, m["type"].(string))
	}
	return out
}

func (f *fakeConn) count(kind string) int {
	n := 0
	for _, k := range f.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

// last 最近一条该类型的消息，没有时为 nil
func (f *fakeConn) last(kind string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.msgs) - 1; i >= 0; i-- {
		if f.msgs[i]["type"] == kind {
			return f.msgs[i]
		}
	}
	return nil
}

type manualTask struct {
	interval  time.Duration
	fn        func() bool
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

// fire 手动触发一次，返回任务是否仍在运行
func (t *manualTask) fire() bool {
	if t.cancelled {
		return false
	}
	if !t.fn() {
		t.cancelled = true
	}
	return !t.cancelled
}

// manualScheduler 由测试手动推进的调度器
type manualScheduler struct {
	tasks []*manualTask
}

func (s *manualScheduler) Every(interval time.Duration, fn func() bool) Task {
	t := &manualTask{interval: interval, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// fixedCodes 依次返回给定房间码，用完后重复最后一个
func fixedCodes(codes ...string) CodeGenerator {
	i := 0
	return func() string {
		c := codes[i]
		if i < len(codes)-1 {
			i++
		}
		return c
	}
}
