package server

import (
	"context"
	"time"
)

// Task 周期任务的取消句柄
type Task interface {
	Cancel()
}

// Scheduler 周期执行 fn，fn 返回 false 时停止。fn 总在事件循环中运行
type Scheduler interface {
	Every(interval time.Duration, fn func() bool) Task
}

type loopTask struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (t *loopTask) Cancel() { t.cancel() }

// loopScheduler 每个任务一个 ticker 协程，到点把 fn 投递进事件循环
type loopScheduler struct {
	ctx  context.Context
	post func(func()) bool
}

func (s *loopScheduler) Every(interval time.Duration, fn func() bool) Task {
	ctx, cancel := context.WithCancel(s.ctx)
	t := &loopTask{ctx: ctx, cancel: cancel}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// 投递阻塞期间到期的 tick 由 ticker 丢弃，不会堆积
				ok := s.post(func() {
					if ctx.Err() != nil {
						return
					}
					if !fn() {
						cancel()
					}
				})
				if !ok {
					cancel()
					return
				}
			}
		}
	}()
	return t
}
