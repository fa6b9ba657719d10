package server

import (
	"doodlewar/protocol"
)

// ConnID 连接唯一标识
type ConnID string

// Conn 一个客户端连接的发送端；Send 不得阻塞事件循环
type Conn interface {
	ID() ConnID
	Send(b []byte)
}

// send 编码并发送一条消息
func send(c Conn, m protocol.Message) {
	if c == nil {
		return
	}
	b, err := protocol.Encode(m)
	if err != nil {
		Log.Errorw("encode outbound message", "kind", m.Kind(), "err", err)
		return
	}
	c.Send(b)
}
