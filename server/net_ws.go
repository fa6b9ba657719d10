package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 1 << 16
	sendQueueSize  = 64
)

// ClientConn 一个 WebSocket 连接：读协程投递入站消息，写协程发送队列中的消息
type ClientConn struct {
	id      ConnID
	ws      *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	metrics *Metrics
}

func NewClientConn(ws *websocket.Conn, metrics *Metrics) *ClientConn {
	if metrics == nil {
		metrics = &Metrics{}
	}
	return &ClientConn{
		id:      ConnID(uuid.NewString()),
		ws:      ws,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
		metrics: metrics,
	}
}

func (c *ClientConn) ID() ConnID { return c.id }

// Send 压入发送队列（非阻塞，满则丢弃，保证 tick 准时）
func (c *ClientConn) Send(b []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- b:
	default:
		c.metrics.IncSendDropped()
		Log.Warnw("send queue full, message dropped", "conn", c.id)
	}
}

// Close 通知写协程退出并关闭底层连接
func (c *ClientConn) Close() {
	c.once.Do(func() { close(c.done) })
}

// writePump 独立协程，负责从 send 队列写出到 WS，并定时 ping
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				Log.Debugw("write failed", "conn", c.id, "err", err)
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// readPump 读取客户端消息交给事件循环；退出时在事件循环中注销连接
func (c *ClientConn) readPump(hub *Hub) {
	defer func() {
		c.Close()
		hub.Disconnect(c.id)
	}()
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		_, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				Log.Debugw("read failed", "conn", c.id, "err", err)
			}
			return
		}
		hub.Deliver(c.id, payload)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 静态页面与服务同源部署，允许所有来源
		return true
	},
}

// HandleWS WebSocket 接入：连接后立即收到 connected，之后通过消息创建或加入比赛
func HandleWS(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			Log.Warnw("upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		client := NewClientConn(ws, hub.Metrics())
		Log.Infow("client connected", "conn", client.id, "remote", r.RemoteAddr)

		hub.Connect(client)
		go client.writePump()
		go client.readPump(hub)
	}
}
