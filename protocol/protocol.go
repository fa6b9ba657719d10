package protocol

import "doodlewar/game"

// 入站消息类型
const (
	MsgCreate = "create"
	MsgJoin   = "join"
	MsgInput  = "input"
)

// 出站消息类型
const (
	MsgConnected      = "connected"
	MsgCreated        = "created"
	MsgJoined         = "joined"
	MsgOpponentJoined = "opponent_joined"
	MsgStart          = "start"
	MsgState          = "state"
	MsgWin            = "win"
	MsgOpponentLeft   = "opponent_left"
	MsgError          = "error"
)

// 入站请求（Decode 的结果）

type Create struct{}

type Join struct {
	Code string
}

// InputUpdate 客户端当前按键的完整状态
type InputUpdate struct {
	Input game.Input
}

// inbound 入站消息的线上结构：{"type":"join","code":"AB12"}
type inbound struct {
	Type  string      `json:"type"`
	Code  *string     `json:"code,omitempty"`
	Input *game.Input `json:"input,omitempty"`
}

// Message 出站消息，Kind 即线上的 type 字段
type Message interface {
	Kind() string
}

type Connected struct {
	ID string `json:"id"`
}

type Created struct {
	Code      string `json:"code"`
	PlayerNum int    `json:"playerNum"`
}

type Joined struct {
	Code      string `json:"code"`
	PlayerNum int    `json:"playerNum"`
}

type OpponentJoined struct{}

type Start struct {
	PlayerNum1 int `json:"playerNum1"`
	PlayerNum2 int `json:"playerNum2"`
}

type Win struct {
	Winner int `json:"winner"`
	Kills  int `json:"kills"`
}

type OpponentLeft struct{}

type Error struct {
	Msg string `json:"msg"`
}

func (Connected) Kind() string      { return MsgConnected }
func (Created) Kind() string        { return MsgCreated }
func (Joined) Kind() string         { return MsgJoined }
func (OpponentJoined) Kind() string { return MsgOpponentJoined }
func (Start) Kind() string          { return MsgStart }
func (State) Kind() string          { return MsgState }
func (Win) Kind() string            { return MsgWin }
func (OpponentLeft) Kind() string   { return MsgOpponentLeft }
func (Error) Kind() string          { return MsgError }
