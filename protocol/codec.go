package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"

	"doodlewar/game"
)

var (
	// ErrMalformedMessage 无法解码或结构不合法，调用方静默丢弃
	ErrMalformedMessage = errors.New("malformed message")
	// ErrUnknownMessageKind 未知的 type，调用方静默丢弃
	ErrUnknownMessageKind = errors.New("unknown message kind")
)

// Decode 解析一条入站文本消息，返回 Create、Join 或 InputUpdate
func Decode(raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.Wrap(ErrMalformedMessage, "empty frame")
	}
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, errors.Wrapf(ErrMalformedMessage, "decode: %v", err)
	}
	switch in.Type {
	case "":
		return nil, errors.Wrap(ErrMalformedMessage, "missing type")
	case MsgCreate:
		return Create{}, nil
	case MsgJoin:
		var code string
		if in.Code != nil {
			code = *in.Code
		}
		return Join{Code: code}, nil
	case MsgInput:
		// 缺少 input 视为什么都没按
		var inp game.Input
		if in.Input != nil {
			inp = *in.Input
		}
		return InputUpdate{Input: inp}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMessageKind, "type %q", in.Type)
	}
}

// Encode 编码出站消息，type 字段放在最前
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, errors.New("encode: nil message")
	}
	kind, err := json.Marshal(m.Kind())
	if err != nil {
		return nil, errors.Wrap(err, "encode kind")
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", m.Kind())
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(kind) + 10)
	buf.WriteString(`{"type":`)
	buf.Write(kind)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// MustEncode 用于内部固定结构的消息，编码失败属于程序错误
func MustEncode(m Message) []byte {
	b, err := Encode(m)
	if err != nil {
		panic(err)
	}
	return b
}
