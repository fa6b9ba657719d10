package server

import "fmt"

// ErrorKind 加入比赛时对请求方可见的失败类型
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindFull
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindFull:
		return "full"
	default:
		return "unknown"
	}
}

// Error 带类型的比赛错误，可用 errors.Is 与 ErrNotFound/ErrFull 比较
type Error struct {
	Kind ErrorKind
	Code string
}

var (
	ErrNotFound = &Error{Kind: KindNotFound}
	ErrFull     = &Error{Kind: KindFull}
)

func (e *Error) Error() string {
	return fmt.Sprintf("match %q: %s", e.Code, e.Kind)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// UserMessage 回复给客户端的可读原因
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindNotFound:
		return "Room not found"
	case KindFull:
		return "Room is full"
	default:
		return "Request failed"
	}
}
