package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type ctxKey uint8

const (
	keyTrace ctxKey = iota
	keySpan
	keySeat
)

// Seat 日志里标识一次请求落在哪个房间座位上。
type Seat struct {
	RoomID   string
	PlayerID int
}

func withString(ctx context.Context, k ctxKey, v string) context.Context {
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, k, v)
}

func stringFrom(ctx context.Context, k ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(k).(string)
	return s, ok && s != ""
}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return withString(ctx, keyTrace, traceID)
}

func TraceIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, keyTrace)
}

func WithSpanID(ctx context.Context, spanID string) context.Context {
	return withString(ctx, keySpan, spanID)
}

func SpanIDFrom(ctx context.Context) (string, bool) {
	return stringFrom(ctx, keySpan)
}

// WithSeat 挂上房间座位，空房间号不写入。
func WithSeat(ctx context.Context, roomID string, playerID int) context.Context {
	if roomID == "" {
		return ctx
	}
	return context.WithValue(ctx, keySeat, Seat{RoomID: roomID, PlayerID: playerID})
}

func SeatFrom(ctx context.Context) (Seat, bool) {
	if ctx == nil {
		return Seat{}, false
	}
	s, ok := ctx.Value(keySeat).(Seat)
	return s, ok
}

// NewTraceID 16 字节随机数的 hex 形式。
func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}
