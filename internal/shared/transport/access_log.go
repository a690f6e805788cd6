package transport

import (
	"context"
	"time"

	"IslandConquest/modules/kit/logx"
	"IslandConquest/modules/kit/tracex"

	"go.uber.org/zap"
)

// AccessLog 单个 ws 消息或 http 请求的访问记录，处理过程中逐步填充。
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	RoomID      string
	PlayerID    int

	action string
	start  time.Time
}

type accessLogKey struct{}

func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent 继承 parent 的取消信号，新开 trace；初始业务码记为系统错误，处理完成后覆盖。
func NewContextWithParent(parent context.Context, action string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx := tracex.WithSpanID(tracex.WithTraceID(parent, tracex.NewTraceID()), "gate")
	return context.WithValue(ctx, accessLogKey{}, &AccessLog{
		BizCode: BizCode(SystemError),
		action:  action,
		start:   time.Now(),
	})
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

func SetErrorReason(ctx context.Context, reason string) {
	if al := FromContext(ctx); al != nil && reason != "" {
		al.ErrorReason = reason
	}
}

// SetSeat 记下请求作用的房间座位，访问日志据此带 room_id/player_id。
func SetSeat(ctx context.Context, roomID string, playerID int) {
	if al := FromContext(ctx); al != nil && roomID != "" {
		al.RoomID, al.PlayerID = roomID, playerID
	}
}

// WriteAccessLog 请求结束时调用一次。
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}
	fields := []zap.Field{zap.Duration("latency", time.Since(al.start))}
	if al.BizCode == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			fields = append(fields, zap.String("error_reason", al.ErrorReason))
		}
	}
	if al.RoomID != "" {
		ctx = tracex.WithSeat(ctx, al.RoomID, al.PlayerID)
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.BizCode), fields...)
}
