package app

import (
	"errors"

	roomactor "IslandConquest/internal/room/actor"
	"IslandConquest/internal/shared/transport"
	"IslandConquest/modules/kit/errx"
)

const (
	CodeSeatTokenInvalid errx.Code = "SEAT_TOKEN_INVALID"
	CodeNoSeat           errx.Code = "NO_SEAT"
)

var (
	// ErrUnavailable 表示房间运行时不可用。
	ErrUnavailable = errx.ErrUnavailable
	// ErrInternalServer 表示网关内部技术错误。
	ErrInternalServer = errx.ErrInternal

	ErrSeatTokenInvalid  = errx.NewBiz(CodeSeatTokenInvalid, ReasonSeatTokenInvalid.Message).WithReason(ReasonSeatTokenInvalid)
	ErrResumeUnavailable = errx.NewBiz(CodeSeatTokenInvalid, ReasonResumeUnavailable.Message).WithReason(ReasonResumeUnavailable)
	ErrNoSeat            = errx.NewBiz(CodeNoSeat, ReasonNoSeat.Message).WithReason(ReasonNoSeat)
)

// wrapTechErr 把 actor ask 失败转成带 reason 的系统错误。
func wrapTechErr(err error) error {
	if err == nil {
		return nil
	}
	var re *roomactor.RuntimeError
	if !errors.As(err, &re) {
		return err
	}
	switch re.Code {
	case transport.UpstreamTimeout:
		return ErrUnavailable.WithReason(ReasonUpstreamTimeout).WithCause(err)
	case transport.UpstreamUnavailable:
		return ErrUnavailable.WithReason(ReasonUpstreamUnavailable).WithCause(err)
	default:
		return ErrInternalServer.WithReason(ReasonUpstreamInternal).WithCause(err)
	}
}

func GetErrorReasonCode(err error) string {
	var rp interface{ Reason() string }
	if !errors.As(err, &rp) {
		return ""
	}
	return rp.Reason()
}

func GetErrorMessage(err error) string {
	var mp interface{ Msg() string }
	if !errors.As(err, &mp) {
		return ""
	}
	return mp.Msg()
}

func IsBizRejectedError(err error) bool {
	return errx.IsBiz(err)
}
