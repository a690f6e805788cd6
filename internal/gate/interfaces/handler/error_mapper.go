package handler

import (
	"context"

	"IslandConquest/internal/gate/app"
	roomactor "IslandConquest/internal/room/actor"
	roomapp "IslandConquest/internal/room/app"
	"IslandConquest/internal/shared/transport"
	"IslandConquest/modules/kit/logx"
)

var bizReasonCodes = map[string]int{
	roomapp.ReasonRoomNotFound.Code: transport.RoomNotFound,
	roomapp.ReasonRoomFull.Code:     transport.RoomFull,
	roomapp.ReasonRoomStarted.Code:  transport.RoomStarted,
	roomapp.ReasonNotStarted.Code:   transport.NotStarted,
	roomapp.ReasonNotInRoom.Code:    transport.NotInRoom,
	roomapp.ReasonNotHost.Code:      transport.NotHost,

	roomapp.ReasonUnitNotFound.Code:          transport.UnitNotFound,
	roomapp.ReasonNotUnitOwner.Code:          transport.NotUnitOwner,
	roomapp.ReasonNoMovesLeft.Code:           transport.NoMovesLeft,
	roomapp.ReasonInsufficientResources.Code: transport.InsufficientResources,
	roomapp.ReasonUnknownUnitType.Code:       transport.UnknownUnitType,
	roomapp.ReasonOutOfBounds.Code:           transport.OutOfBounds,

	app.ReasonSeatTokenInvalid.Code:  transport.TokenInvalid,
	app.ReasonResumeUnavailable.Code: transport.TokenInvalid,
	app.ReasonNoSeat.Code:            transport.SessionInvalid,
}

func mapBizReasonToClientCode(reason string) int {
	if reason == "" {
		return transport.OK
	}
	if code, ok := bizReasonCodes[reason]; ok {
		return code
	}
	return transport.InvalidParam
}

func mapTechErrToClientCode(err error) int {
	if err == nil {
		return transport.OK
	}
	switch app.GetErrorReasonCode(err) {
	case app.ReasonUpstreamUnavailable.Code:
		return transport.UpstreamUnavailable
	case app.ReasonUpstreamTimeout.Code:
		return transport.UpstreamTimeout
	case app.ReasonUpstreamInternal.Code, app.ReasonUpstreamBadResponse.Code:
		return transport.UpstreamInternal
	}
	if code := roomactor.CodeFromError(err); code >= transport.SystemError {
		return code
	}
	return transport.SystemError
}

// HandleError 返回客户端码与文案，并按业务拒绝/技术错误分别记日志。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (int, string) {
	reason := app.GetErrorReasonCode(err)
	if reason != "" {
		transport.SetErrorReason(ctx, reason)
	}

	if app.IsBizRejectedError(err) {
		msg := app.GetErrorMessage(err)
		logx.ReportBizWithLoggerContext(ctx, log, logx.NewBizLog(action, reason, msg))
		return mapBizReasonToClientCode(reason), msg
	}

	logx.ReportSysErrorWithLoggerContext(ctx, log, logx.NewSysLog(action, err))
	return mapTechErrToClientCode(err), "系统繁忙，请稍后重试"
}
