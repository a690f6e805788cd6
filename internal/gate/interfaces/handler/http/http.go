package http

import (
	"context"
	nethttp "net/http"

	"IslandConquest/internal/gate/app/model"
	"IslandConquest/internal/gate/interfaces/handler"
	"IslandConquest/internal/gate/interfaces/handler/dto"
	"IslandConquest/internal/shared/transport"

	"github.com/gin-gonic/gin"
)

type HttpHandler struct {
	gate *handler.Gate
	ws   nethttp.Handler
}

// NewHttpHandler wsServer 非空时挂到 /ws。
func NewHttpHandler(g *handler.Gate, wsServer nethttp.Handler) *HttpHandler {
	return &HttpHandler{gate: g, ws: wsServer}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	rooms := group.Group("/rooms")
	rooms.GET("", h.ListRooms)
	rooms.POST("", h.CreateRoom)
	rooms.DELETE("/:id", h.CloseRoom)

	if h.ws != nil {
		group.GET("/ws", gin.WrapH(h.ws))
	}
}

func (h *HttpHandler) ListRooms(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.gate.GateService.ListRooms(ctx)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, list)
}

// CreateRoom 大厅页建房；返回的 token 用 room.resume 在 ws 上入座。
func (h *HttpHandler) CreateRoom(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.CreateRoomReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
	}

	resp, err := h.gate.GateService.CreateRoom(ctx, req)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) CloseRoom(c *gin.Context) {
	ctx := c.Request.Context()
	roomID := c.Param("id")
	if err := h.gate.GateService.CloseRoom(ctx, roomID); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.gate.Session.UnbindRoom(roomID)
	h.ok(c, nil)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	action := c.Request.Method + " " + c.FullPath()
	code, msg := handler.HandleError(ctx, h.gate.Log, action, err)
	h.fail(c, code, msg)
}
