package messages

// RoomMessage 需要路由到某个房间 actor 的请求。
type RoomMessage interface {
	RoomID() string
	PlayerID() int
}

type RoomBaseMessage struct {
	RoomId   string
	PlayerId int
}

func (m RoomBaseMessage) RoomID() string {
	return m.RoomId
}

func (m RoomBaseMessage) PlayerID() int {
	return m.PlayerId
}

// HRCreateRoom 只发给 manager，由 manager 分配房号后转成 HRJoinRoom。
type HRCreateRoom struct {
	Name string
}

type HRJoinRoom struct {
	RoomBaseMessage
	Name string
}

type RHSeat struct {
	RoomId   string
	PlayerId int
}

type HRStartGame struct {
	RoomBaseMessage
}

type HRMoveUnit struct {
	RoomBaseMessage
	UnitId   uint64
	Row, Col int
}

type HRProduceUnit struct {
	RoomBaseMessage
	Row, Col int
	UnitType string
}

type HREndTurn struct {
	RoomBaseMessage
}

type RHEndTurn struct {
	Turn     int
	Resolved bool
}

// HRRoomView 取某个座位当前视角，断线重连用。
type HRRoomView struct {
	RoomBaseMessage
}

type HRCloseRoom struct {
	RoomBaseMessage
}

type HRListRooms struct{}

type RHRoomList struct {
	Rooms []RoomInfo
}

type RoomInfo struct {
	RoomId  string `json:"room_id"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
	Turn    int    `json:"turn"`
}

type BizResult struct {
	Ok      bool
	Reason  string
	Message string
}

// RoomReply 房间 actor 的统一应答。
type RoomReply struct {
	Result  BizResult
	Payload any
}
