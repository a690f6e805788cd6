package session

import (
	"sync"

	"IslandConquest/internal/shared/transport/ws"
)

// Seat 一个玩家在一个房间里的座位。
type Seat struct {
	RoomID   string
	PlayerID int
}

func (s Seat) Valid() bool {
	return s.RoomID != "" && s.PlayerID > 0
}

// KickedMsg 同一座位在新连接上登录时推给旧连接。
const KickedMsg = "seat.kicked"

type Manager interface {
	Bind(seat Seat, conn ws.WSConn)
	UnbindConn(conn ws.WSConn)
	UnbindRoom(roomID string)
	GetConn(seat Seat) (ws.WSConn, bool)
	GetSeat(conn ws.WSConn) (Seat, bool)
	RoomConns(roomID string) map[int]ws.WSConn
}

type SessMgr struct {
	sync.RWMutex
	seat2conn map[Seat]ws.WSConn
	conn2seat map[ws.WSConn]Seat
	watched   map[ws.WSConn]struct{}
}

var _ Manager = (*SessMgr)(nil)

func NewSessMgr() *SessMgr {
	return &SessMgr{
		seat2conn: make(map[Seat]ws.WSConn),
		conn2seat: make(map[ws.WSConn]Seat),
		watched:   make(map[ws.WSConn]struct{}),
	}
}

// Bind 一条连接同时只坐一个座位；换座位时旧绑定解除。
func (s *SessMgr) Bind(seat Seat, conn ws.WSConn) {
	if conn == nil || !seat.Valid() {
		return
	}
	s.Lock()
	defer s.Unlock()

	// 为每条连接只启动一次 watcher：连接关闭后自动解绑
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}

	if prev, ok := s.conn2seat[conn]; ok && prev != seat && s.seat2conn[prev] == conn {
		delete(s.seat2conn, prev)
	}

	oldConn := s.seat2conn[seat]
	// 踢掉原来的那个
	if oldConn != nil && oldConn != conn {
		delete(s.conn2seat, oldConn)
		oldConn.Push(KickedMsg, nil)
		oldConn.Close()
	}
	s.seat2conn[seat] = conn
	s.conn2seat[conn] = seat
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.UnbindConn(conn)
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) {
	s.Lock()
	defer s.Unlock()
	delete(s.watched, conn)
	seat, ok := s.conn2seat[conn]
	if !ok {
		return
	}
	delete(s.conn2seat, conn)
	if s.seat2conn[seat] == conn {
		delete(s.seat2conn, seat)
	}
}

// UnbindRoom 房间关闭后清掉它的所有座位，连接本身保留。
func (s *SessMgr) UnbindRoom(roomID string) {
	s.Lock()
	defer s.Unlock()
	for seat, conn := range s.seat2conn {
		if seat.RoomID != roomID {
			continue
		}
		delete(s.seat2conn, seat)
		if s.conn2seat[conn] == seat {
			delete(s.conn2seat, conn)
		}
	}
}

func (s *SessMgr) GetConn(seat Seat) (ws.WSConn, bool) {
	s.RLock()
	defer s.RUnlock()
	conn, ok := s.seat2conn[seat]
	return conn, ok
}

func (s *SessMgr) GetSeat(conn ws.WSConn) (Seat, bool) {
	s.RLock()
	defer s.RUnlock()
	seat, ok := s.conn2seat[conn]
	return seat, ok
}

// RoomConns 返回房间内在线座位的快照，key 是 player id。
func (s *SessMgr) RoomConns(roomID string) map[int]ws.WSConn {
	s.RLock()
	defer s.RUnlock()
	out := make(map[int]ws.WSConn)
	for seat, conn := range s.seat2conn {
		if seat.RoomID == roomID {
			out[seat.PlayerID] = conn
		}
	}
	return out
}
