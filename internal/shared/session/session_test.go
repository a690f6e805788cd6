package session

import (
	"sync"
	"testing"
	"time"
)

type fakeConn struct {
	mu     sync.Mutex
	pushed []string
	done   chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn { return &fakeConn{done: make(chan struct{})} }

func (c *fakeConn) SetProperty(string, any) {}
func (c *fakeConn) GetProperty(string) any  { return nil }
func (c *fakeConn) RemoveProperty(string)   {}
func (c *fakeConn) Addr() string            { return "fake" }
func (c *fakeConn) Push(name string, _ any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = append(c.pushed, name)
	return true
}
func (c *fakeConn) Close()                { c.once.Do(func() { close(c.done) }) }
func (c *fakeConn) Done() <-chan struct{} { return c.done }

func (c *fakeConn) names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.pushed...)
}

func TestBind_同座位新连接踢掉旧连接(t *testing.T) {
	m := NewSessMgr()
	seat := Seat{RoomID: "001AB", PlayerID: 1}
	old, cur := newFakeConn(), newFakeConn()

	m.Bind(seat, old)
	m.Bind(seat, cur)

	got, ok := m.GetConn(seat)
	if !ok || got != cur {
		t.Fatalf("期望座位绑定到新连接")
	}
	if _, ok := m.GetSeat(old); ok {
		t.Fatalf("旧连接不应再有座位")
	}
	select {
	case <-old.Done():
	default:
		t.Fatalf("旧连接应被关闭")
	}
	if names := old.names(); len(names) != 1 || names[0] != KickedMsg {
		t.Fatalf("旧连接应收到 %s, got=%v", KickedMsg, names)
	}
}

func TestBind_连接关闭后自动解绑(t *testing.T) {
	m := NewSessMgr()
	seat := Seat{RoomID: "001AB", PlayerID: 2}
	c := newFakeConn()
	m.Bind(seat, c)
	c.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, ok := m.GetConn(seat); !ok {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("连接关闭后座位应被解绑")
}

func TestRoomConns_只返回本房间(t *testing.T) {
	m := NewSessMgr()
	a, b, other := newFakeConn(), newFakeConn(), newFakeConn()
	m.Bind(Seat{RoomID: "001AB", PlayerID: 1}, a)
	m.Bind(Seat{RoomID: "001AB", PlayerID: 2}, b)
	m.Bind(Seat{RoomID: "002CD", PlayerID: 1}, other)

	conns := m.RoomConns("001AB")
	if len(conns) != 2 || conns[1] != a || conns[2] != b {
		t.Fatalf("房间连接不对, got=%v", conns)
	}

	m.UnbindRoom("001AB")
	if len(m.RoomConns("001AB")) != 0 {
		t.Fatalf("UnbindRoom 后应为空")
	}
	if _, ok := m.GetSeat(a); ok {
		t.Fatalf("UnbindRoom 后连接不应再有座位")
	}
	if len(m.RoomConns("002CD")) != 1 {
		t.Fatalf("其他房间不受影响")
	}
}

func TestBind_换座位解除旧座位(t *testing.T) {
	m := NewSessMgr()
	c := newFakeConn()
	first := Seat{RoomID: "001AB", PlayerID: 1}
	second := Seat{RoomID: "002CD", PlayerID: 3}
	m.Bind(first, c)
	m.Bind(second, c)

	if _, ok := m.GetConn(first); ok {
		t.Fatalf("旧座位应被解除")
	}
	if got, _ := m.GetSeat(c); got != second {
		t.Fatalf("期望新座位, got=%+v", got)
	}
}
