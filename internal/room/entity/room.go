package entity

import (
	"slices"
	"time"

	"IslandConquest/internal/shared/gameconfig/unit"
)

// Room 单个房间的完整状态。非并发安全，只能由房间自己的 actor 访问。
type Room struct {
	id        string
	grid      *Grid
	points    []ResourcePoint
	pointAt   map[int]int // 格子下标 -> points 下标
	units     *Units
	territory *Territory

	players   []*Player // 加入顺序
	freeSeats []PlayerID

	turn          int
	started       bool
	ready         map[PlayerID]struct{}
	turnStartedAt time.Time
	createdAt     time.Time

	dirty bool
}

// NewRoom 大厅状态的空房间，地图在开局时生成。
func NewRoom(id string, rows, cols int, now time.Time) *Room {
	g := NewGrid(rows, cols)
	seats := make([]PlayerID, 0, MaxPlayers)
	for i := 1; i <= MaxPlayers; i++ {
		seats = append(seats, PlayerID(i))
	}
	return &Room{
		id:        id,
		grid:      g,
		pointAt:   map[int]int{},
		units:     newUnits(),
		territory: newTerritory(g.Len()),
		freeSeats: seats,
		turn:      1,
		ready:     map[PlayerID]struct{}{},
		createdAt: now,
		dirty:     true,
	}
}

func (r *Room) ID() string               { return r.id }
func (r *Room) Grid() *Grid              { return r.grid }
func (r *Room) Units() *Units            { return r.units }
func (r *Room) Territory() *Territory    { return r.territory }
func (r *Room) Turn() int                { return r.turn }
func (r *Room) Started() bool            { return r.started }
func (r *Room) TurnStartedAt() time.Time { return r.turnStartedAt }
func (r *Room) CreatedAt() time.Time     { return r.createdAt }
func (r *Room) PlayerCount() int         { return len(r.players) }

// Points 资源点拷贝。
func (r *Room) Points() []ResourcePoint {
	return slices.Clone(r.points)
}

// PointAt 查询格子上的资源点。
func (r *Room) PointAt(c Coord) (ResourcePoint, bool) {
	if !r.grid.InBounds(c) {
		return ResourcePoint{}, false
	}
	i, ok := r.pointAt[r.grid.Index(c)]
	if !ok {
		return ResourcePoint{}, false
	}
	return r.points[i], true
}

// Players 按加入顺序返回。
func (r *Room) Players() []*Player {
	return slices.Clone(r.players)
}

func (r *Room) Player(pid PlayerID) (*Player, bool) {
	for _, p := range r.players {
		if p.id == pid {
			return p, true
		}
	}
	return nil, false
}

// AddPlayer 分配当前最小的空闲座位号。
func (r *Room) AddPlayer(name string) (*Player, error) {
	if r.started {
		return nil, ErrRoomStarted
	}
	if len(r.freeSeats) == 0 {
		return nil, ErrRoomFull
	}
	pid := r.freeSeats[0]
	r.freeSeats = r.freeSeats[1:]
	p := newPlayer(pid, name)
	r.players = append(r.players, p)
	r.dirty = true
	return p, nil
}

// InstallMap 开局时装入生成好的地形与资源点，领地索引随之重建。
func (r *Room) InstallMap(g *Grid, points []ResourcePoint) error {
	if r.started {
		return ErrRoomStarted
	}
	pointAt := make(map[int]int, len(points))
	for i, p := range points {
		if !g.InBounds(p.Coord) {
			return ErrOutOfBounds
		}
		pointAt[g.Index(p.Coord)] = i
	}
	r.grid = g
	r.points = slices.Clone(points)
	r.pointAt = pointAt
	r.territory = newTerritory(g.Len())
	r.units = newUnits()
	r.dirty = true
	return nil
}

// MarkStarted 进入回合循环。
func (r *Room) MarkStarted(now time.Time) {
	r.started = true
	r.turnStartedAt = now
	r.dirty = true
}

// Claim 把格子划给 pid：从其他玩家领地移除、加入 pid 领地、改写 Tile.owner，一次完成。
func (r *Room) Claim(c Coord, pid PlayerID) error {
	if !r.grid.InBounds(c) {
		return ErrOutOfBounds
	}
	if !pid.Valid() {
		return ErrPlayerMissing
	}
	idx := r.grid.Index(c)
	if prev := r.grid.tiles[idx].owner; prev != NoOwner && prev != pid {
		r.territory.remove(prev, idx)
	}
	r.territory.add(pid, idx)
	r.grid.setOwner(idx, pid)
	r.dirty = true
	return nil
}

// ReleaseAll 清空玩家领地，对应格子恢复无主；返回释放的格子数。
func (r *Room) ReleaseAll(pid PlayerID) int {
	idx := r.territory.Indices(pid)
	for _, i := range idx {
		r.territory.remove(pid, i)
		r.grid.setOwner(i, NoOwner)
	}
	if len(idx) > 0 {
		r.dirty = true
	}
	return len(idx)
}

// OwnedBy 格子是否属于 pid。
func (r *Room) OwnedBy(c Coord, pid PlayerID) bool {
	if !r.grid.InBounds(c) {
		return false
	}
	return r.territory.has(pid, r.grid.Index(c))
}

// LandCount 玩家领地中的陆地格数量。
func (r *Room) LandCount(pid PlayerID) int {
	n := 0
	r.territory.Each(pid, func(idx int) {
		if r.grid.tiles[idx].land {
			n++
		}
	})
	return n
}

// SpawnUnit 满血满行动力生成单位并占领脚下格子。
func (r *Room) SpawnUnit(owner PlayerID, def unit.Def, at Coord) (UnitID, error) {
	if !r.grid.InBounds(at) {
		return 0, ErrOutOfBounds
	}
	if _, ok := r.Player(owner); !ok {
		return 0, ErrPlayerMissing
	}
	id := r.units.spawn(owner, def.Type, at, def.HP, def.Move)
	if err := r.Claim(at, owner); err != nil {
		r.units.remove(id)
		return 0, err
	}
	return id, nil
}

// MoveUnit 调用方已完成归属与行动力校验。
func (r *Room) MoveUnit(id UnitID, to Coord) error {
	u, ok := r.units.Get(id)
	if !ok {
		return ErrUnitNotFound
	}
	if !r.grid.InBounds(to) {
		return ErrOutOfBounds
	}
	u.Pos = to
	u.MoveLeft--
	r.dirty = true
	return r.Claim(to, u.Owner)
}

// RemoveUnits 删除满足条件的单位。
func (r *Room) RemoveUnits(pred func(*Unit) bool) int {
	n := r.units.removeIf(pred)
	if n > 0 {
		r.dirty = true
	}
	return n
}

// MarkReady 记录就绪，返回是否全员就绪（含已被消灭的玩家）。
func (r *Room) MarkReady(pid PlayerID) (bool, error) {
	if _, ok := r.Player(pid); !ok {
		return false, ErrPlayerMissing
	}
	r.ready[pid] = struct{}{}
	return r.AllReady(), nil
}

func (r *Room) AllReady() bool {
	return len(r.players) > 0 && len(r.ready) >= len(r.players)
}

func (r *Room) IsReady(pid PlayerID) bool {
	_, ok := r.ready[pid]
	return ok
}

func (r *Room) ReadyCount() int { return len(r.ready) }

func (r *Room) ClearReady() {
	clear(r.ready)
}

// AdvanceTurn 回合号 +1 并重置计时起点。
func (r *Room) AdvanceTurn(now time.Time) {
	r.turn++
	r.turnStartedAt = now
	r.dirty = true
}

func (r *Room) Touch() { r.dirty = true }

func (r *Room) Dirty() bool {
	if r == nil {
		return false
	}
	return r.dirty
}

func (r *Room) ClearDirty() {
	if r == nil {
		return
	}
	r.dirty = false
}
