package game

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/engine/util"
)

// UnitStats are the numbers a unit template defines.
type UnitStats struct {
	MaxHealth    float32 `json:"health"`
	Speed        float32 `json:"speed"`
	Power        float32 `json:"power"`
	AttackRange  float32 `json:"attackRange"`
	AttackPeriod float64 `json:"attackPeriod"`
	SightRange   float32 `json:"sightRange"`
	BuildRate    float32 `json:"buildRate"`
	RepairRate   float32 `json:"repairRate"`
	DefendRadius float32 `json:"defendRadius"`
}

// Unit is a mobile entity with a queue of actions. The queue holds handles into the
// world's ActionArena; only its head is executed.
type Unit struct {
	Body
	UnitStats
	orders deque.Deque[ActionHandle]
}

func NewUnit(name, template string, faction Faction, pos mgl32.Vec3, stats UnitStats) *Unit {
	return &Unit{
		Body:      newBody(name, template, faction, pos, stats.MaxHealth),
		UnitStats: stats,
	}
}

// Update executes the head of the queue. A finished head is released and the next action
// becomes head with LastUpdate set to now. An empty queue gets an IdleDefend action first.
func (u *Unit) Update(now float64, level Level, arena *ActionArena) {
	if u.IsDead() {
		return
	}
	if u.orders.Len() == 0 {
		u.Enqueue(arena, now, NewIdleDefendAction(u.DefendRadius))
	}
	head := u.orders.Front()
	action, ok := arena.Get(head)
	if !ok {
		util.LogUnitWarning(fmt.Sprintf("[Unit] %s dropped a stale action handle", u.GetName()))
		u.orders.PopFront()
		return
	}
	if action.Execute(now, u, level) {
		util.LogUnitDebug(fmt.Sprintf("[Unit] %s completed %s", u.GetName(), action.Kind))
		u.orders.PopFront()
		arena.Release(head)
		// the promoted action starts counting from now, not from when it was queued
		if next, ok := u.CurrentAction(arena); ok {
			next.LastUpdate = now
		}
	}
}

// Command discards the current queue and replaces it with actions. The new actions start
// at now, so they have made no progress until the next Update.
func (u *Unit) Command(arena *ActionArena, now float64, actions ...Action) {
	u.ClearOrders(arena)
	for _, action := range actions {
		u.Enqueue(arena, now, action)
	}
}

// Enqueue appends an action behind the current ones.
func (u *Unit) Enqueue(arena *ActionArena, now float64, action Action) ActionHandle {
	action.LastUpdate = now
	handle := arena.Add(action)
	u.orders.PushBack(handle)
	return handle
}

// ClearOrders releases every queued action.
func (u *Unit) ClearOrders(arena *ActionArena) {
	for u.orders.Len() > 0 {
		arena.Release(u.orders.PopFront())
	}
}

// CurrentAction returns the head of the queue.
func (u *Unit) CurrentAction(arena *ActionArena) (*Action, bool) {
	if u.orders.Len() == 0 {
		return nil, false
	}
	return arena.Get(u.orders.Front())
}

func (u *Unit) OrderCount() int {
	return u.orders.Len()
}

// Orders returns the queued handles, head first.
func (u *Unit) Orders() []ActionHandle {
	handles := make([]ActionHandle, 0, u.orders.Len())
	for i := 0; i < u.orders.Len(); i++ {
		handles = append(handles, u.orders.At(i))
	}
	return handles
}

// DrawOrders draws the debug shapes of every queued action.
func (u *Unit) DrawOrders(arena *ActionArena, level Level, drawer DebugDrawer) {
	for _, handle := range u.Orders() {
		if action, ok := arena.Get(handle); ok {
			action.Draw(u, level, drawer)
		}
	}
}
