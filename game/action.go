package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Level is the world as the actions see it. It is passed into every Execute.
type Level interface {
	UnitByID(id EntityID) (*Unit, bool)
	StructureByID(id EntityID) (*Structure, bool)
	// NearestEnemy returns the closest living unit hostile to of within radius of center.
	NearestEnemy(of *Unit, center mgl32.Vec3, radius float32) (*Unit, bool)
	IsTraversable(pos mgl32.Vec3) bool
	// NextWaypoint returns the point to walk to next on the way from from to to.
	NextWaypoint(from, to mgl32.Vec3) (mgl32.Vec3, bool)
}

// DebugDrawer receives the debug shapes of actions.
type DebugDrawer interface {
	Line(from, to mgl32.Vec3, color mgl32.Vec3)
	Circle(center mgl32.Vec3, radius float32, color mgl32.Vec3)
}

type ActionKind uint8

const (
	ActionTarget ActionKind = iota + 1
	ActionBuildOrRepair
	ActionMove
	ActionIdleDefend
	ActionIdleAttack
)

func (k ActionKind) String() string {
	switch k {
	case ActionTarget:
		return "Target"
	case ActionBuildOrRepair:
		return "BuildOrRepair"
	case ActionMove:
		return "Move"
	case ActionIdleDefend:
		return "IdleDefend"
	case ActionIdleAttack:
		return "IdleAttack"
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is one step of a unit's behavior queue. Data holds the payload of the kind:
// *TargetData, *BuildOrRepairData, *MoveData, *IdleDefendData or *IdleAttackData.
type Action struct {
	Kind       ActionKind
	LastUpdate float64
	Data       any
}

type TargetData struct {
	Target EntityID
	attack attackState
}

type BuildOrRepairData struct {
	Target EntityID
}

type MoveData struct {
	Destination mgl32.Vec3
}

type IdleDefendData struct {
	Radius   float32
	Anchor   mgl32.Vec3
	anchored bool
	attack   attackState
}

type IdleAttackData struct {
	attack attackState
}

func NewTargetAction(target EntityID) Action {
	return Action{Kind: ActionTarget, Data: &TargetData{Target: target}}
}

func NewBuildOrRepairAction(target EntityID) Action {
	return Action{Kind: ActionBuildOrRepair, Data: &BuildOrRepairData{Target: target}}
}

func NewMoveAction(destination mgl32.Vec3) Action {
	return Action{Kind: ActionMove, Data: &MoveData{Destination: destination}}
}

func NewIdleDefendAction(radius float32) Action {
	return Action{Kind: ActionIdleDefend, Data: &IdleDefendData{Radius: radius}}
}

func NewIdleAttackAction() Action {
	return Action{Kind: ActionIdleAttack, Data: &IdleAttackData{}}
}

// Execute advances the action to now on behalf of unit and reports whether it is done.
// A nil level is a programming error.
func (a *Action) Execute(now float64, unit *Unit, level Level) bool {
	if level == nil {
		panic("game: action executed without a level")
	}
	deltaTime := now - a.LastUpdate
	if deltaTime < 0 {
		deltaTime = 0
	}
	a.LastUpdate = now

	switch a.Kind {
	case ActionTarget:
		return executeTarget(a.Data.(*TargetData), deltaTime, unit, level)
	case ActionBuildOrRepair:
		return executeBuildOrRepair(a.Data.(*BuildOrRepairData), deltaTime, unit, level)
	case ActionMove:
		return executeMove(a.Data.(*MoveData), deltaTime, unit, level)
	case ActionIdleDefend:
		return executeIdleDefend(a.Data.(*IdleDefendData), deltaTime, unit, level)
	case ActionIdleAttack:
		return executeIdleAttack(a.Data.(*IdleAttackData), deltaTime, unit, level)
	default:
		panic(fmt.Sprintf("game: unknown action kind %d", a.Kind))
	}
}

var (
	moveColor   = mgl32.Vec3{0.2, 0.9, 0.9}
	attackColor = mgl32.Vec3{1, 0.2, 0.2}
	buildColor  = mgl32.Vec3{1, 0.85, 0.2}
	idleColor   = mgl32.Vec3{0.4, 0.8, 0.4}
)

// Draw emits the debug shapes of the action's current state.
func (a *Action) Draw(unit *Unit, level Level, drawer DebugDrawer) {
	pos := unit.GetPosition()
	switch data := a.Data.(type) {
	case *MoveData:
		drawer.Line(pos, data.Destination, moveColor)
	case *TargetData:
		if target, ok := level.UnitByID(data.Target); ok && !target.IsDead() {
			drawer.Line(pos, target.GetPosition(), attackColor)
		}
	case *BuildOrRepairData:
		if structure, ok := level.StructureByID(data.Target); ok && !structure.IsDead() {
			drawer.Line(pos, structure.GetPosition(), buildColor)
		}
	case *IdleDefendData:
		if data.anchored {
			drawer.Circle(data.Anchor, data.Radius, idleColor)
		}
		drawTargetLine(pos, data.attack, level, drawer)
	case *IdleAttackData:
		drawer.Circle(pos, unit.SightRange, idleColor)
		drawTargetLine(pos, data.attack, level, drawer)
	}
}

func drawTargetLine(from mgl32.Vec3, attack attackState, level Level, drawer DebugDrawer) {
	if attack.target == 0 {
		return
	}
	if target, ok := level.UnitByID(attack.target); ok && !target.IsDead() {
		drawer.Line(from, target.GetPosition(), attackColor)
	}
}
