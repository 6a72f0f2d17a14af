package game

import (
	"fmt"

	"github.com/memmaker/outpost/engine/util"
)

// attackState is the cooldown bookkeeping of a unit fighting one target.
type attackState struct {
	target      EntityID
	engaged     bool
	sinceAttack float64
}

func (s *attackState) retarget(id EntityID) {
	if s.target == id {
		return
	}
	*s = attackState{target: id}
}

// engage closes in on target and strikes it when in range: once on contact, then every
// AttackPeriod of accumulated time. It returns true when the target died or cannot be reached.
func engage(state *attackState, unit *Unit, target *Unit, deltaTime float64, level Level) bool {
	state.retarget(target.ID)
	if unit.DistanceTo(target.GetPosition()) > unit.AttackRange {
		state.engaged = false
		_, reachable := moveTowards(unit, level, target.GetPosition(), deltaTime)
		if !reachable {
			util.LogUnitDebug(fmt.Sprintf("[Attack] %s: cannot reach %s", unit.GetName(), target.GetName()))
			return true
		}
		if unit.DistanceTo(target.GetPosition()) > unit.AttackRange {
			return false
		}
		deltaTime = 0
	}
	if !state.engaged {
		state.engaged = true
		state.sinceAttack = unit.AttackPeriod
	} else {
		state.sinceAttack += deltaTime
	}
	period := unit.AttackPeriod
	for state.sinceAttack >= period {
		state.sinceAttack -= period
		target.Damage(unit.Power)
		util.LogCombatDebug(fmt.Sprintf("[Attack] %s hits %s for %.1f (%.1f left)", unit.GetName(), target.GetName(), unit.Power, target.GetHealth()))
		if target.IsDead() {
			return true
		}
		if period <= 0 {
			break
		}
	}
	return false
}

func executeTarget(data *TargetData, deltaTime float64, unit *Unit, level Level) bool {
	target, ok := level.UnitByID(data.Target)
	if !ok || target.IsDead() || target.ID == unit.ID {
		return true
	}
	if !target.IsEnemyOf(unit.Faction) {
		// following an ally ends once it is within reach
		if unit.DistanceTo(target.GetPosition()) <= unit.AttackRange {
			return true
		}
		_, reachable := moveTowards(unit, level, target.GetPosition(), deltaTime)
		return !reachable
	}
	return engage(&data.attack, unit, target, deltaTime, level)
}
