package game

import "github.com/memmaker/outpost/config"

// executeIdleDefend guards the spot the unit stood on when the action first ran.
// It never completes.
func executeIdleDefend(data *IdleDefendData, deltaTime float64, unit *Unit, level Level) bool {
	if !data.anchored {
		data.Anchor = unit.GetPosition()
		data.anchored = true
	}
	if enemy, ok := level.NearestEnemy(unit, data.Anchor, data.Radius); ok {
		engage(&data.attack, unit, enemy, deltaTime, level)
		return false
	}
	data.attack = attackState{}
	if unit.DistanceTo(data.Anchor) >= config.ArrivalEpsilon {
		moveTowards(unit, level, data.Anchor, deltaTime)
	}
	return false
}

// executeIdleAttack hunts whatever enemy comes into sight. It never completes.
func executeIdleAttack(data *IdleAttackData, deltaTime float64, unit *Unit, level Level) bool {
	if enemy, ok := level.NearestEnemy(unit, unit.GetPosition(), unit.SightRange); ok {
		engage(&data.attack, unit, enemy, deltaTime, level)
		return false
	}
	data.attack = attackState{}
	return false
}
