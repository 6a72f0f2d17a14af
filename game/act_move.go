package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/util"
)

// maxWaypointsPerStep bounds how many waypoints a unit may pass in one tick.
const maxWaypointsPerStep = 8

func executeMove(data *MoveData, deltaTime float64, unit *Unit, level Level) bool {
	if unit.DistanceTo(data.Destination) < config.ArrivalEpsilon {
		return true
	}
	if !level.IsTraversable(data.Destination) {
		util.LogUnitDebug(fmt.Sprintf("[Move] %s: destination %v is not traversable", unit.GetName(), data.Destination))
		return true
	}
	arrived, reachable := moveTowards(unit, level, data.Destination, deltaTime)
	if !reachable {
		util.LogUnitDebug(fmt.Sprintf("[Move] %s: no path to %v", unit.GetName(), data.Destination))
		return true
	}
	return arrived
}

// moveTowards walks the unit along the level's waypoints for deltaTime seconds at its speed.
// arrived is true when the unit ended within ArrivalEpsilon of goal.
func moveTowards(unit *Unit, level Level, goal mgl32.Vec3, deltaTime float64) (arrived, reachable bool) {
	pos := unit.GetPosition()
	if pos.Sub(goal).Len() < config.ArrivalEpsilon {
		return true, true
	}
	waypoint, ok := level.NextWaypoint(pos, goal)
	if !ok {
		return false, false
	}
	budget := unit.Speed * float32(deltaTime)
	for i := 0; i < maxWaypointsPerStep && budget > 0; i++ {
		distance := pos.Sub(waypoint).Len()
		if distance > budget {
			pos = util.StepTowards(pos, waypoint, budget)
			break
		}
		pos = waypoint
		budget -= distance
		if pos == goal {
			break
		}
		waypoint, ok = level.NextWaypoint(pos, goal)
		if !ok {
			break
		}
	}
	unit.SetPosition(pos)
	return pos.Sub(goal).Len() < config.ArrivalEpsilon, true
}
