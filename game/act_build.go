package game

import (
	"fmt"

	"github.com/memmaker/outpost/config"
	"github.com/memmaker/outpost/engine/util"
)

func executeBuildOrRepair(data *BuildOrRepairData, deltaTime float64, unit *Unit, level Level) bool {
	structure, ok := level.StructureByID(data.Target)
	if !ok || structure.IsDestroyed() {
		return true
	}
	if structure.IsComplete() {
		return true
	}
	if (!structure.IsBuilt() && unit.BuildRate <= 0) || (structure.IsBuilt() && unit.RepairRate <= 0) {
		util.LogUnitDebug(fmt.Sprintf("[Build] %s: cannot work on %s", unit.GetName(), structure.GetName()))
		return true
	}
	if unit.DistanceTo(structure.GetPosition()) > config.BuildRange {
		_, reachable := moveTowards(unit, level, structure.GetPosition(), deltaTime)
		if !reachable {
			util.LogUnitDebug(fmt.Sprintf("[Build] %s: cannot reach %s", unit.GetName(), structure.GetName()))
			return true
		}
		return false
	}
	work := float32(deltaTime)
	if !structure.IsBuilt() {
		structure.Construct(unit.BuildRate * work)
		if structure.IsBuilt() {
			util.LogGameInfo(fmt.Sprintf("[Build] %s finished %s", unit.GetName(), structure.GetName()))
		}
	} else {
		structure.Repair(unit.RepairRate * work)
	}
	return structure.IsComplete()
}
