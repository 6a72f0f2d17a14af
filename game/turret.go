package game

import (
	"fmt"

	"github.com/memmaker/outpost/engine/util"
)

// Turret is a structure that damages every enemy unit in range, once per FirePeriod.
type Turret struct {
	*Structure
	Power      float32
	Range      float32
	FirePeriod float64

	lastFire float64
	fired    bool
}

func NewTurret(structure *Structure, power, rangeDist float32, firePeriod float64) *Turret {
	return &Turret{
		Structure:  structure,
		Power:      power,
		Range:      rangeDist,
		FirePeriod: firePeriod,
	}
}

// DamageEnemiesWithinRange applies Power to every unit no further than Range away and
// returns how many were hit. The caller decides which units count as enemies.
func (t *Turret) DamageEnemiesWithinRange(units []*Unit) int {
	hits := 0
	for _, unit := range units {
		if unit.DistanceTo(t.GetPosition()) > t.Range {
			continue
		}
		unit.Damage(t.Power)
		hits++
		util.LogCombatDebug(fmt.Sprintf("[Turret] %s hits %s for %.1f (%.1f left)", t.GetName(), unit.GetName(), t.Power, unit.GetHealth()))
	}
	return hits
}

// Update fires at the living enemies if the turret is built and its cooldown has passed.
func (t *Turret) Update(now float64, enemies []*Unit) int {
	if !t.IsBuilt() || t.IsDestroyed() {
		return 0
	}
	if t.fired && now-t.lastFire < t.FirePeriod {
		return 0
	}
	living := enemies[:0:0]
	for _, unit := range enemies {
		if !unit.IsDead() && unit.IsEnemyOf(t.Faction) {
			living = append(living, unit)
		}
	}
	hits := t.DamageEnemiesWithinRange(living)
	if hits > 0 {
		t.fired = true
		t.lastFire = now
	}
	return hits
}
