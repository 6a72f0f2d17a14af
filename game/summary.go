package game

import "sort"

// FactionSummary counts what a faction has left.
type FactionSummary struct {
	Faction         Faction
	Units           map[string]int
	Structures      int
	UnbuiltSites    int
	TotalUnitHealth float32
}

func (s FactionSummary) UnitCount() int {
	total := 0
	for _, n := range s.Units {
		total += n
	}
	return total
}

// Summary returns one entry per faction that still has units or structures, ordered by name.
func (w *World) Summary() []FactionSummary {
	byFaction := make(map[Faction]*FactionSummary)
	get := func(faction Faction) *FactionSummary {
		s, ok := byFaction[faction]
		if !ok {
			s = &FactionSummary{Faction: faction, Units: make(map[string]int)}
			byFaction[faction] = s
		}
		return s
	}
	for _, unit := range w.Units() {
		if unit.IsDead() {
			continue
		}
		s := get(unit.Faction)
		s.Units[unit.Template]++
		s.TotalUnitHealth += unit.GetHealth()
	}
	for _, structure := range w.Structures() {
		s := get(structure.Faction)
		s.Structures++
		if !structure.IsBuilt() {
			s.UnbuiltSites++
		}
	}
	summaries := make([]FactionSummary, 0, len(byFaction))
	for _, s := range byFaction {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Faction < summaries[j].Faction })
	return summaries
}
