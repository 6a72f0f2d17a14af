package game

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
)

type UnitDefinition struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Texture string `json:"texture"`
	UnitStats
}

type SpawnerDefinition struct {
	Unit   string  `json:"unit"`
	Period float64 `json:"period"`
}

type TurretDefinition struct {
	Power      float32 `json:"power"`
	Range      float32 `json:"range"`
	FirePeriod float64 `json:"firePeriod"`
}

type StructureDefinition struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Texture string `json:"texture"`
	StructureStats
	Spawner *SpawnerDefinition `json:"spawner,omitempty"`
	Turret  *TurretDefinition  `json:"turret,omitempty"`
}

// Definitions are the unit and structure templates a level can use.
type Definitions struct {
	Units      []UnitDefinition      `json:"units"`
	Structures []StructureDefinition `json:"structures"`

	unitIndex      map[string]int
	structureIndex map[string]int
}

func (d *Definitions) Unit(id string) (UnitDefinition, bool) {
	i, ok := d.unitIndex[id]
	if !ok {
		return UnitDefinition{}, false
	}
	return d.Units[i], true
}

func (d *Definitions) Structure(id string) (StructureDefinition, bool) {
	i, ok := d.structureIndex[id]
	if !ok {
		return StructureDefinition{}, false
	}
	return d.Structures[i], true
}

// index validates the templates and builds the lookup tables.
func (d *Definitions) index() error {
	d.unitIndex = make(map[string]int, len(d.Units))
	d.structureIndex = make(map[string]int, len(d.Structures))
	for i, u := range d.Units {
		if u.ID == "" {
			return errors.Errorf("unit definition %d has no id", i)
		}
		if _, dup := d.unitIndex[u.ID]; dup {
			return errors.Errorf("duplicate unit definition %q", u.ID)
		}
		if u.MaxHealth <= 0 {
			return errors.Errorf("unit %q: health must be positive", u.ID)
		}
		if u.Speed < 0 || u.Power < 0 || u.AttackRange < 0 || u.AttackPeriod < 0 {
			return errors.Errorf("unit %q: negative stat", u.ID)
		}
		d.unitIndex[u.ID] = i
	}
	for i, s := range d.Structures {
		if s.ID == "" {
			return errors.Errorf("structure definition %d has no id", i)
		}
		if _, dup := d.structureIndex[s.ID]; dup {
			return errors.Errorf("duplicate structure definition %q", s.ID)
		}
		if s.MaxHealth <= 0 {
			return errors.Errorf("structure %q: health must be positive", s.ID)
		}
		if s.Spawner != nil {
			if _, ok := d.unitIndex[s.Spawner.Unit]; !ok {
				return errors.Errorf("structure %q spawns unknown unit %q", s.ID, s.Spawner.Unit)
			}
			if s.Spawner.Period <= 0 {
				return errors.Errorf("structure %q: spawn period must be positive", s.ID)
			}
		}
		if s.Turret != nil && (s.Turret.Range < 0 || s.Turret.FirePeriod < 0) {
			return errors.Errorf("structure %q: negative turret stat", s.ID)
		}
		d.structureIndex[s.ID] = i
	}
	return nil
}

func ParseDefinitions(r io.Reader) (*Definitions, error) {
	var defs Definitions
	if err := json.NewDecoder(r).Decode(&defs); err != nil {
		return nil, errors.Wrap(err, "decoding definitions")
	}
	if err := defs.index(); err != nil {
		return nil, errors.Wrap(err, "invalid definitions")
	}
	return &defs, nil
}

func LoadDefinitions(filename string) (*Definitions, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening definitions")
	}
	defer file.Close()
	defs, err := ParseDefinitions(file)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filename)
	}
	return defs, nil
}

func DefaultDefinitions() *Definitions {
	defs := &Definitions{
		Units: []UnitDefinition{
			{ID: "worker", Name: "Worker", Texture: "worker.png", UnitStats: UnitStats{
				MaxHealth: 40, Speed: 2, Power: 2, AttackRange: 1, AttackPeriod: 1.5,
				SightRange: 4, BuildRate: 1, RepairRate: 10, DefendRadius: 3,
			}},
			{ID: "soldier", Name: "Soldier", Texture: "soldier.png", UnitStats: UnitStats{
				MaxHealth: 80, Speed: 2.5, Power: 8, AttackRange: 1.5, AttackPeriod: 1,
				SightRange: 6, DefendRadius: 5,
			}},
		},
		Structures: []StructureDefinition{
			{ID: "base", Name: "Base", Texture: "base.png",
				StructureStats: StructureStats{MaxHealth: 500, BuildTime: 60},
				Spawner:        &SpawnerDefinition{Unit: "worker", Period: 20},
			},
			{ID: "barracks", Name: "Barracks", Texture: "barracks.png",
				StructureStats: StructureStats{MaxHealth: 300, BuildTime: 20},
				Spawner:        &SpawnerDefinition{Unit: "soldier", Period: 10},
			},
			{ID: "turret", Name: "Turret", Texture: "turret.png",
				StructureStats: StructureStats{MaxHealth: 150, BuildTime: 10},
				Turret:         &TurretDefinition{Power: 5, Range: 3, FirePeriod: 1},
			},
		},
	}
	if err := defs.index(); err != nil {
		panic(err)
	}
	return defs
}
