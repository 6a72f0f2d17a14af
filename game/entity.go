package game

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/outpost/engine/sprite"
	"github.com/memmaker/outpost/engine/util"
)

// EntityID identifies a unit or structure for the lifetime of a World. Zero means none.
type EntityID uint64

type Faction string

// Entity is anything the world simulates and draws.
type Entity interface {
	GetID() EntityID
	GetName() string
	GetFaction() Faction
	GetPosition() mgl32.Vec3
	GetSprite() *sprite.GLObject
}

// Body is the state units and structures share: where they are and how much they can take.
type Body struct {
	ID        EntityID
	Name      string
	Template  string
	Faction   Faction
	position  mgl32.Vec3
	health    float32
	maxHealth float32
	sprite    *sprite.GLObject
}

func newBody(name, template string, faction Faction, pos mgl32.Vec3, maxHealth float32) Body {
	return Body{
		Name:      name,
		Template:  template,
		Faction:   faction,
		position:  pos,
		health:    maxHealth,
		maxHealth: maxHealth,
	}
}

func (b *Body) GetID() EntityID {
	return b.ID
}

func (b *Body) GetName() string {
	return b.Name
}

func (b *Body) GetFaction() Faction {
	return b.Faction
}

func (b *Body) GetPosition() mgl32.Vec3 {
	return b.position
}

func (b *Body) SetPosition(pos mgl32.Vec3) {
	b.position = pos
}

func (b *Body) GetHealth() float32 {
	return b.health
}

func (b *Body) GetMaxHealth() float32 {
	return b.maxHealth
}

func (b *Body) SetHealth(health float32) {
	b.health = util.Clamp32(health, 0, b.maxHealth)
}

// Damage subtracts amount from the health, which never drops below zero.
func (b *Body) Damage(amount float32) {
	b.SetHealth(b.health - amount)
}

func (b *Body) IsDead() bool {
	return b.health <= 0
}

func (b *Body) GetSprite() *sprite.GLObject {
	return b.sprite
}

func (b *Body) SetSprite(s *sprite.GLObject) {
	b.sprite = s
}

func (b *Body) DistanceTo(pos mgl32.Vec3) float32 {
	return b.position.Sub(pos).Len()
}

func (b *Body) IsEnemyOf(other Faction) bool {
	return b.Faction != other
}
