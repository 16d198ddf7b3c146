// Package factory assembles actor and item entities from their components.
package factory

import (
	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// ActorStats is the stat block an actor spawns with.
type ActorStats struct {
	HP      int `yaml:"hp"`
	Power   int `yaml:"power"`
	Defense int `yaml:"defense"`
	FOV     int `yaml:"fov"`
}

// ItemTuning holds the strength of each consumable.
type ItemTuning struct {
	Heal           int `yaml:"heal"`
	MissileDamage  int `yaml:"missile_damage"`
	FireballDamage int `yaml:"fireball_damage"`
	FireballRadius int `yaml:"fireball_radius"`
	ConfusionTurns int `yaml:"confusion_turns"`
	Range          int `yaml:"range"`
}

func combat(s ActorStats) component.CombatStats {
	return component.CombatStats{HP: s.HP, MaxHP: s.HP, Defense: s.Defense, Power: s.Power}
}

// NewPlayer creates the player entity at p with an empty inventory of
// invSlots slots.
func NewPlayer(w *ecs.World, p component.Position, stats ActorStats, invSlots int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, p)
	w.Add(id, component.Name{Name: "Player"})
	w.Add(id, combat(stats))
	w.Add(id, component.Viewshed{Range: stats.FOV, Dirty: true})
	w.Add(id, component.Renderable{Glyph: '@', FGColor: tcell.ColorYellow, RenderOrder: 10})
	w.Add(id, component.NewInventory(invSlots))
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.TagBlocking{})
	return id
}

var monsterLooks = map[component.MonsterKind]component.Renderable{
	component.MonsterGoblin: {Glyph: 'g', FGColor: tcell.ColorRed, RenderOrder: 5},
	component.MonsterOrc:    {Glyph: 'o', FGColor: tcell.ColorOrangeRed, RenderOrder: 5},
}

// NewMonster creates a monster of the given kind at p.
func NewMonster(w *ecs.World, kind component.MonsterKind, p component.Position, stats ActorStats) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, p)
	w.Add(id, component.Name{Name: kind.String()})
	w.Add(id, combat(stats))
	w.Add(id, component.Viewshed{Range: stats.FOV, Dirty: true})
	w.Add(id, monsterLooks[kind])
	w.Add(id, component.Monster{Kind: kind})
	w.Add(id, component.TagBlocking{})
	return id
}

var itemLooks = map[component.ItemKind]component.Renderable{
	component.ItemHealthPotion:    {Glyph: '!', FGColor: tcell.ColorFuchsia, RenderOrder: 2},
	component.ItemMagicMissile:    {Glyph: '?', FGColor: tcell.ColorAqua, RenderOrder: 2},
	component.ItemFireball:        {Glyph: '?', FGColor: tcell.ColorOrange, RenderOrder: 2},
	component.ItemConfusionScroll: {Glyph: '?', FGColor: tcell.ColorPink, RenderOrder: 2},
}

// NewItem creates an item of the given kind lying on the ground at p.
func NewItem(w *ecs.World, kind component.ItemKind, p component.Position, t ItemTuning) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, p)
	w.Add(id, component.Name{Name: kind.String()})
	w.Add(id, component.Item{Kind: kind})
	w.Add(id, itemLooks[kind])
	w.Add(id, component.TagItem{})

	switch kind {
	case component.ItemHealthPotion:
		w.Add(id, component.ProvidesHealing{Amount: t.Heal})
	case component.ItemMagicMissile:
		w.Add(id, component.Ranged{Range: t.Range})
		w.Add(id, component.InflictsDamage{Damage: t.MissileDamage})
	case component.ItemFireball:
		w.Add(id, component.Ranged{Range: t.Range})
		w.Add(id, component.InflictsDamage{Damage: t.FireballDamage})
		w.Add(id, component.AreaOfEffect{Radius: t.FireballRadius})
	case component.ItemConfusionScroll:
		w.Add(id, component.Ranged{Range: t.Range})
		w.Add(id, component.Confuses{Turns: t.ConfusionTurns})
	}
	return id
}

// ItemRenderable returns the look of an item kind, for restoring it to the
// map when dropped.
func ItemRenderable(kind component.ItemKind) component.Renderable {
	return itemLooks[kind]
}
