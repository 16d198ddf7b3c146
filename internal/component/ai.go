package component

import "github.com/Philser/roguelike/internal/ecs"

const CMonster ecs.ComponentType = 5

// MonsterKind selects the stat block and name of a monster.
type MonsterKind uint8

const (
	MonsterGoblin MonsterKind = iota
	MonsterOrc
)

func (k MonsterKind) String() string {
	switch k {
	case MonsterOrc:
		return "Orc"
	default:
		return "Goblin"
	}
}

// Monster marks an AI-controlled actor that hunts the player once it sees them.
type Monster struct {
	Kind MonsterKind
}

func (Monster) Type() ecs.ComponentType { return CMonster }
