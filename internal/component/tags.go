package component

import "github.com/Philser/roguelike/internal/ecs"

const (
	CTagPlayer   ecs.ComponentType = 8
	CTagBlocking ecs.ComponentType = 9
	CTagItem     ecs.ComponentType = 10
)

// TagPlayer marks the player-controlled entity. Exactly one exists per game.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }

// TagItem marks an item entity.
type TagItem struct{}

func (TagItem) Type() ecs.ComponentType { return CTagItem }
