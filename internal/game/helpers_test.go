package game

import (
	"testing"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/config"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/factory"
	"github.com/Philser/roguelike/internal/gamemap"
	"github.com/Philser/roguelike/internal/logger"
	"github.com/Philser/roguelike/internal/system"
)

func pos(x, y int32) component.Position { return component.Position{X: x, Y: y} }

func testSettings() config.Settings {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.InventorySlots = 4
	return cfg
}

// newArena builds a session over a walled room of the given size with the
// player at p. Entities may be added to s.world before calling begin.
func newArena(width, height int32, p component.Position) (*Session, ecs.EntityID) {
	gmap := gamemap.New(width, height)
	gmap.Carve(gamemap.NewRect(1, 1, width-2, height-2))
	w := ecs.NewWorld()
	cfg := testSettings()
	player := factory.NewPlayer(w, p, cfg.Player, cfg.InventorySlots)
	return newSession(cfg, logger.Discard(), w, gmap), player
}

// begin indexes whatever was spawned and runs the session up to its first
// request for input.
func begin(t *testing.T, s *Session) {
	t.Helper()
	system.IndexMap(s.world, s.gmap)
	s.advance()
	if s.State() != StateAwaitingActionInput {
		t.Fatalf("session started in %v", s.State())
	}
}

func spawnGoblin(s *Session, p component.Position) ecs.EntityID {
	return factory.NewMonster(s.world, component.MonsterGoblin, p, s.cfg.Monster)
}

func spawnItem(s *Session, kind component.ItemKind, p component.Position) ecs.EntityID {
	return factory.NewItem(s.world, kind, p, s.cfg.Items)
}

// giveItem puts a new item of kind straight into the player's pack.
func giveItem(t *testing.T, s *Session, player ecs.EntityID, kind component.ItemKind) ecs.EntityID {
	t.Helper()
	item := factory.NewItem(s.world, kind, component.Position{}, s.cfg.Items)
	s.world.Remove(item, component.CPosition)
	s.world.Remove(item, component.CRenderable)
	inv := s.world.Get(player, component.CInventory).(component.Inventory)
	if _, err := inv.Add(item); err != nil {
		t.Fatalf("give %v: %v", kind, err)
	}
	s.world.Add(player, inv)
	return item
}

func statsOf(s *Session, id ecs.EntityID) component.CombatStats {
	return s.world.Get(id, component.CCombatStats).(component.CombatStats)
}

func setHP(s *Session, id ecs.EntityID, hp int) {
	st := statsOf(s, id)
	st.HP = hp
	s.world.Add(id, st)
}

func posOf(s *Session, id ecs.EntityID) component.Position {
	return s.world.Get(id, component.CPosition).(component.Position)
}

func slotOf(s *Session, player ecs.EntityID, slot int) ecs.EntityID {
	return s.world.Get(player, component.CInventory).(component.Inventory).At(slot)
}

func lastLog(s *Session) string {
	lines := s.actions.Recent(1)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func logContains(s *Session, line string) bool {
	for _, l := range s.actions.Recent(s.actions.Len()) {
		if l == line {
			return true
		}
	}
	return false
}

func mustState(t *testing.T, s *Session, want TurnState) {
	t.Helper()
	if s.State() != want {
		t.Fatalf("state = %v, want %v", s.State(), want)
	}
}
