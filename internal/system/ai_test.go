package system

import (
	"testing"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
)

func TestMonsterStepsTowardVisiblePlayer(t *testing.T) {
	gmap := openMap(20, 20)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 5))
	monster := addMonster(w, gmap, pos(8, 5), 10)
	UpdateViewsheds(w, gmap)
	dmg := NewDamageTracker()

	attacks := RunMonsterAI(w, gmap, dmg, player, discard())

	if len(attacks) != 0 {
		t.Fatalf("monster attacked from range: %+v", attacks)
	}
	if p := posOf(w, monster); p != pos(7, 5) {
		t.Errorf("monster at %v, want (7,5)", p)
	}
	if !w.Get(monster, component.CViewshed).(component.Viewshed).Dirty {
		t.Error("moved monster should have a dirty viewshed")
	}
	mustInvariants(t, gmap)
}

func TestMonsterAttacksWhenAdjacent(t *testing.T) {
	cases := []struct {
		name string
		at   component.Position
	}{
		{"orthogonal", pos(6, 5)},
		{"diagonal", pos(6, 6)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gmap := openMap(20, 20)
			w := ecs.NewWorld()
			player := addPlayer(w, gmap, pos(5, 5))
			monster := addMonster(w, gmap, c.at, 10)
			UpdateViewsheds(w, gmap)
			dmg := NewDamageTracker()

			attacks := RunMonsterAI(w, gmap, dmg, player, discard())

			if len(attacks) != 1 || attacks[0].Attacker != monster || attacks[0].Amount != 4 {
				t.Fatalf("attacks = %+v", attacks)
			}
			if got := dmg.Pending(player); len(got) != 1 || got[0] != 4 {
				t.Errorf("pending on player = %v, want [4]", got)
			}
			if p := posOf(w, monster); p != c.at {
				t.Errorf("attacking monster moved to %v", p)
			}
		})
	}
}

func TestMonsterIgnoresUnseenPlayer(t *testing.T) {
	gmap := openMap(20, 20)
	for y := int32(0); y < 20; y++ {
		gmap.SetTile(pos(10, y), gamemap.TileWall)
	}
	gmap.SetTile(pos(10, 19), gamemap.TileFloor)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	monster := addMonster(w, gmap, pos(15, 2), 10)
	UpdateViewsheds(w, gmap)

	RunMonsterAI(w, gmap, NewDamageTracker(), player, discard())

	if p := posOf(w, monster); p != pos(15, 2) {
		t.Errorf("monster without sight of the player moved to %v", p)
	}
}

func TestMonsterWithoutPathStays(t *testing.T) {
	gmap := openMap(20, 5)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	// ring of goblins around the player; the outer goblin can see but not reach
	for _, p := range []component.Position{pos(1, 1), pos(2, 1), pos(3, 1), pos(1, 2), pos(3, 2), pos(1, 3), pos(2, 3), pos(3, 3)} {
		addMonster(w, gmap, p, 10)
	}
	outer := addMonster(w, gmap, pos(6, 2), 10)
	UpdateViewsheds(w, gmap)

	RunMonsterAI(w, gmap, NewDamageTracker(), player, discard())

	if p := posOf(w, outer); p != pos(6, 2) {
		t.Errorf("unreachable monster moved to %v", p)
	}
}

func TestConfusedMonsterSkipsTurns(t *testing.T) {
	gmap := openMap(20, 20)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(5, 5))
	monster := addMonster(w, gmap, pos(6, 5), 10)
	w.Add(monster, component.Confusion{Turns: 2})
	UpdateViewsheds(w, gmap)
	dmg := NewDamageTracker()

	for turn := 1; turn <= 2; turn++ {
		if attacks := RunMonsterAI(w, gmap, dmg, player, discard()); len(attacks) != 0 {
			t.Fatalf("turn %d: confused monster attacked", turn)
		}
	}
	if w.Has(monster, component.CConfusion) {
		t.Fatal("confusion should be removed once spent")
	}
	if attacks := RunMonsterAI(w, gmap, dmg, player, discard()); len(attacks) != 1 {
		t.Errorf("monster should attack after confusion wears off, got %+v", attacks)
	}
}

func TestMonstersActInIDOrder(t *testing.T) {
	gmap := openMap(20, 5)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	first := addMonster(w, gmap, pos(3, 2), 10)
	second := addMonster(w, gmap, pos(2, 3), 10)
	UpdateViewsheds(w, gmap)

	attacks := RunMonsterAI(w, gmap, NewDamageTracker(), player, discard())

	if len(attacks) != 2 || attacks[0].Attacker != first || attacks[1].Attacker != second {
		t.Errorf("attack order = %+v", attacks)
	}
}

func TestTwoMonstersNeverShareACell(t *testing.T) {
	gmap := openMap(20, 3)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(1, 1))
	addMonster(w, gmap, pos(6, 1), 10)
	addMonster(w, gmap, pos(7, 1), 10)
	dmg := NewDamageTracker()

	for range 6 {
		UpdateViewsheds(w, gmap)
		RunMonsterAI(w, gmap, dmg, player, discard())
		mustInvariants(t, gmap)
	}
	if gmap.Occupants() != 3 {
		t.Errorf("occupants = %d, want 3", gmap.Occupants())
	}
}
