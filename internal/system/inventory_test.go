package system

import (
	"errors"
	"testing"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/factory"
)

var tuning = factory.ItemTuning{
	Heal:           20,
	MissileDamage:  8,
	FireballDamage: 20,
	FireballRadius: 3,
	ConfusionTurns: 4,
	Range:          6,
}

// pickUp runs the full request-then-resolve pickup for player.
func pickUp(t *testing.T, w *ecs.World, player ecs.EntityID) PickupResult {
	t.Helper()
	if err := RequestPickup(w, player); err != nil {
		t.Fatalf("RequestPickup: %v", err)
	}
	results := Pickup(w, discard())
	if len(results) != 1 {
		t.Fatalf("got %d pickup results, want 1", len(results))
	}
	return results[0]
}

func TestPickupMovesItemIntoInventory(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	potion := factory.NewItem(w, component.ItemHealthPotion, pos(3, 3), tuning)

	res := pickUp(t, w, player)

	if res.Err != nil || res.Item != potion || res.Slot != 0 {
		t.Fatalf("result = %+v", res)
	}
	if w.Has(potion, component.CPosition) || w.Has(potion, component.CRenderable) {
		t.Error("picked-up item should lose position and renderable")
	}
	if inv := w.Get(player, component.CInventory).(component.Inventory); inv.At(0) != potion {
		t.Errorf("slot 0 = %v, want %v", inv.At(0), potion)
	}
	if len(w.Query(component.CWantsToPickup)) != 0 {
		t.Error("pickup marker should be destroyed")
	}
}

func TestPickupNothingHere(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	factory.NewItem(w, component.ItemHealthPotion, pos(4, 3), tuning)

	if err := RequestPickup(w, player); !errors.Is(err, ErrNothingToPickUp) {
		t.Errorf("err = %v, want ErrNothingToPickUp", err)
	}
}

func TestPickupInventoryFullLeavesItem(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	w.Add(player, component.NewInventory(1))
	factory.NewItem(w, component.ItemHealthPotion, pos(3, 3), tuning)
	pickUp(t, w, player)

	second := factory.NewItem(w, component.ItemFireball, pos(3, 3), tuning)
	res := pickUp(t, w, player)

	if !errors.Is(res.Err, component.ErrInventoryFull) {
		t.Fatalf("err = %v, want ErrInventoryFull", res.Err)
	}
	if p, ok := w.Get(second, component.CPosition).(component.Position); !ok || p != pos(3, 3) {
		t.Error("item should remain on the ground")
	}
	if len(w.Query(component.CWantsToPickup)) != 0 {
		t.Error("pickup marker should be destroyed even on failure")
	}
}

func TestUseHealingItem(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	potion := factory.NewItem(w, component.ItemHealthPotion, pos(3, 3), tuning)
	pickUp(t, w, player)

	stats := statsOf(w, player)
	stats.HP = 90
	w.Add(player, stats)

	out, err := UseItem(w, player, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.NeedsTarget || out.Healed != 10 {
		t.Errorf("outcome = %+v, want 10 healed", out)
	}
	if hp := statsOf(w, player).HP; hp != 100 {
		t.Errorf("hp = %d, want clamped 100", hp)
	}
	if w.Alive(potion) {
		t.Error("potion should be consumed")
	}
	if inv := w.Get(player, component.CInventory).(component.Inventory); inv.Count() != 0 {
		t.Errorf("inventory count = %d, want 0", inv.Count())
	}
}

func TestUseEmptySlot(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	if _, err := UseItem(w, player, 2); !errors.Is(err, ErrNoSuchItem) {
		t.Errorf("err = %v, want ErrNoSuchItem", err)
	}
}

func TestUseRangedItemNeedsTarget(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	scroll := factory.NewItem(w, component.ItemMagicMissile, pos(3, 3), tuning)
	pickUp(t, w, player)

	out, err := UseItem(w, player, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !out.NeedsTarget || out.Range != 6 {
		t.Errorf("outcome = %+v", out)
	}
	if !w.Alive(scroll) {
		t.Error("ranged item must not be consumed before targeting")
	}
}

func TestAffectedCells(t *testing.T) {
	var visible []component.Position
	for y := int32(0); y < 10; y++ {
		for x := int32(0); x < 10; x++ {
			visible = append(visible, pos(x, y))
		}
	}
	if got := AffectedCells(pos(5, 5), 0, visible); len(got) != 1 || got[0] != pos(5, 5) {
		t.Errorf("single target = %v", got)
	}
	got := AffectedCells(pos(5, 5), 1, visible)
	if len(got) != 5 {
		t.Errorf("radius 1 = %v, want the plus shape", got)
	}
	// only visible cells are hit
	got = AffectedCells(pos(5, 5), 3, []component.Position{pos(5, 5), pos(9, 9), pos(6, 7)})
	if len(got) != 2 {
		t.Errorf("radius 3 over sparse set = %v", got)
	}
}

func TestTargetEventChecksVisibilityAndRange(t *testing.T) {
	gmap := openMap(20, 20)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	w.Add(player, component.Viewshed{Range: 12, Dirty: true})
	factory.NewItem(w, component.ItemMagicMissile, pos(2, 2), tuning)
	pickUp(t, w, player)
	UpdateViewsheds(w, gmap)

	if _, err := TargetEvent(w, player, 0, pos(12, 2)); !errors.Is(err, ErrNotTargetable) {
		t.Errorf("out of range: err = %v", err)
	}
	if _, err := TargetEvent(w, player, 0, pos(19, 19)); !errors.Is(err, ErrNotTargetable) {
		t.Errorf("not visible: err = %v", err)
	}
	ev, err := TargetEvent(w, player, 0, pos(6, 2))
	if err != nil {
		t.Fatal(err)
	}
	if len(ev.Targets) != 1 || ev.Targets[0] != pos(6, 2) {
		t.Errorf("targets = %v", ev.Targets)
	}
}

func TestFireballHitsAreaAndIsConsumed(t *testing.T) {
	gmap := openMap(20, 20)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	near := addMonster(w, gmap, pos(7, 2), 30)
	also := addMonster(w, gmap, pos(7, 4), 30)
	far := addMonster(w, gmap, pos(12, 2), 30)
	fireball := factory.NewItem(w, component.ItemFireball, pos(2, 2), tuning)
	pickUp(t, w, player)
	UpdateViewsheds(w, gmap)
	dmg := NewDamageTracker()

	ev, err := TargetEvent(w, player, 0, pos(7, 3))
	if err != nil {
		t.Fatal(err)
	}
	hits := ApplyItemEffect(w, gmap, dmg, ev)

	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want two monsters", hits)
	}
	for _, id := range []ecs.EntityID{near, also} {
		if got := dmg.Pending(id); len(got) != 1 || got[0] != 20 {
			t.Errorf("pending on %v = %v", id, got)
		}
	}
	if len(dmg.Pending(far)) != 0 || len(dmg.Pending(player)) != 0 {
		t.Error("actors outside the blast must not be hit")
	}
	if w.Alive(fireball) {
		t.Error("fireball should be consumed")
	}
}

func TestConfusionScrollConfusesMonster(t *testing.T) {
	gmap := openMap(20, 20)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	monster := addMonster(w, gmap, pos(5, 2), 30)
	factory.NewItem(w, component.ItemConfusionScroll, pos(2, 2), tuning)
	pickUp(t, w, player)
	UpdateViewsheds(w, gmap)

	ev, err := TargetEvent(w, player, 0, pos(5, 2))
	if err != nil {
		t.Fatal(err)
	}
	hits := ApplyItemEffect(w, gmap, NewDamageTracker(), ev)

	if len(hits) != 1 || hits[0].Confused != 4 || hits[0].Damage != 0 {
		t.Fatalf("hits = %+v", hits)
	}
	if c := w.Get(monster, component.CConfusion); c == nil || c.(component.Confusion).Turns != 4 {
		t.Errorf("confusion = %v", c)
	}
}

func TestDropItem(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(3, 3))
	potion := factory.NewItem(w, component.ItemHealthPotion, pos(3, 3), tuning)
	pickUp(t, w, player)

	if _, err := DropItem(w, player, 1); !errors.Is(err, ErrNoSuchItem) {
		t.Errorf("empty slot: err = %v", err)
	}
	dropped, err := DropItem(w, player, 0)
	if err != nil || dropped != potion {
		t.Fatalf("DropItem = %v, %v", dropped, err)
	}
	if id, ok := ItemAt(w, pos(3, 3)); !ok || id != potion {
		t.Error("dropped item should lie under the player")
	}
	if !w.Has(potion, component.CRenderable) {
		t.Error("dropped item should be renderable again")
	}

	factory.NewItem(w, component.ItemFireball, pos(4, 3), tuning)
	RequestPickup(w, player) // picks the potion back up
	Pickup(w, discard())
	ResolvePlayerMove(w, gmap, NewDamageTracker(), player, 1, 0)
	if _, err := DropItem(w, player, 0); !errors.Is(err, ErrItemUnderfoot) {
		t.Errorf("occupied floor: err = %v, want ErrItemUnderfoot", err)
	}
}
