package system

import (
	"testing"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"
)

func TestFOVOriginAlwaysVisible(t *testing.T) {
	gmap := openMap(20, 20)
	if !ComputeFOV(pos(5, 5), gmap, 5).Has(pos(5, 5)) {
		t.Error("origin must be visible")
	}
}

func TestFOVRespectsRadius(t *testing.T) {
	gmap := openMap(30, 30)
	visible := ComputeFOV(pos(15, 15), gmap, 5)
	if !visible.Has(pos(19, 15)) {
		t.Error("(19,15) is 4 away and should be visible")
	}
	if visible.Has(pos(21, 15)) || visible.Has(pos(15, 9)) {
		t.Error("cells beyond the radius must not be visible")
	}
}

func TestFOVNeverReturnsOutOfBounds(t *testing.T) {
	gmap := openMap(6, 6)
	ComputeFOV(pos(0, 0), gmap, 10).Each(func(p component.Position) {
		if !gmap.InBounds(p) {
			t.Errorf("out-of-bounds cell %v in FOV", p)
		}
	})
}

func TestFOVWallBlocksSight(t *testing.T) {
	gmap := openMap(20, 20)
	for y := int32(0); y < 20; y++ {
		gmap.SetTile(pos(8, y), gamemap.TileWall)
	}
	visible := ComputeFOV(pos(5, 5), gmap, 10)
	if !visible.Has(pos(8, 5)) {
		t.Error("the wall itself should be lit")
	}
	for y := int32(0); y < 20; y++ {
		if visible.Has(pos(9, y)) {
			t.Fatalf("(9,%d) is behind a full wall", y)
		}
	}
}

// TestFOVDoorway encloses the origin in a walled room with one door on the
// east side and checks that light only escapes through the door.
func TestFOVDoorway(t *testing.T) {
	gmap := openMap(12, 12)
	for i := int32(3); i <= 7; i++ {
		gmap.SetTile(pos(3, i), gamemap.TileWall)
		gmap.SetTile(pos(7, i), gamemap.TileWall)
		gmap.SetTile(pos(i, 3), gamemap.TileWall)
		gmap.SetTile(pos(i, 7), gamemap.TileWall)
	}
	gmap.SetTile(pos(7, 5), gamemap.TileFloor)

	visible := ComputeFOV(pos(5, 5), gmap, 10)

	for _, p := range []component.Position{pos(4, 4), pos(6, 6), pos(7, 5), pos(8, 5), pos(9, 5), pos(3, 3)} {
		if !visible.Has(p) {
			t.Errorf("%v should be visible", p)
		}
	}
	visible.Each(func(p component.Position) {
		if p.X <= 2 || p.Y <= 2 || p.Y >= 8 {
			t.Errorf("%v leaked outside the room", p)
		}
	})
	for _, p := range []component.Position{pos(8, 1), pos(9, 9), pos(8, 2), pos(10, 10)} {
		if visible.Has(p) {
			t.Errorf("%v should be hidden by the doorframe", p)
		}
	}
}

func TestFOVDeterministic(t *testing.T) {
	gmap := openMap(20, 20)
	gmap.SetTile(pos(7, 7), gamemap.TileWall)
	gmap.SetTile(pos(3, 6), gamemap.TileWall)
	a := ComputeFOV(pos(5, 5), gmap, 8)
	b := ComputeFOV(pos(5, 5), gmap, 8)
	if a.Size() != b.Size() {
		t.Fatalf("sizes differ: %d vs %d", a.Size(), b.Size())
	}
	a.Each(func(p component.Position) {
		if !b.Has(p) {
			t.Errorf("%v missing from second run", p)
		}
	})
}

func TestUpdateViewshedsVisitsForPlayerOnly(t *testing.T) {
	gmap := openMap(40, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 5))
	monster := addMonster(w, gmap, pos(35, 5), 10)
	w.Add(player, component.Viewshed{Range: 3, Dirty: true})

	UpdateViewsheds(w, gmap)

	for _, id := range []ecs.EntityID{player, monster} {
		vs := w.Get(id, component.CViewshed).(component.Viewshed)
		if vs.Dirty || len(vs.VisibleTiles) == 0 {
			t.Errorf("viewshed of %v not recomputed: %+v", id, vs)
		}
	}
	if !gmap.IsVisited(pos(2, 5)) {
		t.Error("player's cell should be visited")
	}
	if gmap.IsVisited(pos(35, 5)) {
		t.Error("monster sight must not reveal the map")
	}
	visited := gmap.VisitedCount()
	pvs := w.Get(player, component.CViewshed).(component.Viewshed)
	if visited != len(pvs.VisibleTiles) {
		t.Errorf("visited %d cells, player sees %d", visited, len(pvs.VisibleTiles))
	}
}

func TestUpdateViewshedsSkipsClean(t *testing.T) {
	gmap := openMap(10, 10)
	w := ecs.NewWorld()
	player := addPlayer(w, gmap, pos(2, 2))
	stale := []component.Position{pos(9, 9)}
	w.Add(player, component.Viewshed{VisibleTiles: stale, Range: 5, Dirty: false})

	UpdateViewsheds(w, gmap)

	vs := w.Get(player, component.CViewshed).(component.Viewshed)
	if len(vs.VisibleTiles) != 1 || vs.VisibleTiles[0] != pos(9, 9) {
		t.Errorf("clean viewshed was recomputed: %v", vs.VisibleTiles)
	}
}
