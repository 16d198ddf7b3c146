// Package generate builds dungeon levels: randomly placed rectangular rooms
// joined by L-shaped corridors, then monster and item spawns on free floor.
package generate

import (
	"math/rand"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/gamemap"
	"github.com/Philser/roguelike/internal/logger"

	"github.com/sirupsen/logrus"
)

// Config drives procedural generation for one level.
type Config struct {
	MapWidth, MapHeight int32
	MaxRooms            int
	// RejectOverlaps discards candidate rooms that intersect an earlier one.
	// When false, overlapping rooms are carved anyway and merge.
	RejectOverlaps     bool
	MaxMonstersPerRoom int
	MaxItemsPerRoom    int
	Rand               *rand.Rand
	Log                logrus.FieldLogger
}

// Generate carves rooms and corridors into a fresh map and returns it with the
// player start, the center of the first room.
func Generate(cfg *Config) (*gamemap.GameMap, component.Position) {
	log := logger.OrDiscard(cfg.Log).WithField("component", "generate")
	gmap := gamemap.New(cfg.MapWidth, cfg.MapHeight)

	minW, maxW := sizeRange(cfg.MapWidth)
	minH, maxH := sizeRange(cfg.MapHeight)

	for range cfg.MaxRooms {
		w := minW + cfg.Rand.Int31n(maxW-minW+1)
		h := minH + cfg.Rand.Int31n(maxH-minH+1)
		// Keep a one-cell wall border around the map.
		spanX, spanY := cfg.MapWidth-w-1, cfg.MapHeight-h-1
		if spanX < 1 || spanY < 1 {
			log.WithFields(logrus.Fields{"w": w, "h": h}).Debug("room does not fit")
			continue
		}
		room := gamemap.NewRect(cfg.Rand.Int31n(spanX)+1, cfg.Rand.Int31n(spanY)+1, w, h)

		if overlapsAny(room, gmap.Rooms) {
			if cfg.RejectOverlaps {
				continue
			}
			log.WithField("room", room).Debug("room overlaps an earlier one")
		}

		gmap.Carve(room)
		if n := len(gmap.Rooms); n > 0 {
			prev := gmap.Rooms[n-1].Center()
			carveCorridor(gmap, prev, room.Center(), cfg.Rand)
		}
		gmap.Rooms = append(gmap.Rooms, room)
	}

	if len(gmap.Rooms) == 0 {
		panic("generate: no room fits the map")
	}
	log.WithField("rooms", len(gmap.Rooms)).Debug("map generated")
	return gmap, gmap.Rooms[0].Center()
}

// sizeRange returns the allowed room extent along an axis of length dim.
func sizeRange(dim int32) (lo, hi int32) {
	lo, hi = max(dim/10, 1), max(dim/5, 1)
	return lo, hi
}

func overlapsAny(room gamemap.Rect, rooms []gamemap.Rect) bool {
	for _, other := range rooms {
		if room.Intersects(other) {
			return true
		}
	}
	return false
}
