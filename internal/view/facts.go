// Package view holds the read-only snapshot of a game that presentation
// layers draw from: the terminal renderer and the spectator feed.
package view

import (
	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// Visibility classifies a cell for drawing.
type Visibility uint8

const (
	Hidden     Visibility = iota // never seen
	Remembered                   // seen before, not in view now
	Visible                      // in the player's field of view
)

// Actor is a drawable entity on the map.
type Actor struct {
	ID          ecs.EntityID       `json:"id"`
	Name        string             `json:"name"`
	Glyph       rune               `json:"glyph"`
	Color       tcell.Color        `json:"color"`
	RenderOrder int                `json:"order"`
	Pos         component.Position `json:"pos"`
	// Visible is whether the actor stands in the player's field of view.
	Visible bool `json:"visible"`
}

// Facts is everything the presentation layer may show about one moment of
// the game.
type Facts struct {
	Tick   uint64 `json:"tick"`
	State  string `json:"state"`
	Width  int32  `json:"width"`
	Height int32  `json:"height"`

	// Tiles and Vis are row-major, Width*Height long.
	Tiles []gamemap.TileType `json:"tiles"`
	Vis   []Visibility       `json:"vis"`
	// Blocked lists floor cells held by a blocking entity; walls always block.
	Blocked []component.Position `json:"blocked"`
	Actors  []Actor              `json:"actors"`

	PlayerPos component.Position `json:"player"`
	HP        int                `json:"hp"`
	MaxHP     int                `json:"max_hp"`
	Log       []string           `json:"log"`

	// Inventory lists item names by slot; empty slots are "".
	Inventory []string `json:"inventory,omitempty"`
	// Cursor is the highlighted inventory slot, or -1 when the inventory
	// screen is closed.
	Cursor int `json:"cursor"`
	// Target is the targeting reticle while aiming.
	Target *component.Position `json:"target,omitempty"`
	// AreaRadius is the blast radius of the item being aimed, if any.
	AreaRadius int `json:"area_radius,omitempty"`

	GameOver bool `json:"game_over"`
}

// At returns the tile and visibility of (x, y). Out-of-range cells read as
// hidden walls.
func (f Facts) At(x, y int32) (gamemap.TileType, Visibility) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return gamemap.TileWall, Hidden
	}
	i := int(y)*int(f.Width) + int(x)
	return f.Tiles[i], f.Vis[i]
}
