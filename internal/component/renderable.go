package component

import (
	"github.com/Philser/roguelike/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 6

// Renderable carries the visual attributes handed to the presentation layer.
type Renderable struct {
	Glyph       rune
	FGColor     tcell.Color
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
