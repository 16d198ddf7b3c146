package game

import "github.com/Philser/roguelike/internal/component"

// Intent is one player request handed to the Turn Controller.
type Intent interface {
	intent()
}

// MoveIntent moves or attacks by (DX, DY). In the inventory it moves the
// cursor by DY; while targeting it moves the reticle.
type MoveIntent struct{ DX, DY int32 }

// WaitIntent passes the turn.
type WaitIntent struct{}

// PickupIntent picks up the item under the player.
type PickupIntent struct{}

// OpenInventoryIntent opens the inventory screen.
type OpenInventoryIntent struct{}

// OpenTargetingIntent starts aiming the ranged item in Slot.
type OpenTargetingIntent struct{ Slot int }

// CancelIntent leaves the inventory or targeting without acting.
type CancelIntent struct{}

// ConfirmTargetIntent fires the item being aimed at Pos.
type ConfirmTargetIntent struct{ Pos component.Position }

// UseItemIntent uses the item in Slot.
type UseItemIntent struct{ Slot int }

// DropItemIntent drops the item in Slot under the player.
type DropItemIntent struct{ Slot int }

func (MoveIntent) intent()          {}
func (WaitIntent) intent()          {}
func (PickupIntent) intent()        {}
func (OpenInventoryIntent) intent() {}
func (OpenTargetingIntent) intent() {}
func (CancelIntent) intent()        {}
func (ConfirmTargetIntent) intent() {}
func (UseItemIntent) intent()       {}
func (DropItemIntent) intent()      {}
