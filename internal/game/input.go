package game

import "github.com/gdamore/tcell/v2"

// keyToIntent translates a key press into an intent for the session's
// current state. quit is set when the key asks to leave the game.
func keyToIntent(ev *tcell.EventKey, s *Session) (in Intent, quit bool) {
	if ev.Key() == tcell.KeyCtrlC {
		return nil, true
	}
	switch s.State() {
	case StateAwaitingActionInput:
		if m, ok := moveKey(ev); ok {
			return m, false
		}
		if ev.Key() == tcell.KeyEscape {
			return nil, true
		}
		switch ev.Rune() {
		case '.', '5':
			return WaitIntent{}, false
		case 'g', ',':
			return PickupIntent{}, false
		case 'i':
			return OpenInventoryIntent{}, false
		case 'q':
			return nil, true
		}

	case StateAwaitingInventoryInput:
		sel := s.InventorySelection()
		switch ev.Key() {
		case tcell.KeyUp:
			return MoveIntent{DY: -1}, false
		case tcell.KeyDown:
			return MoveIntent{DY: 1}, false
		case tcell.KeyEnter:
			return UseItemIntent{Slot: sel}, false
		case tcell.KeyEscape:
			return CancelIntent{}, false
		}
		switch ev.Rune() {
		case 'k':
			return MoveIntent{DY: -1}, false
		case 'j':
			return MoveIntent{DY: 1}, false
		case 'u':
			return UseItemIntent{Slot: sel}, false
		case 'd':
			return DropItemIntent{Slot: sel}, false
		case 't':
			return OpenTargetingIntent{Slot: sel}, false
		case 'i', 'q':
			return CancelIntent{}, false
		}

	case StateTargeting:
		if m, ok := moveKey(ev); ok {
			return m, false
		}
		switch {
		case ev.Key() == tcell.KeyEnter, ev.Rune() == 'f', ev.Rune() == 't':
			cursor, _ := s.TargetCursor()
			return ConfirmTargetIntent{Pos: cursor}, false
		case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
			return CancelIntent{}, false
		}

	case StateGameOver:
		return nil, true
	}
	return nil, false
}

// moveKey reads the arrow keys and vi keys as orthogonal steps.
func moveKey(ev *tcell.EventKey) (MoveIntent, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return MoveIntent{DY: -1}, true
	case tcell.KeyDown:
		return MoveIntent{DY: 1}, true
	case tcell.KeyLeft:
		return MoveIntent{DX: -1}, true
	case tcell.KeyRight:
		return MoveIntent{DX: 1}, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'k':
			return MoveIntent{DY: -1}, true
		case 'j':
			return MoveIntent{DY: 1}, true
		case 'h':
			return MoveIntent{DX: -1}, true
		case 'l':
			return MoveIntent{DX: 1}, true
		}
	}
	return MoveIntent{}, false
}
