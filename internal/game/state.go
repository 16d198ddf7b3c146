package game

// TurnState is the Turn Controller's current phase. Exactly one is active.
type TurnState uint8

const (
	StateMapLoaded TurnState = iota
	StateRender
	StateAwaitingActionInput
	StatePlayerTurn
	StateMonsterTurn
	StateTargeting
	StateSetupInventoryScreen
	StateRenderInventory
	StateAwaitingInventoryInput
	StateGameOver
)

var stateNames = [...]string{
	StateMapLoaded:              "MapLoaded",
	StateRender:                 "Render",
	StateAwaitingActionInput:    "AwaitingActionInput",
	StatePlayerTurn:             "PlayerTurn",
	StateMonsterTurn:            "MonsterTurn",
	StateTargeting:              "Targeting",
	StateSetupInventoryScreen:   "SetupInventoryScreen",
	StateRenderInventory:        "RenderInventory",
	StateAwaitingInventoryInput: "AwaitingInventoryInput",
	StateGameOver:               "GameOver",
}

func (s TurnState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// awaitsInput reports whether the state only advances on an intent.
func (s TurnState) awaitsInput() bool {
	switch s {
	case StateAwaitingActionInput, StateTargeting, StateAwaitingInventoryInput, StateGameOver:
		return true
	}
	return false
}
