// Package game is the Turn Controller: it owns one dungeon and walks it
// through the turn states, resolving player intents and monster turns.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Philser/roguelike/internal/component"
	"github.com/Philser/roguelike/internal/config"
	"github.com/Philser/roguelike/internal/ecs"
	"github.com/Philser/roguelike/internal/factory"
	"github.com/Philser/roguelike/internal/gamemap"
	"github.com/Philser/roguelike/internal/generate"
	"github.com/Philser/roguelike/internal/logger"
	"github.com/Philser/roguelike/internal/store"
	"github.com/Philser/roguelike/internal/system"
	"github.com/Philser/roguelike/internal/view"

	"github.com/sirupsen/logrus"
)

type actionKind uint8

const (
	actNone actionKind = iota
	actMove
	actWait
	actPickup
	actUse
	actDrop
	actEffect
)

// playerAction is the validated action PlayerTurn will resolve.
type playerAction struct {
	kind   actionKind
	dx, dy int32
	slot   int
	event  system.UseItemEvent
}

// Targeting is held while the player aims a ranged item.
type Targeting struct {
	Slot        int
	Item        ecs.EntityID
	Cursor      component.Position
	Radius      int
	ReturnState TurnState
}

// InventoryCursor is the selection on the inventory screen. At most one
// exists, and only while the inventory is open.
type InventoryCursor struct {
	Selected    int
	ReturnState TurnState
}

type runStats struct {
	turns, kills int
	dealt, taken int
	cause        string
}

// playerSnapshot is what the presentation layer needs about the player; it
// outlives the player entity so the final frame can still be drawn.
type playerSnapshot struct {
	pos       component.Position
	stats     component.CombatStats
	visible   []component.Position
	inventory []string
}

// Session is one game from map generation to game over.
type Session struct {
	cfg     config.Settings
	log     logrus.FieldLogger
	world   *ecs.World
	gmap    *gamemap.GameMap
	dmg     *system.DamageTracker
	actions *ActionLog

	state     TurnState
	pending   Intent
	action    playerAction
	targeting *Targeting
	cursor    *InventoryCursor

	tick      uint64
	stats     runStats
	player    playerSnapshot
	observers []func(view.Facts)

	id      string
	started time.Time
	ended   time.Time
}

// New generates a dungeon from cfg and runs the session up to the first
// request for input.
func New(cfg config.Settings, log logrus.FieldLogger) *Session {
	log = logger.OrDiscard(log)
	gcfg := &generate.Config{
		MapWidth:           cfg.MapWidth,
		MapHeight:          cfg.MapHeight,
		MaxRooms:           cfg.MaxRooms,
		RejectOverlaps:     cfg.RejectOverlaps,
		MaxMonstersPerRoom: cfg.MaxMonstersPerRoom,
		MaxItemsPerRoom:    cfg.MaxItemsPerRoom,
		Rand:               rand.New(rand.NewSource(cfg.Seed)),
		Log:                log,
	}
	gmap, start := generate.Generate(gcfg)
	w := ecs.NewWorld()
	factory.NewPlayer(w, start, cfg.Player, cfg.InventorySlots)
	// index the player first so nothing spawns on top of them
	system.IndexMap(w, gmap)

	pop := generate.Populate(gmap, gcfg)
	for _, m := range pop.Monsters {
		factory.NewMonster(w, m.Kind, m.Pos, cfg.Monster)
	}
	for _, it := range pop.Items {
		factory.NewItem(w, it.Kind, it.Pos, cfg.Items)
	}

	s := newSession(cfg, log, w, gmap)
	s.log.WithFields(logrus.Fields{
		"seed":     cfg.Seed,
		"rooms":    len(gmap.Rooms),
		"monsters": len(pop.Monsters),
		"items":    len(pop.Items),
	}).Info("dungeon generated")
	s.actions.Add("Welcome, adventurer!")
	s.advance()
	return s
}

// newSession wraps an already populated world. The session starts in
// MapLoaded and has not ticked yet.
func newSession(cfg config.Settings, log logrus.FieldLogger, w *ecs.World, gmap *gamemap.GameMap) *Session {
	system.IndexMap(w, gmap)
	return &Session{
		cfg:     cfg,
		log:     logger.OrDiscard(log).WithField("component", "game"),
		world:   w,
		gmap:    gmap,
		dmg:     system.NewDamageTracker(),
		actions: NewActionLog(cfg.LogRetain),
		state:   StateMapLoaded,
		id:      store.NewID(),
		started: time.Now(),
	}
}

// OnFacts registers fn to receive a snapshot whenever the session renders.
func (s *Session) OnFacts(fn func(view.Facts)) {
	s.observers = append(s.observers, fn)
}

// ID identifies the session in run records and spectator frames.
func (s *Session) ID() string { return s.id }

// State returns the current turn state.
func (s *Session) State() TurnState { return s.state }

// Log returns the action log.
func (s *Session) Log() *ActionLog { return s.actions }

// Player returns the single player entity. Zero or several players is a
// broken invariant and panics.
func (s *Session) Player() ecs.EntityID {
	ids := s.world.Query(component.CTagPlayer)
	if len(ids) != 1 {
		panic(fmt.Sprintf("game: expected exactly one player, found %d", len(ids)))
	}
	return ids[0]
}

// Step hands one intent to the session and ticks until it needs more input.
// An intent the current state cannot use is discarded.
func (s *Session) Step(in Intent) TurnState {
	s.pending = in
	s.advance()
	s.pending = nil
	return s.state
}

func (s *Session) advance() {
	for s.Tick() {
	}
}

// Tick runs the active state once. It reports false when nothing could
// happen because the state is waiting for an intent.
func (s *Session) Tick() bool {
	if s.state.awaitsInput() && s.pending == nil {
		return false
	}
	prev := s.state

	switch s.state {
	case StateMapLoaded:
		system.UpdateViewsheds(s.world, s.gmap)
		s.state = StateRender
	case StateRender:
		s.publish()
		s.state = StateAwaitingActionInput
	case StateAwaitingActionInput:
		s.awaitAction(s.take())
	case StatePlayerTurn:
		s.playerTurn()
	case StateMonsterTurn:
		s.monsterTurn()
	case StateTargeting:
		s.aim(s.take())
	case StateSetupInventoryScreen:
		s.setupInventory()
	case StateRenderInventory:
		s.publish()
		s.state = StateAwaitingInventoryInput
	case StateAwaitingInventoryInput:
		s.inventoryInput(s.take())
	case StateGameOver:
		s.take()
		return false
	}

	s.tick++
	if s.state != StateGameOver {
		s.snapshot()
	}
	if s.state != prev {
		s.log.WithFields(logrus.Fields{"from": prev, "state": s.state}).Debug("state change")
	}
	return true
}

func (s *Session) take() Intent {
	in := s.pending
	s.pending = nil
	return in
}

func (s *Session) awaitAction(in Intent) {
	switch in := in.(type) {
	case MoveIntent:
		if !unitStep(in.DX, in.DY) {
			s.log.WithFields(logrus.Fields{"dx": in.DX, "dy": in.DY}).Warn("ignoring move that is not one orthogonal step")
			return
		}
		s.queue(playerAction{kind: actMove, dx: in.DX, dy: in.DY})
	case WaitIntent:
		s.queue(playerAction{kind: actWait})
	case PickupIntent:
		s.requestPickup()
	case OpenInventoryIntent:
		s.state = StateSetupInventoryScreen
	case OpenTargetingIntent:
		s.beginTargeting(in.Slot)
	case UseItemIntent:
		s.useSlot(in.Slot)
	case DropItemIntent:
		s.dropSlot(in.Slot)
	}
}

// unitStep reports whether (dx, dy) is one of the four orthogonal unit moves.
func unitStep(dx, dy int32) bool {
	return (dx == 0) != (dy == 0) && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func (s *Session) queue(a playerAction) {
	s.action = a
	s.state = StatePlayerTurn
}

// requestPickup files the pickup only if it can succeed; a failed pickup
// is reported and costs no turn.
func (s *Session) requestPickup() {
	player := s.Player()
	pos := s.world.Get(player, component.CPosition).(component.Position)
	if _, ok := system.ItemAt(s.world, pos); !ok {
		s.report(system.ErrNothingToPickUp)
		return
	}
	inv := s.world.Get(player, component.CInventory).(component.Inventory)
	if inv.Count() == inv.Capacity() {
		s.report(component.ErrInventoryFull)
		return
	}
	if err := system.RequestPickup(s.world, player); err != nil {
		s.report(err)
		return
	}
	s.queue(playerAction{kind: actPickup})
}

func (s *Session) inventoryItem(slot int) (ecs.EntityID, bool) {
	inv := s.world.Get(s.Player(), component.CInventory).(component.Inventory)
	item := inv.At(slot)
	if item == ecs.NilEntity {
		s.report(system.ErrNoSuchItem)
		return ecs.NilEntity, false
	}
	return item, true
}

func (s *Session) useSlot(slot int) {
	item, ok := s.inventoryItem(slot)
	if !ok {
		return
	}
	if s.world.Has(item, component.CRanged) {
		s.beginTargeting(slot)
		return
	}
	s.queue(playerAction{kind: actUse, slot: slot})
}

func (s *Session) dropSlot(slot int) {
	if _, ok := s.inventoryItem(slot); !ok {
		return
	}
	pos := s.world.Get(s.Player(), component.CPosition).(component.Position)
	if _, taken := system.ItemAt(s.world, pos); taken {
		s.report(system.ErrItemUnderfoot)
		return
	}
	s.queue(playerAction{kind: actDrop, slot: slot})
}

// beginTargeting enters Targeting for the ranged item in slot, returning to
// AwaitingActionInput on cancel.
func (s *Session) beginTargeting(slot int) {
	item, ok := s.inventoryItem(slot)
	if !ok {
		return
	}
	if !s.world.Has(item, component.CRanged) {
		s.actions.Addf("The %s cannot be aimed.", nameOf(s.world, item))
		return
	}
	radius := 0
	if c := s.world.Get(item, component.CAreaOfEffect); c != nil {
		radius = c.(component.AreaOfEffect).Radius
	}
	s.targeting = &Targeting{
		Slot:        slot,
		Item:        item,
		Cursor:      s.world.Get(s.Player(), component.CPosition).(component.Position),
		Radius:      radius,
		ReturnState: StateAwaitingActionInput,
	}
	s.actions.Addf("Aiming the %s. Choose a target.", nameOf(s.world, item))
	s.state = StateTargeting
	s.publish()
}

func (s *Session) aim(in Intent) {
	t := s.targeting
	if t == nil {
		panic("game: targeting state without a target")
	}
	switch in := in.(type) {
	case MoveIntent:
		next := t.Cursor.Add(in.DX, in.DY)
		if s.gmap.InBounds(next) {
			t.Cursor = next
		}
		s.publish()
	case ConfirmTargetIntent:
		ev, err := system.TargetEvent(s.world, s.Player(), t.Slot, in.Pos)
		if err != nil {
			s.report(err)
			return
		}
		s.targeting = nil
		s.queue(playerAction{kind: actEffect, event: ev})
	case CancelIntent:
		s.targeting = nil
		s.state = t.ReturnState
		s.publish()
	}
}

func (s *Session) setupInventory() {
	if s.cursor != nil {
		panic("game: inventory cursor already open")
	}
	s.cursor = &InventoryCursor{ReturnState: StateAwaitingActionInput}
	s.state = StateRenderInventory
}

func (s *Session) mustCursor() *InventoryCursor {
	if s.cursor == nil {
		panic("game: no inventory cursor")
	}
	return s.cursor
}

func (s *Session) inventoryInput(in Intent) {
	c := s.mustCursor()
	switch in := in.(type) {
	case MoveIntent:
		slots := s.cfg.InventorySlots
		c.Selected = min(max(c.Selected+int(in.DY), 0), slots-1)
		s.state = StateRenderInventory
	case CancelIntent:
		s.cursor = nil
		s.state = c.ReturnState
		s.publish()
	case UseItemIntent:
		if _, ok := s.inventoryItem(in.Slot); ok {
			s.cursor = nil
			s.state = c.ReturnState
			s.useSlot(in.Slot)
		}
	case DropItemIntent:
		if _, ok := s.inventoryItem(in.Slot); ok {
			s.cursor = nil
			s.state = c.ReturnState
			s.dropSlot(in.Slot)
		}
	case OpenTargetingIntent:
		if _, ok := s.inventoryItem(in.Slot); ok {
			s.cursor = nil
			s.state = c.ReturnState
			s.beginTargeting(in.Slot)
		}
	}
}

// playerTurn resolves the queued action, then always hands over to the
// monsters, even if the action turned out to do nothing.
func (s *Session) playerTurn() {
	player := s.Player()
	a := s.action
	s.action = playerAction{}
	s.stats.turns++

	switch a.kind {
	case actMove:
		res, target := system.ResolvePlayerMove(s.world, s.gmap, s.dmg, player, a.dx, a.dy)
		if res == system.MoveAttack {
			power := s.world.Get(player, component.CCombatStats).(component.CombatStats).Power
			s.actions.Addf("Player hits %s for %d", nameOf(s.world, target), power)
		}
	case actPickup:
		for _, r := range system.Pickup(s.world, s.log) {
			if r.Err != nil {
				s.report(r.Err)
				continue
			}
			s.actions.Addf("You pick up the %s.", r.Name)
		}
	case actUse:
		out, err := system.UseItem(s.world, player, a.slot)
		if err != nil {
			s.report(err)
			break
		}
		s.actions.Addf("You use the %s, healing %d hp.", out.Name, out.Healed)
	case actDrop:
		item, err := system.DropItem(s.world, player, a.slot)
		if err != nil {
			s.report(err)
			break
		}
		s.actions.Addf("You drop the %s.", nameOf(s.world, item))
	case actEffect:
		s.applyEffect(player, a.event)
	}

	if s.resolveDamage() {
		return
	}
	system.UpdateViewsheds(s.world, s.gmap)
	s.state = StateMonsterTurn
}

func (s *Session) applyEffect(player ecs.EntityID, ev system.UseItemEvent) {
	itemName := nameOf(s.world, ev.Item)
	hits := system.ApplyItemEffect(s.world, s.gmap, s.dmg, ev)
	if len(hits) == 0 {
		s.actions.Addf("The %s hits nothing.", itemName)
	}
	for _, h := range hits {
		if h.Damage > 0 {
			s.actions.Addf("%s hits %s for %d", itemName, h.Name, h.Damage)
			if h.Target == player {
				s.stats.cause = itemName
			}
		}
		if h.Confused > 0 {
			s.actions.Addf("%s is confused", h.Name)
		}
	}
}

func (s *Session) monsterTurn() {
	player := s.Player()
	for _, a := range system.RunMonsterAI(s.world, s.gmap, s.dmg, player, s.log) {
		name := nameOf(s.world, a.Attacker)
		s.actions.Addf("%s hits Player for %d", name, a.Amount)
		s.stats.cause = name
	}
	if s.resolveDamage() {
		return
	}
	system.UpdateViewsheds(s.world, s.gmap)
	s.state = StateRender
}

// resolveDamage applies queued damage and removes the dead. It reports
// whether the player died, in which case the session is over.
func (s *Session) resolveDamage() bool {
	player := s.Player()
	for _, h := range s.dmg.Apply(s.world) {
		if h.Victim == player {
			s.stats.taken += h.Amount
		} else {
			s.stats.dealt += h.Amount
		}
	}
	s.snapshot()

	playerDied := false
	for _, d := range system.CollectDead(s.world, s.gmap) {
		if d.WasPlayer {
			s.actions.Add("You died")
			playerDied = true
			continue
		}
		s.actions.Addf("%s died", d.Name)
		s.stats.kills++
		s.log.WithFields(logrus.Fields{"entity": d.ID, "pos": d.Pos}).Debug("monster died")
	}
	if playerDied {
		s.state = StateGameOver
		s.targeting = nil
		s.cursor = nil
		s.ended = time.Now()
		s.log.WithFields(logrus.Fields{"turns": s.stats.turns, "cause": s.stats.cause}).Info("player died")
		s.publish()
	}
	return playerDied
}

// snapshot records the player's drawable state.
func (s *Session) snapshot() {
	player := s.Player()
	s.player.pos = s.world.Get(player, component.CPosition).(component.Position)
	s.player.stats = s.world.Get(player, component.CCombatStats).(component.CombatStats)
	s.player.visible = s.world.Get(player, component.CViewshed).(component.Viewshed).VisibleTiles

	inv := s.world.Get(player, component.CInventory).(component.Inventory)
	names := make([]string, inv.Capacity())
	for i, id := range inv.Slots {
		if id != ecs.NilEntity {
			names[i] = nameOf(s.world, id)
		}
	}
	s.player.inventory = names
}

func (s *Session) publish() {
	if len(s.observers) == 0 {
		return
	}
	f := s.Facts()
	for _, fn := range s.observers {
		fn(f)
	}
}

// report puts the player-facing text for an expected failure in the log.
func (s *Session) report(err error) {
	s.actions.Add(describe(err))
}

func describe(err error) string {
	switch {
	case errors.Is(err, component.ErrInventoryFull):
		return "Your inventory is full."
	case errors.Is(err, system.ErrNothingToPickUp):
		return "There is nothing here to pick up."
	case errors.Is(err, system.ErrNoSuchItem):
		return "You have no item in that slot."
	case errors.Is(err, system.ErrNotTargetable):
		return "You can't target that."
	case errors.Is(err, system.ErrItemUnderfoot):
		return "There is already something here."
	}
	return err.Error()
}

// Record summarizes the run so far.
func (s *Session) Record() store.RunRecord {
	ended := s.ended
	if ended.IsZero() {
		ended = time.Now()
	}
	rec := store.RunRecord{
		ID:          s.id,
		Seed:        s.cfg.Seed,
		Turns:       s.stats.turns,
		Kills:       s.stats.kills,
		DamageDealt: s.stats.dealt,
		DamageTaken: s.stats.taken,
		StartedAt:   s.started,
		EndedAt:     ended,
	}
	if s.state == StateGameOver {
		rec.CauseOfDeath = s.stats.cause
	}
	return rec
}

// TargetCursor returns the aiming reticle while targeting.
func (s *Session) TargetCursor() (component.Position, bool) {
	if s.targeting == nil {
		return component.Position{}, false
	}
	return s.targeting.Cursor, true
}

// InventorySelection returns the highlighted slot, or -1 when the inventory
// is closed.
func (s *Session) InventorySelection() int {
	if s.cursor == nil {
		return -1
	}
	return s.cursor.Selected
}

func nameOf(w *ecs.World, id ecs.EntityID) string {
	if c := w.Get(id, component.CName); c != nil {
		return c.(component.Name).Name
	}
	return id.String()
}
