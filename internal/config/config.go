// Package config holds the game settings: built-in defaults, then an
// optional YAML file named by ROGUE_CONFIG, then ROGUE_* environment
// variables, then command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Philser/roguelike/internal/factory"

	"gopkg.in/yaml.v3"
)

// Settings is the full set of tunables for one game.
type Settings struct {
	Seed int64 `yaml:"seed"`

	MapWidth           int32 `yaml:"map_width"`
	MapHeight          int32 `yaml:"map_height"`
	MaxRooms           int   `yaml:"max_rooms"`
	RejectOverlaps     bool  `yaml:"reject_overlaps"`
	MaxMonstersPerRoom int   `yaml:"max_monsters_per_room"`
	MaxItemsPerRoom    int   `yaml:"max_items_per_room"`

	Player  factory.ActorStats `yaml:"player"`
	Monster factory.ActorStats `yaml:"monster"`
	Items   factory.ItemTuning `yaml:"items"`

	InventorySlots int `yaml:"inventory_slots"`
	LogLines       int `yaml:"log_lines"`
	LogRetain      int `yaml:"log_retain"`
}

// Default returns the stock settings.
func Default() Settings {
	return Settings{
		MapWidth:           60,
		MapHeight:          30,
		MaxRooms:           10,
		MaxMonstersPerRoom: 2,
		MaxItemsPerRoom:    1,
		Player:             factory.ActorStats{HP: 100, Power: 5, Defense: 0, FOV: 10},
		Monster:            factory.ActorStats{HP: 16, Power: 4, Defense: 1, FOV: 8},
		Items: factory.ItemTuning{
			Heal:           20,
			MissileDamage:  8,
			FireballDamage: 20,
			FireballRadius: 3,
			ConfusionTurns: 4,
			Range:          6,
		},
		InventorySlots: 16,
		LogLines:       7,
		LogRetain:      50,
	}
}

// Load builds Settings from the defaults, then the file named by
// ROGUE_CONFIG, then env (read through lookup), then args. A zero seed after
// loading is replaced with the current time.
func Load(args []string, lookup func(string) (string, bool)) (Settings, error) {
	s := Default()
	if path, ok := lookup("ROGUE_CONFIG"); ok && path != "" {
		if err := s.LoadFile(path); err != nil {
			return Settings{}, err
		}
	}
	if err := s.applyEnv(lookup); err != nil {
		return Settings{}, err
	}

	fs := flag.NewFlagSet("roguelike", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Int64Var(&s.Seed, "seed", s.Seed, "random seed (0 picks one from the clock)")
	width := fs.Int("width", int(s.MapWidth), "map width in cells")
	height := fs.Int("height", int(s.MapHeight), "map height in cells")
	fs.IntVar(&s.MaxRooms, "rooms", s.MaxRooms, "maximum number of rooms")
	fs.BoolVar(&s.RejectOverlaps, "reject-overlaps", s.RejectOverlaps, "discard rooms that overlap an earlier room")
	if err := fs.Parse(args); err != nil {
		return Settings{}, fmt.Errorf("parse flags: %w", err)
	}
	s.MapWidth, s.MapHeight = int32(*width), int32(*height)

	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}
	return s, s.Validate()
}

// LoadFile overlays the YAML file at path onto s. Keys absent from the file
// keep their current values.
func (s *Settings) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		set func(int64)
	}{
		{"ROGUE_SEED", func(v int64) { s.Seed = v }},
		{"ROGUE_MAP_WIDTH", func(v int64) { s.MapWidth = int32(v) }},
		{"ROGUE_MAP_HEIGHT", func(v int64) { s.MapHeight = int32(v) }},
		{"ROGUE_MAX_ROOMS", func(v int64) { s.MaxRooms = int(v) }},
	}
	for _, e := range ints {
		raw, ok := lookup(e.key)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		e.set(v)
	}
	return nil
}

// Validate rejects settings the generator cannot satisfy.
func (s Settings) Validate() error {
	var errs []error
	if s.MapWidth < 10 || s.MapHeight < 10 {
		errs = append(errs, fmt.Errorf("map must be at least 10x10, got %dx%d", s.MapWidth, s.MapHeight))
	}
	if s.MaxRooms < 1 {
		errs = append(errs, fmt.Errorf("rooms must be positive, got %d", s.MaxRooms))
	}
	if s.MaxMonstersPerRoom < 0 || s.MaxItemsPerRoom < 0 {
		errs = append(errs, errors.New("spawn counts must not be negative"))
	}
	// Lower bound only: the smallest room must hold its own spawns. Rooms
	// that overlap share cells, so spawns claimed by an earlier room can
	// still leave a later one short.
	minRoom := int(max(s.MapWidth/10, 1)) * int(max(s.MapHeight/10, 1))
	if s.MaxMonstersPerRoom+s.MaxItemsPerRoom > minRoom {
		errs = append(errs, fmt.Errorf("up to %d spawns per room do not fit a %d-cell room",
			s.MaxMonstersPerRoom+s.MaxItemsPerRoom, minRoom))
	}
	if s.Player.HP < 1 || s.Monster.HP < 1 {
		errs = append(errs, errors.New("hit points must be positive"))
	}
	if s.InventorySlots < 1 {
		errs = append(errs, fmt.Errorf("inventory needs at least one slot, got %d", s.InventorySlots))
	}
	if s.LogLines < 1 || s.LogRetain < s.LogLines {
		errs = append(errs, fmt.Errorf("log retention %d must cover %d display lines", s.LogRetain, s.LogLines))
	}
	return errors.Join(errs...)
}
