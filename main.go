// roguelike is a single-player terminal dungeon crawler.
//
// Usage:
//
//	roguelike [-seed N] [-width W] [-height H] [-rooms N] [-reject-overlaps]
//
// LOG_FILE names a file to receive logs (LOG_LEVEL and LOG_FORMAT tune
// them); without it the game logs nothing. DATABASE_URL stores finished
// runs in PostgreSQL instead of the local JSONL log.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Philser/roguelike/internal/config"
	"github.com/Philser/roguelike/internal/game"
	"github.com/Philser/roguelike/internal/logger"
	"github.com/Philser/roguelike/internal/store"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	var out io.Writer = io.Discard
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := logger.FromEnv(out)

	runs, err := store.Open(os.Getenv("DATABASE_URL"), os.Getenv("ROGUE_STORE"))
	if err != nil {
		log.WithError(err).Warn("run history disabled")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	g := game.New(cfg, log)
	game.Run(screen, g)
	screen.Fini()

	rec := g.Record()
	fmt.Printf("Seed %d: %d turns, %d kills.\n", rec.Seed, rec.Turns, rec.Kills)
	if runs == nil {
		return
	}
	defer runs.Close()
	if err := runs.Save(rec); err != nil {
		log.WithError(err).Error("save run")
	}
}
