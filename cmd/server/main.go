// roguelike-server serves the game over SSH, one dungeon per connection.
// Build:
//
//	go build -o roguelike-server ./cmd/server
//
// Usage:
//
//	./roguelike-server [--port 2222] [--key server_host_key] [--spectate :8080]
//
// Then connect with:
//
//	ssh -p 2222 localhost
//
// With --spectate, running games stream as JSON frames on
// ws://<addr>/spectate (add ?session=<id> to follow one game), and finished
// runs are listed at http://<addr>/runs and http://<addr>/runs/<id>.
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Philser/roguelike/internal/config"
	"github.com/Philser/roguelike/internal/game"
	"github.com/Philser/roguelike/internal/logger"
	"github.com/Philser/roguelike/internal/spectate"
	internalssh "github.com/Philser/roguelike/internal/ssh"
	"github.com/Philser/roguelike/internal/store"
	"github.com/Philser/roguelike/internal/view"

	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	spectateAddr := flag.String("spectate", "", "Listen address for the websocket spectator feed (disabled if empty)")
	storePath := flag.String("store", "", "Path of the JSONL run log (default $XDG_DATA_HOME/roguelike/runs.jsonl)")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN; when set, runs are stored there instead")
	flag.Parse()

	log := logger.FromEnv(os.Stderr)

	runs, err := store.Open(*dsn, *storePath)
	if err != nil {
		log.WithError(err).Fatal("open run store")
	}
	defer runs.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *spectate.Hub
	if *spectateAddr != "" {
		hub = spectate.NewHub(log)
		go hub.Run(ctx)
		httpSrv := &http.Server{
			Addr:              *spectateAddr,
			Handler:           spectate.NewRouter(hub, runs),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.WithField("addr", *spectateAddr).Info("spectator feed listening")
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("spectator feed stopped")
			}
		}()
		go func() {
			<-ctx.Done()
			httpSrv.Close()
		}()
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			play(s, log, runs, hub)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any client may connect; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{loadOrCreateHostKey(*keyFile, log)},
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.WithField("port", *port).Info("SSH server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		log.WithError(err).Fatal("ssh server stopped")
	}
}

// play runs one game on an SSH session and records it when the player
// leaves. It blocks for the life of the connection.
func play(s gossh.Session, log logrus.FieldLogger, runs store.Store, hub *spectate.Hub) {
	screen, err := internalssh.NewScreen(s)
	if err != nil {
		fmt.Fprintf(s, "Cannot start the game: %v\nConnect with: ssh -t -p <port> <host>\n", err)
		return
	}
	defer screen.Fini()

	cfg, err := config.Load(nil, os.LookupEnv)
	if err != nil {
		log.WithError(err).Error("invalid configuration")
		return
	}

	g := game.New(cfg, log.WithFields(logrus.Fields{"user": sanitizeName(s.User()), "remote": s.RemoteAddr().String()}))
	if hub != nil {
		id := g.ID()
		g.OnFacts(func(f view.Facts) { hub.Publish(id, f) })
		hub.Publish(id, g.Facts())
	}
	game.Run(screen, g)
	if hub != nil {
		hub.Forget(g.ID())
	}

	rec := g.Record()
	if err := runs.Save(rec); err != nil {
		log.WithError(err).WithField("run", rec.ID).Error("save run")
		return
	}
	log.WithFields(logrus.Fields{"run": rec.ID, "turns": rec.Turns, "kills": rec.Kills}).Info("run recorded")
}

const maxNameBytes = 16

// sanitizeName makes an SSH user name safe for logs: control characters
// are dropped and the result is cut to maxNameBytes on a rune boundary.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log logrus.FieldLogger) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.WithField("path", path).Info("loaded host key")
			return signer
		}
	}

	log.WithField("path", path).Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.WithError(err).Fatal("generate host key")
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.WithError(err).Fatal("create signer")
	}
	if block, err := xssh.MarshalPrivateKey(key, "roguelike server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
			log.WithError(err).Warn("persist host key")
		}
	}
	return signer
}
