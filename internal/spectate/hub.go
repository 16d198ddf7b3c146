// Package spectate streams game snapshots to read-only websocket viewers.
package spectate

import (
	"context"

	"github.com/Philser/roguelike/internal/logger"
	"github.com/Philser/roguelike/internal/view"

	"github.com/sirupsen/logrus"
)

// Frame is one snapshot of one game.
type Frame struct {
	Session string     `json:"session"`
	Facts   view.Facts `json:"facts"`
}

// Hub fans frames out to connected spectators. All client bookkeeping
// happens on the Run goroutine.
type Hub struct {
	log        logrus.FieldLogger
	register   chan *client
	unregister chan *client
	broadcast  chan Frame
	forget     chan string
	done       chan struct{}

	clients map[*client]struct{}
	// last frame per session, replayed to newcomers
	last map[string]Frame
}

// NewHub creates a hub. Call Run to start delivering frames.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		log:        logger.OrDiscard(log).WithField("component", "spectate"),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Frame, 64),
		forget:     make(chan string),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		last:       make(map[string]Frame),
	}
}

// Publish queues a frame for every spectator of session. It never blocks
// the game; frames are dropped while the hub is backed up.
func (h *Hub) Publish(session string, f view.Facts) {
	select {
	case h.broadcast <- Frame{Session: session, Facts: f}:
	default:
		h.log.WithField("session", session).Debug("hub backed up, frame dropped")
	}
}

// Forget drops the replay frame of a session that ended without a
// game-over frame, such as a player quitting. It blocks until the hub has
// processed it or stopped.
func (h *Hub) Forget(session string) {
	select {
	case h.forget <- session:
	case <-h.done:
	}
}

// Run serves the hub until ctx is done, then disconnects every spectator.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.WithField("filter", c.session).Info("spectator joined")
			for _, f := range h.last {
				if c.wants(f) {
					h.deliver(c, f)
				}
			}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case f := <-h.broadcast:
			h.fanOut(f)
		case id := <-h.forget:
			h.drain()
			delete(h.last, id)
		}
	}
}

func (h *Hub) fanOut(f Frame) {
	if f.Facts.GameOver {
		delete(h.last, f.Session)
	} else {
		h.last[f.Session] = f
	}
	for c := range h.clients {
		if c.wants(f) {
			h.deliver(c, f)
		}
	}
}

// drain fans out frames already queued so a late frame from a forgotten
// session cannot bring it back.
func (h *Hub) drain() {
	for {
		select {
		case f := <-h.broadcast:
			h.fanOut(f)
		default:
			return
		}
	}
}

// deliver hands f to c, disconnecting c if it cannot keep up.
func (h *Hub) deliver(c *client, f Frame) {
	select {
	case c.send <- f:
	default:
		h.log.Warn("spectator too slow, disconnecting")
		h.drop(c)
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// Spectators returns the number of connected viewers. Only meaningful from
// tests or after Run has returned.
func (h *Hub) Spectators() int { return len(h.clients) }
