// Package ssh adapts gliderlabs SSH sessions into tcell screens so each
// connection can play its own game.
package ssh

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// SessionTty implements tcell.Tty on top of one SSH session.
type SessionTty struct {
	session gossh.Session
	mu      sync.Mutex
	window  gossh.Window
	winCh   <-chan gossh.Window
	onSize  func()
}

// NewSessionTty wraps s. pty carries the initial window size and winCh the
// later resizes.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{
		session: s,
		window:  pty.Window,
		winCh:   winCh,
	}
}

// Read returns the player's keystrokes from the session's stdin.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends a rendered frame to the session's stdout.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close ends the SSH channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start does nothing; the channel is open before the screen exists.
func (t *SessionTty) Start() error { return nil }

// Stop does nothing; the connection handler owns the channel.
func (t *SessionTty) Stop() error { return nil }

// Drain does nothing; session writes are not buffered here.
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the latest terminal dimensions.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb and starts following window changes until the
// session's window channel closes.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onSize = cb
	t.mu.Unlock()

	go func() {
		for win := range t.winCh {
			t.mu.Lock()
			t.window = win
			fn := t.onSize
			t.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}()
}
