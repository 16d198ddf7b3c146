package game

import "fmt"

// ActionLog keeps the most recent human-readable game events.
type ActionLog struct {
	lines  []string
	retain int
}

// NewActionLog returns a log that keeps at most retain lines.
func NewActionLog(retain int) *ActionLog {
	return &ActionLog{retain: retain}
}

// Add appends a line, dropping the oldest once full.
func (l *ActionLog) Add(line string) {
	l.lines = append(l.lines, line)
	if over := len(l.lines) - l.retain; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Addf formats and appends a line.
func (l *ActionLog) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Recent returns up to n of the newest lines, oldest first.
func (l *ActionLog) Recent(n int) []string {
	start := max(len(l.lines)-n, 0)
	out := make([]string, len(l.lines)-start)
	copy(out, l.lines[start:])
	return out
}

// Len returns the number of retained lines.
func (l *ActionLog) Len() int { return len(l.lines) }
