// Package session keeps one calculator per client and serialises the events
// sent to it.
package session

import (
	"slices"
	"sync"

	"github.com/averycrespi/calc-mcp/internal/keypad"
)

// Session is a calculator shared by the tool calls of one client
type Session struct {
	ID string

	acc     *keypad.Accumulator
	tape    []keypad.TapeEntry
	maxTape int
	mu      sync.Mutex
}

func newSession(id string, maxTape int) *Session {
	s := &Session{ID: id, maxTape: maxTape}
	s.acc = keypad.New(keypad.WithRecorder(s.record))
	return s
}

// Do runs fn with exclusive access to the session's accumulator
func (s *Session) Do(fn func(acc *keypad.Accumulator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.acc)
}

// Display returns the current display strings
func (s *Session) Display() keypad.Display {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.acc.Display()
}

// Tape returns the completed calculations, oldest first
func (s *Session) Tape() []keypad.TapeEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.tape)
}

// record is called by the accumulator with s.mu held
func (s *Session) record(entry keypad.TapeEntry) {
	s.tape = append(s.tape, entry)
	if len(s.tape) > s.maxTape {
		s.tape = slices.Delete(s.tape, 0, len(s.tape)-s.maxTape)
	}
}
