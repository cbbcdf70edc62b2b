package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	m := NewManager(0, -1)
	require.NotNil(t, m)
	assert.Equal(t, defaultMaxSessions, m.maxSessions)
	assert.Equal(t, defaultMaxTape, m.maxTape)
	assert.Empty(t, m.List())
}

func TestOpenReusesSession(t *testing.T) {
	m := NewManager(4, 10)

	first, err := m.Open("")
	require.NoError(t, err)
	assert.Equal(t, DefaultID, first.ID)

	second, err := m.Open(DefaultID)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, []string{DefaultID}, m.List())
}

func TestNewCreatesDistinctSessions(t *testing.T) {
	m := NewManager(4, 10)

	a, err := m.New()
	require.NoError(t, err)
	b, err := m.New()
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)

	got, err := m.Get(a.ID)
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestSessionLimit(t *testing.T) {
	m := NewManager(2, 10)

	_, err := m.Open("one")
	require.NoError(t, err)
	_, err = m.Open("two")
	require.NoError(t, err)

	_, err = m.Open("three")
	assert.ErrorIs(t, err, ErrTooManySessions)
	_, err = m.New()
	assert.ErrorIs(t, err, ErrTooManySessions)

	require.NoError(t, m.Close("one"))
	_, err = m.Open("three")
	assert.NoError(t, err)
}

func TestGetAndCloseMissing(t *testing.T) {
	m := NewManager(2, 10)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Close("missing"), ErrSessionNotFound)
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager(4, 10)
	a, err := m.Open("a")
	require.NoError(t, err)
	b, err := m.Open("b")
	require.NoError(t, err)

	require.NoError(t, a.Do(func(acc *keypad.Accumulator) error {
		acc.EnterDigit("4")
		return nil
	}))

	assert.Equal(t, "4", a.Display().OperandText)
	assert.Equal(t, "", b.Display().OperandText)
}

func TestSessionTape(t *testing.T) {
	m := NewManager(1, 2)
	s, err := m.Open("")
	require.NoError(t, err)

	for _, keys := range [][]string{
		{"1", "+", "1", "="},
		{"C", "2", "+", "2", "="},
		{"C", "3", "+", "3", "="},
	} {
		require.NoError(t, s.Do(func(acc *keypad.Accumulator) error {
			for _, key := range keys {
				if _, err := acc.Press(key); err != nil {
					return err
				}
			}
			return nil
		}))
	}

	assert.Equal(t, []keypad.TapeEntry{
		{Expression: "2+2", Result: "4"},
		{Expression: "3+3", Result: "6"},
	}, s.Tape())
}

func TestConcurrentPresses(t *testing.T) {
	m := NewManager(4, 1000)
	s, err := m.Open("")
	require.NoError(t, err)
	require.NoError(t, s.Do(func(acc *keypad.Accumulator) error {
		acc.EnterDigit("0")
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(acc *keypad.Accumulator) error {
				for _, key := range []string{"+", "1", "="} {
					if _, err := acc.Press(key); err != nil {
						return err
					}
				}
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, "50", s.Display().OperandText)
	assert.Len(t, s.Tape(), 50)
	assert.Equal(t, keypad.TapeEntry{Expression: "49+1", Result: "50"}, s.Tape()[49])
}

func TestConcurrentOpen(t *testing.T) {
	m := NewManager(100, 10)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := m.Open(fmt.Sprintf("s%d", i%5))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.List(), 5)
}
