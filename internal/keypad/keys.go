package keypad

import (
	"errors"
	"fmt"
	"strings"

	"github.com/averycrespi/calc-mcp/internal/arith"
)

// ErrUnknownKey is returned for labels that are not on the keypad
var ErrUnknownKey = errors.New("unknown key")

// KeyKind classifies a keypad button
type KeyKind string

const (
	KeyDigit    KeyKind = "digit"
	KeyOperator KeyKind = "operator"
	KeyUnary    KeyKind = "unary_operator"
	KeyEvaluate KeyKind = "evaluate"
	KeyClear    KeyKind = "clear"
)

// Key is a classified keypad button
type Key struct {
	Label string
	Kind  KeyKind
	Op    arith.Op
}

// Layout is the keypad grid, row by row
var Layout = [][]string{
	{"7", "8", "9", "/", "C"},
	{"4", "5", "6", "*", "EX"},
	{"1", "2", "3", "-", "SR"},
	{"0", "00", ".", "+", "="},
}

// ParseKey classifies a button label. Operator aliases such as "×" or "√" are
// accepted and normalised to the keypad label.
func ParseKey(label string) (Key, error) {
	trimmed := strings.TrimSpace(label)

	if isDigitKey(trimmed) {
		return Key{Label: trimmed, Kind: KeyDigit}, nil
	}

	switch strings.ToUpper(trimmed) {
	case "=":
		return Key{Label: "=", Kind: KeyEvaluate}, nil
	case "C", "AC":
		return Key{Label: "C", Kind: KeyClear}, nil
	}

	if op, ok := arith.ParseOp(trimmed); ok {
		kind := KeyOperator
		if op.IsUnary() {
			kind = KeyUnary
		}
		return Key{Label: op.Label(), Kind: kind, Op: op}, nil
	}

	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, label)
}

// Keys returns every keypad button in layout order
func Keys() []Key {
	var keys []Key
	for _, row := range Layout {
		for _, label := range row {
			key, err := ParseKey(label)
			if err != nil {
				panic(err)
			}
			keys = append(keys, key)
		}
	}
	return keys
}

func isDigitKey(s string) bool {
	switch s {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "00", ".":
		return true
	}
	return false
}
