package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/averycrespi/calc-mcp/internal/keypad"
	"github.com/averycrespi/calc-mcp/internal/results"
	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"
)

// SessionID returns the session named in the request, falling back to the MCP
// client session and then to the default session
func SessionID(ctx context.Context, req mcp.CallToolRequest) string {
	if id := mcp.ParseString(req, "session", ""); id != "" {
		return id
	}
	if clientSession := server.ClientSessionFromContext(ctx); clientSession != nil {
		if id := clientSession.SessionID(); id != "" {
			return id
		}
	}
	return session.DefaultID
}

// ParseKeys extracts the key labels from the "keys" argument. Numbers are
// accepted as labels and a single string is split on whitespace.
func ParseKeys(req mcp.CallToolRequest) ([]string, error) {
	raw := mcp.ParseArgument(req, "keys", nil)
	if raw == nil {
		return nil, errors.New("keys parameter is required")
	}

	keys, err := cast.ToStringSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("keys must be a list of key labels: %w", err)
	}
	if len(keys) == 0 {
		return nil, errors.New("keys parameter must not be empty")
	}
	return keys, nil
}

// ParseKey extracts a single key label from the named argument
func ParseKey(req mcp.CallToolRequest, name string) (string, error) {
	raw := mcp.ParseArgument(req, name, nil)
	if raw == nil {
		return "", fmt.Errorf("%s parameter is required", name)
	}

	key, err := cast.ToStringE(raw)
	if err != nil || key == "" {
		return "", fmt.Errorf("%s must be a key label", name)
	}
	return key, nil
}

// ValidateKeys checks every label before any of them is pressed, so a typo in
// a batch leaves the calculator untouched
func ValidateKeys(keys []string, kinds ...keypad.KeyKind) error {
	for _, label := range keys {
		key, err := keypad.ParseKey(label)
		if err != nil {
			return err
		}
		if len(kinds) > 0 && !hasKind(kinds, key.Kind) {
			return fmt.Errorf("%q is not allowed here (%s key)", label, key.Kind)
		}
	}
	return nil
}

func hasKind(kinds []keypad.KeyKind, kind keypad.KeyKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// PressKeys presses the keys in order with exclusive access to the session.
// Domain errors are reported per key and do not stop the sequence.
func PressKeys(s *session.Session, keys []string) ([]results.KeyPress, keypad.Display) {
	presses := make([]results.KeyPress, 0, len(keys))
	var display keypad.Display

	_ = s.Do(func(acc *keypad.Accumulator) error {
		for _, key := range keys {
			accepted, err := acc.Press(key)
			press := results.KeyPress{Key: key, Accepted: accepted}
			if err != nil {
				press.Error = err.Error()
			}
			presses = append(presses, press)
		}
		display = acc.Display()
		return nil
	})

	return presses, display
}

// pressKeysResult runs keys against the request's session and builds the
// JSON tool result
func pressKeysResult(ctx context.Context, sessions Sessions, req mcp.CallToolRequest, tool string, keys []string) (*mcp.CallToolResult, error) {
	id := SessionID(ctx, req)
	s, err := sessions.Open(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to open session: %v", err)), nil
	}

	slog.Debug("MCP tool called", "tool", tool, "session", id, "keys", keys)

	presses, display := PressKeys(s, keys)

	toolResult := results.PressKeysToolResult{
		Arguments: results.PressKeysToolArgs{Session: id, Keys: keys},
		Presses:   presses,
		Display:   display,
	}
	toolResult.Message = summarize(presses, display)

	return jsonResult(toolResult)
}

func summarize(presses []results.KeyPress, display keypad.Display) string {
	rejected := 0
	for _, p := range presses {
		if !p.Accepted && p.Error == "" {
			rejected++
		}
	}

	msg := fmt.Sprintf("Pressed %d key(s), %d ignored.", len(presses), rejected)
	if display.Error != "" {
		msg += " The calculation failed: " + display.Error + ". Press a digit or C to start again."
	}
	return msg
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal tool result JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// KeyDescription explains what a key does
func KeyDescription(key keypad.Key) string {
	switch key.Kind {
	case keypad.KeyDigit:
		if key.Label == "." {
			return "Decimal point; at most one per operand"
		}
		return "Append " + key.Label + " to the current operand"
	case keypad.KeyOperator:
		return fmt.Sprintf("Binary operator %s (%s); only one per expression", key.Op.Symbol(), key.Op)
	case keypad.KeyUnary:
		return "Square root of the current operand or result; evaluates immediately"
	case keypad.KeyEvaluate:
		return "Evaluate the pending operation"
	default:
		return "Clear the calculator"
	}
}
