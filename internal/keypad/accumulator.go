// Package keypad turns calculator keystrokes into display state.
//
// An Accumulator holds at most two operands and one pending operator. Every
// event is processed synchronously and atomically: an event that is not valid
// for the current state (a second decimal point, consecutive operators, a
// third operand) is ignored and leaves the state untouched.
package keypad

import (
	"log/slog"
	"slices"

	"github.com/averycrespi/calc-mcp/internal/arith"
)

// ErrorText is shown in the operand field after a failed calculation
const ErrorText = "Error"

// Display is a snapshot of the two display strings
type Display struct {
	Expression  string `json:"expression"`
	OperandText string `json:"operand_text"`
	Pending     string `json:"pending,omitempty"`
	ResultShown bool   `json:"result_shown"`
	Error       string `json:"error,omitempty"`
}

// TapeEntry is one completed calculation
type TapeEntry struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// Recorder receives every completed calculation
type Recorder func(entry TapeEntry)

// Option configures an Accumulator
type Option func(*Accumulator)

// WithRecorder sets the function called after each successful calculation
func WithRecorder(r Recorder) Option {
	return func(a *Accumulator) {
		a.recorder = r
	}
}

// Accumulator tracks keystroke state for one calculator
type Accumulator struct {
	expression  string
	operandText string
	operands    []float64
	pending     arith.Op

	// operationSet: an operator was just selected and the next digit starts
	// the second operand.
	operationSet bool
	// resultSet: a result is shown and will roll over into the next
	// expression.
	resultSet bool
	// operandCount: binary operators entered in the current expression.
	operandCount int
	// trailingOp: the expression ends with an operator token.
	trailingOp bool

	err      error
	recorder Recorder
}

// New creates an Accumulator in its initial state
func New(options ...Option) *Accumulator {
	a := &Accumulator{}
	for _, option := range options {
		option(a)
	}
	return a
}

// Display returns the current display strings
func (a *Accumulator) Display() Display {
	d := Display{
		Expression:  a.expression,
		OperandText: a.operandText,
		ResultShown: a.resultSet,
	}
	if a.pending != arith.OpNone {
		d.Pending = a.pending.Label()
	}
	if a.err != nil {
		d.Error = a.err.Error()
	}
	return d
}

// Err returns the error that put the accumulator in its error state, if any
func (a *Accumulator) Err() error {
	return a.err
}

// EnterDigit appends a digit, "00" or "." to the current operand. It reports
// whether the key was accepted.
func (a *Accumulator) EnterDigit(d string) bool {
	if !isDigitKey(d) {
		return false
	}

	if d == "." && a.currentOperandHasPoint() {
		slog.Debug("Rejected second decimal point", "operand", a.operandText)
		return false
	}

	if a.err != nil {
		a.reset()
	}

	if a.resultSet {
		a.rollOver()
	}

	if a.operationSet {
		a.operandText = ""
		a.operationSet = false
	}

	if d == "." && a.operandText == "" {
		d = "0."
	}

	a.expression += d
	a.operandText += d
	a.trailingOp = false
	return true
}

// EnterOperator selects a binary operator, pushing the current operand. It is
// rejected when an operator is already pending or no operand has been
// entered. An operand too large for a float64 puts the accumulator in its
// error state.
func (a *Accumulator) EnterOperator(op arith.Op) (bool, error) {
	if op.Arity() != 2 {
		return false, nil
	}
	if a.err != nil || a.trailingOp || a.operandCount >= 1 || a.operandText == "" {
		slog.Debug("Rejected operator", "operator", op, "expression", a.expression)
		return false, nil
	}

	if a.resultSet {
		// operands[0] already holds the unrounded result
		a.expression = a.operandText
		a.resultSet = false
	} else {
		v, err := parseOperand(a.operandText)
		if err != nil {
			return true, a.failOperand(op, err)
		}
		a.operands = []float64{v}
	}

	a.expression += op.Symbol()
	a.pending = op
	a.operandCount++
	a.operationSet = true
	a.trailingOp = true
	return true, nil
}

// EnterUnary applies a single-operand operator to the current operand and
// evaluates at once. If a binary operation is pending with its second operand
// entered, that operation is evaluated first and the unary operator is applied
// to its result.
func (a *Accumulator) EnterUnary(op arith.Op) (bool, error) {
	if !op.IsUnary() {
		return false, nil
	}
	if a.err != nil || a.trailingOp || a.operandCount > 1 || a.operandText == "" {
		slog.Debug("Rejected unary operator", "operator", op, "expression", a.expression)
		return false, nil
	}
	if _, err := parseOperand(a.operandText); err != nil {
		failed := op
		if a.operandCount == 1 {
			failed = a.pending
		}
		return true, a.failOperand(failed, err)
	}

	base := a.expression
	if a.operandCount == 1 {
		if _, err := a.Evaluate(); err != nil {
			return true, err
		}
	} else if a.resultSet {
		base = a.operandText
	}

	var x float64
	if a.resultSet {
		x = a.operands[0]
	} else {
		x, _ = parseOperand(a.operandText)
	}

	return true, a.apply(op, []float64{x}, op.Symbol()+"("+base+")")
}

// Evaluate runs the pending operator. Without a pending operator, or with the
// second operand not yet entered, it does nothing and reports false. A domain
// error puts the accumulator in its error state and is returned.
func (a *Accumulator) Evaluate() (bool, error) {
	if a.err != nil || a.pending == arith.OpNone {
		return false, nil
	}

	operands := slices.Clone(a.operands)
	if a.operandCount == 1 && !a.operationSet {
		v, err := parseOperand(a.operandText)
		if err != nil {
			return true, a.failOperand(a.pending, err)
		}
		operands = append(operands, v)
	}
	if len(operands) != a.pending.Arity() {
		slog.Debug("Nothing to evaluate", "operator", a.pending, "operands", len(operands))
		return false, nil
	}

	return true, a.apply(a.pending, operands, a.expression)
}

// Clear returns the accumulator to its initial state
func (a *Accumulator) Clear() {
	a.reset()
}

// Press dispatches a keypad label to the matching event. It reports whether
// the key changed the state; unknown labels return ErrUnknownKey.
func (a *Accumulator) Press(label string) (bool, error) {
	key, err := ParseKey(label)
	if err != nil {
		return false, err
	}

	switch key.Kind {
	case KeyDigit:
		return a.EnterDigit(key.Label), nil
	case KeyOperator:
		return a.EnterOperator(key.Op)
	case KeyUnary:
		return a.EnterUnary(key.Op)
	case KeyEvaluate:
		return a.Evaluate()
	default:
		a.Clear()
		return true, nil
	}
}

func (a *Accumulator) apply(op arith.Op, operands []float64, expression string) error {
	result, err := arith.Apply(op, operands)
	if err != nil {
		slog.Debug("Calculation failed", "operator", op, "operands", operands, "error", err)
		a.fail(expression, err)
		return err
	}

	text := FormatResult(result)
	a.expression = expression
	a.operandText = text
	a.operands = []float64{result}
	a.pending = arith.OpNone
	a.operandCount = 0
	a.operationSet = false
	a.trailingOp = false
	a.resultSet = true

	if a.recorder != nil {
		a.recorder(TapeEntry{Expression: expression, Result: text})
	}
	return nil
}

func (a *Accumulator) fail(expression string, err error) {
	a.reset()
	a.expression = expression
	a.operandText = ErrorText
	a.err = err
}

// failOperand enters the error state for an operand that does not fit in a
// float64
func (a *Accumulator) failOperand(op arith.Op, err error) error {
	slog.Debug("Operand out of range", "operator", op, "operand", a.operandText, "error", err)
	a.fail(a.expression, &arith.DomainError{Op: op, Err: arith.ErrOperandRange})
	return a.err
}

// rollOver makes the shown result the start of a new expression. A result in
// exponent notation cannot be extended by typing, so the next operand starts
// fresh instead.
func (a *Accumulator) rollOver() {
	if isPlainDecimal(a.operandText) {
		a.expression = a.operandText
	} else {
		a.expression = ""
		a.operandText = ""
	}
	a.operands = nil
	a.resultSet = false
}

func (a *Accumulator) currentOperandHasPoint() bool {
	if a.operationSet || a.err != nil {
		return false
	}
	if a.resultSet && !isPlainDecimal(a.operandText) {
		return false
	}
	for _, r := range a.operandText {
		if r == '.' {
			return true
		}
	}
	return false
}

func (a *Accumulator) reset() {
	*a = Accumulator{recorder: a.recorder}
}
