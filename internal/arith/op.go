package arith

import "strings"

// Op identifies one of the calculator operations
type Op int

const (
	OpNone Op = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpSquareRoot
)

type opInfo struct {
	name   string
	symbol string
	label  string
	arity  int
	fn     func(operands []float64) (float64, error)
}

var opTable = map[Op]opInfo{
	OpAdd: {
		name: "add", symbol: "+", label: "+", arity: 2,
		fn: func(o []float64) (float64, error) { return Add(o[0], o[1]), nil },
	},
	OpSubtract: {
		name: "subtract", symbol: "-", label: "-", arity: 2,
		fn: func(o []float64) (float64, error) { return Subtract(o[0], o[1]), nil },
	},
	OpMultiply: {
		name: "multiply", symbol: "*", label: "*", arity: 2,
		fn: func(o []float64) (float64, error) { return Multiply(o[0], o[1]), nil },
	},
	OpDivide: {
		name: "divide", symbol: "/", label: "/", arity: 2,
		fn: func(o []float64) (float64, error) { return Divide(o[0], o[1]) },
	},
	OpPower: {
		name: "power", symbol: "^", label: "EX", arity: 2,
		fn: func(o []float64) (float64, error) { return Power(o[0], o[1]), nil },
	},
	OpSquareRoot: {
		name: "square_root", symbol: "√", label: "SR", arity: 1,
		fn: func(o []float64) (float64, error) { return SquareRoot(o[0]) },
	},
}

// Button labels and their common typographic variants
var opAliases = map[string]Op{
	"+":    OpAdd,
	"-":    OpSubtract,
	"−":    OpSubtract,
	"*":    OpMultiply,
	"×":    OpMultiply,
	"x":    OpMultiply,
	"/":    OpDivide,
	"÷":    OpDivide,
	"ex":   OpPower,
	"^":    OpPower,
	"**":   OpPower,
	"sr":   OpSquareRoot,
	"√":    OpSquareRoot,
	"sqrt": OpSquareRoot,
}

// ParseOp returns the operation for a button label, or false if the label is
// not an operator
func ParseOp(label string) (Op, bool) {
	op, ok := opAliases[strings.ToLower(strings.TrimSpace(label))]
	return op, ok
}

// String returns the operation name
func (op Op) String() string {
	if info, ok := opTable[op]; ok {
		return info.name
	}
	return "none"
}

// Symbol returns the glyph appended to an expression
func (op Op) Symbol() string {
	return opTable[op].symbol
}

// Label returns the keypad button label
func (op Op) Label() string {
	return opTable[op].label
}

// Arity returns the number of operands the operation consumes, or 0 for OpNone
func (op Op) Arity() int {
	return opTable[op].arity
}

// IsUnary reports whether the operation takes a single operand
func (op Op) IsUnary() bool {
	return op.Arity() == 1
}

// Ops returns every operation in keypad order
func Ops() []Op {
	return []Op{OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpSquareRoot}
}
