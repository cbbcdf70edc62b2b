package arith

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		operands []float64
		expected float64
	}{
		{name: "Add", op: OpAdd, operands: []float64{3, 4}, expected: 7},
		{name: "Add negative", op: OpAdd, operands: []float64{-2.5, 1}, expected: -1.5},
		{name: "Subtract", op: OpSubtract, operands: []float64{10, 4}, expected: 6},
		{name: "Multiply", op: OpMultiply, operands: []float64{6, 7}, expected: 42},
		{name: "Divide", op: OpDivide, operands: []float64{7, 2}, expected: 3.5},
		{name: "Power", op: OpPower, operands: []float64{5, 2}, expected: 25},
		{name: "Power fractional exponent", op: OpPower, operands: []float64{9, 0.5}, expected: 3},
		{name: "Power negative exponent", op: OpPower, operands: []float64{2, -2}, expected: 0.25},
		{name: "Square root", op: OpSquareRoot, operands: []float64{16}, expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Apply(tt.op, tt.operands)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, result, 1e-9)
		})
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		operands []float64
		expected error
	}{
		{name: "Division by zero", op: OpDivide, operands: []float64{6, 0}, expected: ErrDivisionByZero},
		{name: "Negative root", op: OpSquareRoot, operands: []float64{-4}, expected: ErrNegativeRoot},
		{name: "Overflowing power", op: OpPower, operands: []float64{10, 400}, expected: ErrNonFinite},
		{name: "Root of a negative base", op: OpPower, operands: []float64{-8, 0.5}, expected: ErrNonFinite},
		{name: "Overflowing multiply", op: OpMultiply, operands: []float64{1e308, 10}, expected: ErrNonFinite},
		{name: "Missing operand", op: OpAdd, operands: []float64{1}, expected: ErrArity},
		{name: "Extra operand", op: OpSquareRoot, operands: []float64{1, 2}, expected: ErrArity},
		{name: "No operation", op: OpNone, operands: []float64{1, 2}, expected: ErrArity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(tt.op, tt.operands)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)

			var domainErr *DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, tt.op, domainErr.Op)
			assert.Equal(t, tt.operands, domainErr.Operands)
		})
	}
}

func TestApplyDoesNotRetainOperands(t *testing.T) {
	operands := []float64{6, 0}
	_, err := Apply(OpDivide, operands)
	require.Error(t, err)

	operands[0] = 99
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, []float64{6, 0}, domainErr.Operands)
}

func TestSquareRoot(t *testing.T) {
	tests := []struct {
		name  string
		input float64
	}{
		{name: "Two", input: 2},
		{name: "Perfect square", input: 81},
		{name: "One", input: 1},
		{name: "Below one", input: 0.25},
		{name: "Fraction", input: 0.5},
		{name: "Large", input: 1e12},
		{name: "Very large", input: 1e300},
		{name: "Max float", input: math.MaxFloat64},
		{name: "Tiny", input: 1e-300},
		{name: "Smallest normal", input: 2.2250738585072014e-308},
		{name: "Smallest subnormal", input: math.SmallestNonzeroFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := SquareRoot(tt.input)
			require.NoError(t, err)

			expected := math.Sqrt(tt.input)
			assert.InEpsilon(t, expected, result, 1e-6)
		})
	}
}

func TestSquareRootOfTwo(t *testing.T) {
	result, err := SquareRoot(2)
	require.NoError(t, err)
	assert.InDelta(t, 1.41421356, result, 1e-6)
}

func TestSquareRootEdgeCases(t *testing.T) {
	result, err := SquareRoot(0)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, result)

	_, err = SquareRoot(-1)
	assert.ErrorIs(t, err, ErrNegativeRoot)

	_, err = SquareRoot(math.Inf(1))
	assert.ErrorIs(t, err, ErrNonFinite)

	_, err = SquareRoot(math.NaN())
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestDomainErrorMessage(t *testing.T) {
	_, err := Apply(OpDivide, []float64{6, 0})
	require.Error(t, err)
	assert.Equal(t, "divide [6 0]: division by zero", err.Error())
}
