// Package arith implements the calculator's arithmetic operations over a
// small operand buffer.
package arith

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Sentinel errors
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrNegativeRoot   = errors.New("square root of a negative number")
	ErrNonFinite      = errors.New("result is not a finite number")
	ErrArity          = errors.New("wrong number of operands")
	ErrOperandRange   = errors.New("operand out of range")
)

// rootTolerance is the convergence threshold for SquareRoot
const rootTolerance = 1e-6

// DomainError reports an operation that has no finite result for its operands
type DomainError struct {
	Op       Op
	Operands []float64
	Err      error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s %v: %v", e.Op, e.Operands, e.Err)
}

// Unwrap returns the underlying sentinel error for use with errors.Is.
func (e *DomainError) Unwrap() error {
	return e.Err
}

func Add(a, b float64) float64 {
	return a + b
}

func Subtract(a, b float64) float64 {
	return a - b
}

func Multiply(a, b float64) float64 {
	return a * b
}

// Divide returns a/b, or ErrDivisionByZero when b is zero
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Power returns a raised to b, following math.Pow for fractional and negative
// exponents
func Power(a, b float64) float64 {
	return math.Pow(a, b)
}

// SquareRoot computes the root of x with the Babylonian method. x is first
// split into a mantissa in [0.5, 2) and an even power of two; the iteration
// runs on the mantissa, starting from half of it and stopping once successive
// guesses differ by less than 1e-6, and the exponent is halved afterwards.
func SquareRoot(x float64) (float64, error) {
	switch {
	case math.IsNaN(x):
		return 0, ErrNonFinite
	case x < 0:
		return 0, ErrNegativeRoot
	case x == 0:
		return 0, nil
	case math.IsInf(x, 1):
		return 0, ErrNonFinite
	}

	m, exp := math.Frexp(x)
	if exp%2 != 0 {
		m *= 2
		exp--
	}
	return math.Ldexp(babylonian(m), exp/2), nil
}

func babylonian(x float64) float64 {
	prev := x / 2
	for i := 0; ; i++ {
		guess := (prev + x/prev) / 2
		if math.Abs(guess-prev) < rootTolerance {
			// one more step removes the last few ulps of error
			return math.Min(guess, (guess+x/guess)/2)
		}
		// after the first step every guess is an upper bound that shrinks
		// toward the root
		if i > 0 && guess >= prev {
			return prev
		}
		prev = guess
	}
}

// Apply runs op on operands. The operand count must match the operation's
// arity; results that are not finite are reported as ErrNonFinite.
func Apply(op Op, operands []float64) (float64, error) {
	operands = slices.Clone(operands)

	info, ok := opTable[op]
	if !ok || len(operands) != info.arity {
		return 0, &DomainError{Op: op, Operands: operands, Err: ErrArity}
	}

	result, err := info.fn(operands)
	if err != nil {
		return 0, &DomainError{Op: op, Operands: operands, Err: err}
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, &DomainError{Op: op, Operands: operands, Err: ErrNonFinite}
	}

	return result, nil
}
