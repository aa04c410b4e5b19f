package service

import (
	"fmt"
	"math"
)

// Calculator errors use short machine-stable strings; they are returned to
// clients verbatim.
var (
	ErrDivisionByZero   = fmt.Errorf("Division by zero")
	ErrNegativeExponent = fmt.Errorf("Power operation requires a positive exponent")
)

// Calculate applies the named arithmetic operation to a and b. For the
// unary "double" operation b is ignored.
func Calculate(a, b float64, op string) (float64, error) {
	switch op {
	case "add":
		return a + b, nil
	case "subtract":
		return a - b, nil
	case "multiply":
		return a * b, nil
	case "divide":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case "modulo":
		return math.Mod(a, b), nil
	case "power":
		if b < 0 {
			return 0, ErrNegativeExponent
		}
		return math.Pow(a, b), nil
	case "double":
		return a * 2, nil
	default:
		return 0, fmt.Errorf("Unknown operation: %s", op)
	}
}
