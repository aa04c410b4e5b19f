package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   string
		want float64
	}{
		{"add", 10, 5, "add", 15},
		{"subtract", 10, 5, "subtract", 5},
		{"multiply", 10, 5, "multiply", 50},
		{"divide", 10, 5, "divide", 2},
		{"modulo", 10, 3, "modulo", 1},
		{"power", 2, 10, "power", 1024},
		{"power_zero_exponent", 5, 0, "power", 1},
		{"double", 21, 0, "double", 42},
		{"negative_operands", -4, 6, "add", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Calculate(tc.a, tc.b, tc.op)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name    string
		a, b    float64
		op      string
		wantMsg string
	}{
		{"divide_by_zero", 10, 0, "divide", "Division by zero"},
		{"negative_exponent", 2, -1, "power", "Power operation requires a positive exponent"},
		{"unknown_op", 1, 2, "cube", "Unknown operation: cube"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(tc.a, tc.b, tc.op)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
		})
	}
}
