package fixed

import (
	"testing"
)

func createPoints(values ...float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = FromFloat64(v)
	}
	return points
}

func assertPointEqual(t *testing.T, expected, actual Point, tolerance float64, msg string) {
	t.Helper()
	diff := expected.Sub(actual).Abs()
	tol := FromFloat64(tolerance)
	if diff.Gt(tol) {
		t.Errorf("%s: expected %v, got %v (diff: %v)", msg, expected, actual, diff)
	}
}

func TestFixedMath_Mean(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		expected Point
	}{
		{
			name:     "empty slice",
			points:   []Point{},
			expected: Zero,
		},
		{
			name:     "single point",
			points:   createPoints(5.0),
			expected: FromFloat64(5.0),
		},
		{
			name:     "multiple positive points",
			points:   createPoints(1.0, 2.0, 3.0, 4.0, 5.0),
			expected: FromFloat64(3.0),
		},
		{
			name:     "mixed positive and negative",
			points:   createPoints(-2.0, -1.0, 0.0, 1.0, 2.0),
			expected: Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := Mean(tt.points)
			assertPointEqual(t, tt.expected, actual, 1e-9, "mean")
		})
	}
}

func TestFixedMath_StdDev(t *testing.T) {
	tests := []struct {
		name     string
		points   []Point
		expected Point
	}{
		{
			name:     "no variance",
			points:   createPoints(3.0, 3.0, 3.0, 3.0),
			expected: Zero,
		},
		{
			name:     "known variance",
			points:   createPoints(2.0, 4.0, 4.0, 4.0, 5.0, 5.0, 7.0, 9.0),
			expected: FromFloat64(2.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := StdDev(tt.points, Mean(tt.points))
			assertPointEqual(t, tt.expected, actual, 1e-6, "stddev")
		})
	}
}

func TestFixedMath_SharpeRatio(t *testing.T) {
	returns := createPoints(0.01, 0.02, -0.01, 0.03, 0.01)

	sharpe := SharpeRatio(returns, Zero)
	if !sharpe.IsPos() {
		t.Errorf("expected positive sharpe for positive mean returns, got %v", sharpe)
	}

	negative := createPoints(-0.01, -0.02, -0.03)
	sharpeNeg := SharpeRatio(negative, Zero)
	if !sharpeNeg.IsNeg() {
		t.Errorf("expected negative sharpe for negative returns, got %v", sharpeNeg)
	}
}

func TestFixedMath_SortinoRatio(t *testing.T) {
	returns := createPoints(0.02, 0.01, -0.01, 0.03, -0.02, 0.01)

	sortino := SortinoRatio(returns, Zero)
	if !sortino.IsPos() {
		t.Errorf("expected positive sortino, got %v", sortino)
	}
}
