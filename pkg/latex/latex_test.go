package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalNumbers(t *testing.T) {
	cases := map[string]float64{
		"42":       42,
		"-7":       -7,
		"3.25":     3.25,
		"1011":     1011,
		"2+3*4":    14,
		"2^{3}":    8,
		"2(3+4)":   14,
		"$18$":     18,
		"10\\div4": 2.5,
	}

	for expr, want := range cases {
		got, err := Eval(expr, nil)
		require.NoError(t, err, "expr %q", expr)
		assert.InDelta(t, want, got, 1e-9, "expr %q", expr)
	}
}

func TestEvalFractions(t *testing.T) {
	got, err := Eval(`$\frac{1}{4}$`, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-9)

	got, err = Eval(`\frac{\frac{1}{2}}{2}`, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestEvalSqrtAndPi(t *testing.T) {
	got, err := Eval(`\sqrt{16}`, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4, got, 1e-9)

	got, err = Eval(`2\pi`, nil)
	require.NoError(t, err)
	assert.InDelta(t, 6.283185307, got, 1e-6)
}

func TestEvalSubstitution(t *testing.T) {
	got, err := Eval(`3x^{2}`, map[string]float64{"x": 10})
	require.NoError(t, err)
	assert.InDelta(t, 300, got, 1e-9)
}

func TestEvalUnboundVariable(t *testing.T) {
	_, err := Eval("3x", nil)
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestEvalWordSolutionsFail(t *testing.T) {
	// letter runs become variable products ("No" -> N*o), so word-valued
	// expressions fail instead of silently evaluating
	_, err := Eval("No", nil)
	assert.ErrorIs(t, err, ErrUnboundVariable)
}

func TestEvalUnsupportedCommand(t *testing.T) {
	_, err := Eval(`\int_0^1 x dx`, nil)
	assert.Error(t, err)
}
