// Package latex converts a restricted subset of LaTeX math into numeric
// values. It normalizes the expression to infix form and evaluates it with
// govaluate, substituting any provided variable values.
//
// Known limitation, inherited from the symbolic parser this replaces: every
// run of letters is treated as a product of single-letter variables, so
// word-like solutions such as "No" become N*o and fail to evaluate instead
// of producing a value.
package latex

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"
)

// ErrUnboundVariable is returned when the expression references a variable
// with no substitution value.
var ErrUnboundVariable = errors.New("expression contains unbound variable")

var (
	fracRe     = regexp.MustCompile(`\\[dt]?frac\{([^{}]*)\}\{([^{}]*)\}`)
	sqrtRe     = regexp.MustCompile(`\\sqrt\{([^{}]*)\}`)
	numLetter  = regexp.MustCompile(`(\d)\s*([a-zA-Z(])`)
	closeTerm  = regexp.MustCompile(`\)\s*([0-9a-zA-Z(])`)
	letterPair = regexp.MustCompile(`([a-zA-Z])(?:\s*)([a-zA-Z])`)
	identRe    = regexp.MustCompile(`[a-zA-Z]+`)
)

// Eval parses a LaTeX expression and evaluates it to a float64. Variables
// named in subs are substituted; any other variable is an error.
func Eval(expr string, subs map[string]float64) (float64, error) {
	normalized, err := normalize(expr)
	if err != nil {
		return 0, err
	}

	params := make(map[string]interface{}, len(subs)+1)
	params["e"] = 2.718281828459045
	for name, value := range subs {
		params[name] = value
	}

	for _, ident := range identRe.FindAllString(normalized, -1) {
		if _, ok := params[ident]; !ok {
			return 0, fmt.Errorf("%w: %q in %q", ErrUnboundVariable, ident, expr)
		}
	}

	evaluable, err := govaluate.NewEvaluableExpression(normalized)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q (normalized %q): %w", expr, normalized, err)
	}

	result, err := evaluable.Evaluate(params)
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate %q: %w", expr, err)
	}

	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("expression %q did not evaluate to a number", expr)
	}
	return value, nil
}

// normalize rewrites LaTeX constructs into govaluate's infix syntax.
func normalize(expr string) (string, error) {
	s := strings.TrimSpace(expr)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, `\left`, "")
	s = strings.ReplaceAll(s, `\right`, "")
	s = strings.ReplaceAll(s, `\,`, "")
	s = strings.ReplaceAll(s, `\cdot`, "*")
	s = strings.ReplaceAll(s, `\times`, "*")
	s = strings.ReplaceAll(s, `\div`, "/")
	// substitute the literal value so the letter pair "pi" is not split
	// into p*i by the implicit multiplication pass below
	s = strings.ReplaceAll(s, `\pi`, "(3.141592653589793)")

	// \frac{a}{b} -> ((a)/(b)), innermost first for nested fractions
	for fracRe.MatchString(s) {
		s = fracRe.ReplaceAllString(s, "(($1)/($2))")
	}
	for sqrtRe.MatchString(s) {
		s = sqrtRe.ReplaceAllString(s, "(($1)**0.5)")
	}

	if strings.Contains(s, `\`) {
		return "", fmt.Errorf("unsupported LaTeX command in %q", expr)
	}

	// remaining grouping braces act as parentheses (e.g. x^{2})
	s = strings.ReplaceAll(s, "{", "(")
	s = strings.ReplaceAll(s, "}", ")")
	s = strings.ReplaceAll(s, "^", "**")

	// implicit multiplication: 2x -> 2*x, (a)(b) -> (a)*(b), ab -> a*b
	s = numLetter.ReplaceAllString(s, "$1*$2")
	s = closeTerm.ReplaceAllString(s, ")*$1")
	for letterPair.MatchString(s) {
		s = letterPair.ReplaceAllString(s, "$1*$2")
	}

	return strings.TrimSpace(s), nil
}
