package gate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// piExprRegex matches pi, 2pi, 2*pi, pi/2, 3pi/4, 3*pi/4, -pi, -3*pi/4.
var piExprRegex = regexp.MustCompile(`^(-?)(\d*\.?\d*)\s*\*?\s*pi(?:\s*/\s*(\d+\.?\d*))?$`)

// ParseParamExpr parses a plain number or a pi expression.
//
// Supported formats:
//   - Plain numbers: "1.5707", "-0.5", "3.14e-2"
//   - Pi constant and fractions: "pi", "pi/2", "3*pi/4", "2pi"
//   - Negatives: "-pi", "-pi/2"
func ParseParamExpr(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if val, err := strconv.ParseFloat(s, 64); err == nil {
		return val, true
	}

	m := piExprRegex.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, false
	}
	coeff := 1.0
	if m[2] != "" {
		c, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return 0, false
		}
		coeff = c
	}
	result := coeff * math.Pi
	if m[3] != "" {
		denom, err := strconv.ParseFloat(m[3], 64)
		if err != nil || denom == 0 {
			return 0, false
		}
		result /= denom
	}
	if m[1] == "-" {
		result = -result
	}
	return result, true
}

// ParseParamList parses a comma separated list of parameter expressions.
// Empty items are skipped; any unparsable item fails the whole list.
func ParseParamList(input string) ([]float64, error) {
	params := []float64{}
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, ok := ParseParamExpr(part)
		if !ok {
			return nil, fmt.Errorf("invalid parameter %q", part)
		}
		params = append(params, v)
	}
	return params, nil
}

var piForms = []struct {
	value   float64
	display string
}{
	{2 * math.Pi, "2*pi"},
	{math.Pi, "pi"},
	{math.Pi / 2, "pi/2"},
	{math.Pi / 3, "pi/3"},
	{math.Pi / 4, "pi/4"},
	{math.Pi / 6, "pi/6"},
	{math.Pi / 8, "pi/8"},
	{3 * math.Pi / 4, "3*pi/4"},
	{3 * math.Pi / 2, "3*pi/2"},
	{2 * math.Pi / 3, "2*pi/3"},
}

func piForm(val float64) (string, bool) {
	for _, pf := range piForms {
		if math.Abs(val-pf.value) < 1e-10 {
			return pf.display, true
		}
		if math.Abs(val+pf.value) < 1e-10 {
			return "-" + pf.display, true
		}
	}
	return "", false
}

// FormatParam renders val in pi notation when it is a common pi fraction.
func FormatParam(val float64) string {
	if s, ok := piForm(val); ok {
		return s
	}
	return fmt.Sprintf("%g", val)
}

// FormatQASMParam is FormatParam for OpenQASM output, which has no exponent
// form without a decimal point, so other values print positionally.
func FormatQASMParam(val float64) string {
	if s, ok := piForm(val); ok {
		return s
	}
	return strconv.FormatFloat(val, 'f', -1, 64)
}
