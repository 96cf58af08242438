package expr

import (
	"errors"
	"math"
	"testing"
)

func TestEval(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"+100", 100},
		{"-50", -50},
		{"1+2", 3},
		{"10-4", 6},
		{"-50*2", -100},
		{"100*3-20", 280},
		{"10/4", 2.5},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"2*(3+4)/7", 2},
		{"--5", 5},
		{"-(1+2)", -3},
		{"+-+3", -3},
		{"1.5+2.25", 3.75},
		{".5*2", 1},
		{"100 * 2", 200},
		{"  7  ", 7},
	}
	for _, c := range cases {
		got, err := Eval(c.in)
		if err != nil {
			t.Errorf("Eval(%q) unexpected error: %v", c.in, err)
			continue
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Eval(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEvalInvalid(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"1+",
		"+",
		"--",
		"1**2",
		"(1+2",
		"1+2)",
		"()",
		"1..2",
		"1.2.3",
		"*3",
		"/2",
	}
	for _, in := range cases {
		if _, err := Eval(in); !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("Eval(%q) = error %v, want ErrInvalidExpression", in, err)
		}
	}
}

func TestEvalDisallowed(t *testing.T) {
	cases := []string{
		"1+x",
		"len(1)",
		"2**3^4",
		"1%2",
		"0x10",
		"1e3",
		"import",
		"１００", // full-width input must be normalized before it gets here
	}
	for _, in := range cases {
		if _, err := Eval(in); !errors.Is(err, ErrDisallowedOperation) {
			t.Errorf("Eval(%q) = error %v, want ErrDisallowedOperation", in, err)
		}
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	for _, in := range []string{"1/0", "5/(2-2)", "1/0.0"} {
		_, err := Eval(in)
		if !errors.Is(err, ErrInvalidExpression) {
			t.Errorf("Eval(%q) = error %v, want division failure", in, err)
		}
	}
}
