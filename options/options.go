package options

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultCaseSpec is the assertion the repository has always shipped with. The expected value is deliberately
// left as it was written so that running the suite without arguments reproduces the historical report.
const DefaultCaseSpec = "test_result:2,2=5"

// Options is the central configuration registry for the dummy test runner.
// It maps the command-line flags into an internal structured format passed directly
// to the runner, decoupling case evaluation from the CLI framework.
type Options struct {
	Cases          []Case
	Concurrency    int
	FailFast       bool
	DetailedStatus bool
	MetricsFile    string
	Logger         *logrus.Logger
}

// Case is a single assertion: sum(A, B) must equal Expected.
type Case struct {
	Name     string
	A        Number
	B        Number
	Expected Number
	Raw      string
}

func (c Case) String() string {
	return fmt.Sprintf("sum(%s, %s)", c.A, c.B)
}

// allowedCasePattern only admits names, numbers and the three separators used by the case syntax.
var allowedCasePattern = regexp.MustCompile(`^[a-zA-Z0-9_.,:=+\-]+$`)

// ParseCases turns strings of the form "[name:]a,b=expected" into Cases. Unnamed cases are called case_N after
// their 1-based position.
func ParseCases(caseStrings []string) ([]Case, error) {
	rv := []Case{}
	for i, s := range caseStrings {
		s = strings.TrimSpace(s)
		if !allowedCasePattern.MatchString(s) {
			return nil, InvalidCase{Raw: s, Reason: "contains forbidden characters"}
		}

		name := fmt.Sprintf("case_%d", i+1)
		body := s
		if n, rest, found := strings.Cut(s, ":"); found {
			if n == "" {
				return nil, InvalidCase{Raw: s, Reason: "empty name"}
			}
			name, body = n, rest
		}

		operands, expected, found := strings.Cut(body, "=")
		if !found {
			return nil, InvalidCase{Raw: s, Reason: "missing '=expected'"}
		}
		a, b, found := strings.Cut(operands, ",")
		if !found {
			return nil, InvalidCase{Raw: s, Reason: "expected two operands separated by ','"}
		}

		values := make([]Number, 0, 3)
		for _, field := range []string{a, b, expected} {
			v, err := ParseNumber(field)
			if err != nil {
				return nil, InvalidCase{Raw: s, Reason: err.Error()}
			}
			values = append(values, v)
		}

		rv = append(rv, Case{Name: name, A: values[0], B: values[1], Expected: values[2], Raw: s})
	}
	return rv, nil
}

// DefaultCase returns the parsed DefaultCaseSpec.
func DefaultCase() Case {
	cases, err := ParseCases([]string{DefaultCaseSpec})
	if err != nil {
		panic(err)
	}
	return cases[0]
}

type InvalidCase struct {
	Raw    string
	Reason string
}

func (err InvalidCase) Error() string {
	return fmt.Sprintf("The case \"%s\" is invalid: %s", err.Raw, err.Reason)
}
