// Package runner evaluates sum assertions and reports the outcome the way a unit test runner would.
package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dalmo1991/dummy-package-dalmo/options"
	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusSkip Status = "SKIP"
)

func (s Status) label() string {
	return strings.ToLower(string(s))
}

// Result is the outcome of one case. Actual is only meaningful when Status is not StatusSkip.
type Result struct {
	Case    options.Case
	Status  Status
	Actual  options.Number
	Elapsed time.Duration
}

// Report summarizes a run. Results are in the same order as the configured cases.
type Report struct {
	Passed  int
	Failed  int
	Skipped int
	Elapsed time.Duration
	Results []Result
}

// OK reports whether every case ran and passed.
func (r *Report) OK() bool {
	return r.Failed == 0 && r.Skipped == 0
}

var errCaseFailed = errors.New("case failed")

// Run evaluates every case in opts. Cases run concurrently, bounded by opts.Concurrency when it is positive.
// With opts.FailFast the first failure cancels the run and any case that has not started yet is skipped.
// metrics may be nil.
func Run(ctx context.Context, opts *options.Options, metrics *Metrics) *Report {
	logger := opts.Logger

	startTime := time.Now()

	results := make([]Result, len(opts.Cases))
	for i, c := range opts.Cases {
		results[i] = Result{Case: c, Status: StatusSkip}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		group.SetLimit(opts.Concurrency)
	}

	for i := range opts.Cases {
		if groupCtx.Err() != nil {
			break
		}

		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}

			// Each goroutine owns results[i], so no locking is needed.
			results[i] = evaluate(opts.Cases[i])
			if results[i].Status == StatusFail {
				logger.Warnf("%s FAILED: %s expected %s, got %s", opts.Cases[i].Name, opts.Cases[i],
					opts.Cases[i].Expected, results[i].Actual)
				if opts.FailFast {
					return errCaseFailed
				}
			} else {
				logger.Debugf("%s passed", opts.Cases[i].Name)
			}
			return nil
		})
	}

	_ = group.Wait()

	report := &Report{Results: results, Elapsed: time.Since(startTime)}
	for _, result := range results {
		switch result.Status {
		case StatusPass:
			report.Passed++
		case StatusFail:
			report.Failed++
		case StatusSkip:
			report.Skipped++
		}
		metrics.record(result)
	}

	if report.OK() {
		logger.Infof("All %d cases passed.", report.Passed)
	} else {
		logger.Infof("%d of %d cases failed, %d skipped.", report.Failed, len(results), report.Skipped)
	}

	return report
}

func evaluate(c options.Case) Result {
	start := time.Now()
	actual := c.A.Plus(c.B)
	status := StatusPass
	if !actual.Equal(c.Expected) {
		status = StatusFail
	}
	return Result{Case: c, Status: status, Actual: actual, Elapsed: time.Since(start)}
}

// DetailedResponse is the JSON form of a Report. Numbers are strings so that exact integers and overflowed
// floats (+Inf) survive encoding.
type DetailedResponse struct {
	Status      string           `json:"status"`
	ElapsedTime string           `json:"elapsed_time"`
	Passed      int              `json:"passed"`
	Failed      int              `json:"failed"`
	Skipped     int              `json:"skipped"`
	Results     []DetailedResult `json:"results"`
}

type DetailedResult struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
	Status     string `json:"status"`
	Expected   string `json:"expected"`
	Actual     string `json:"actual,omitempty"`
}

func (r *Report) summary() string {
	status := "OK"
	if !r.OK() {
		status = "FAILED"
	}
	return status
}

// Write prints the report to w, as plain text or, when detailed is set, as a single JSON document.
func (r *Report) Write(w io.Writer, detailed bool) error {
	if detailed {
		resp := DetailedResponse{
			Status:      r.summary(),
			ElapsedTime: r.Elapsed.String(),
			Passed:      r.Passed,
			Failed:      r.Failed,
			Skipped:     r.Skipped,
			Results:     make([]DetailedResult, 0, len(r.Results)),
		}
		for _, result := range r.Results {
			dr := DetailedResult{
				Name:       result.Case.Name,
				Expression: result.Case.String(),
				Status:     string(result.Status),
				Expected:   result.Case.Expected.String(),
			}
			if result.Status != StatusSkip {
				dr.Actual = result.Actual.String()
			}
			resp.Results = append(resp.Results, dr)
		}
		return json.NewEncoder(w).Encode(resp)
	}

	var sb strings.Builder
	for _, result := range r.Results {
		switch result.Status {
		case StatusPass:
			fmt.Fprintf(&sb, "PASS %s: %s = %s\n", result.Case.Name, result.Case, result.Actual)
		case StatusFail:
			fmt.Fprintf(&sb, "FAIL %s: %s\n", result.Case.Name, result.Case)
			fmt.Fprintf(&sb, "    expected: %s\n", result.Case.Expected)
			fmt.Fprintf(&sb, "    actual:   %s\n", result.Actual)
		case StatusSkip:
			fmt.Fprintf(&sb, "SKIP %s: %s\n", result.Case.Name, result.Case)
		}
	}
	fmt.Fprintf(&sb, "%s (passed=%d, failed=%d, skipped=%d) in %s\n", r.summary(), r.Passed, r.Failed, r.Skipped, r.Elapsed)

	_, err := io.WriteString(w, sb.String())
	return err
}
