package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalmo1991/dummy-package-dalmo/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCli(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer

	app := CreateCli("0.0.0")
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(context.Background(), append([]string{"dummy"}, args...))
	return out.String(), err
}

func TestSumCommand(t *testing.T) {
	testCases := []struct {
		name        string
		args        []string
		expectedOut string
		expectedErr string
	}{
		{"integers", []string{"sum", "2", "2"}, "4\n", ""},
		{"floats", []string{"sum", "1.5", "2.25"}, "3.75\n", ""},
		{"negative after separator", []string{"sum", "--", "-3", "1"}, "-2\n", ""},
		{"integers above 2^53 stay exact", []string{"sum", "9007199254740993", "0"}, "9007199254740993\n", ""},
		{"debug log level", []string{"--log-level", "debug", "sum", "2", "2"}, "4\n", ""},
		{"invalid log level", []string{"--log-level", "notreally", "sum", "2", "2"}, "", "The log-level value"},
		{"too few operands", []string{"sum", "2"}, "", "Expected exactly 2 operands, got 1"},
		{"not a number", []string{"sum", "2", "two"}, "", `"two" is not a number`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			out, err := runCli(t, testCase.args...)
			if testCase.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), testCase.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedOut, out)
		})
	}
}

func TestTestCommandDefaultCaseFails(t *testing.T) {
	out, err := runCli(t, "test")

	require.Error(t, err)
	assert.ErrorAs(t, err, &TestsFailed{})
	assert.Contains(t, err.Error(), "1 of 1 cases failed")
	assert.Contains(t, out, "FAIL test_result: sum(2, 2)\n    expected: 5\n    actual:   4\n")
}

func TestTestCommandPasses(t *testing.T) {
	out, err := runCli(t, "test", "--case", "test_result:2,2=4", "--case", "1,-1=0")

	require.NoError(t, err)
	assert.Contains(t, out, "PASS test_result: sum(2, 2) = 4\n")
	assert.Contains(t, out, "PASS case_2: sum(1, -1) = 0\n")
	assert.Contains(t, out, "OK (passed=2, failed=0, skipped=0)")
}

func TestTestCommandDetailedStatus(t *testing.T) {
	out, err := runCli(t, "test", "--detailed-status", "--case", "2,2=4")
	require.NoError(t, err)

	var resp runner.DetailedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, 1, resp.Passed)
}

func TestTestCommandOverflowStillReports(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dummy.prom")

	out, err := runCli(t, "test", "--detailed-status", "--metrics-file", path, "--case", "big:1e308,1e308=1")
	require.Error(t, err)
	assert.ErrorAs(t, err, &TestsFailed{})

	var resp runner.DetailedResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "+Inf", resp.Results[0].Actual)

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), `dummy_cases_total{result="fail"} 1`)
}

func TestTestCommandWritesMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dummy.prom")

	_, err := runCli(t, "test", "--metrics-file", path)
	require.Error(t, err)

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), `dummy_cases_total{result="fail"} 1`)
}

func TestFormatError(t *testing.T) {
	err := TestsFailed{Failed: 1, Total: 1}

	_ = os.Setenv(ENV_VAR_NAME_DEBUG_MODE, "false")
	assert.Equal(t, "1 of 1 cases failed, 0 skipped", FormatError(err))
	_ = os.Unsetenv(ENV_VAR_NAME_DEBUG_MODE)
}

func TestIsDebugMode(t *testing.T) {
	_ = os.Setenv(ENV_VAR_NAME_DEBUG_MODE, "true")
	assert.True(t, isDebugMode())

	_ = os.Setenv(ENV_VAR_NAME_DEBUG_MODE, "false")
	assert.False(t, isDebugMode())

	_ = os.Unsetenv(ENV_VAR_NAME_DEBUG_MODE)
	assert.False(t, isDebugMode())
}
