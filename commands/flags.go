package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dalmo1991/dummy-package-dalmo/options"
	"github.com/gruntwork-io/go-commons/logging"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const DEFAULT_CONCURRENCY = 0
const ENV_VAR_NAME_DEBUG_MODE = "DUMMY_DEBUG"

var caseFlag = &cli.StringSliceFlag{
	Name:  "case",
	Usage: "[Optional] A case to run, written as [name:]a,b=expected. Specify one or more times. Defaults to \"" + options.DefaultCaseSpec + "\". Example: \"zero:0,0=0\"",
}

var concurrencyFlag = &cli.IntFlag{
	Name:  "concurrency",
	Usage: "[Optional] Maximum number of cases evaluated at the same time. 0 means unbounded. Example: 4",
	Value: DEFAULT_CONCURRENCY,
}

var failFastFlag = &cli.BoolFlag{
	Name:  "fail-fast",
	Usage: "[Optional] Stop at the first failing case. Cases that did not start are reported as skipped.",
}

var detailedStatusFlag = &cli.BoolFlag{
	Name:  "detailed-status",
	Usage: "[Optional] Print the report as a JSON document with per-case results and elapsed time.",
}

var metricsFileFlag = &cli.StringFlag{
	Name:  "metrics-file",
	Usage: "[Optional] Write case metrics to `PATH` in the Prometheus textfile format after the run. Example: /var/lib/node_exporter/dummy.prom",
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: fmt.Sprintf("[Optional] Set the log level to `LEVEL`. Must be one of: %v", logrus.AllLevels),
	Value: logrus.InfoLevel.String(),
}

var testFlags = []cli.Flag{
	caseFlag,
	concurrencyFlag,
	failFastFlag,
	detailedStatusFlag,
	metricsFileFlag,
}

var globalFlags = []cli.Flag{
	logLevelFlag,
}

// newLogger builds the logger shared by every command. Logs go to the error writer so that the report on the
// standard writer stays machine readable in --detailed-status mode.
func newLogger(cmd *cli.Command) (*logrus.Logger, error) {
	logger := logging.GetLogger("dummy", "v0.0.0")
	logger.Logger.Out = errWriter(cmd)

	logLevel := cmd.String(logLevelFlag.Name)
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, InvalidLogLevel(logLevel)
	}
	logger.Logger.SetLevel(level)

	return logger.Logger, nil
}

// parseOptions processes the user-provided CLI arguments of the test command and maps them to the
// runner's Options. Without any --case the repository's default case is run.
func parseOptions(cmd *cli.Command) (*options.Options, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	cases := []options.Case{options.DefaultCase()}
	if caseArr := cmd.StringSlice(caseFlag.Name); len(caseArr) > 0 {
		cases, err = options.ParseCases(caseArr)
		if err != nil {
			return nil, err
		}
	}

	concurrency := int(cmd.Int(concurrencyFlag.Name))
	if concurrency < 0 {
		return nil, InvalidConcurrency(concurrency)
	}

	return &options.Options{
		Cases:          cases,
		Concurrency:    concurrency,
		FailFast:       cmd.Bool(failFastFlag.Name),
		DetailedStatus: cmd.Bool(detailedStatusFlag.Name),
		MetricsFile:    cmd.String(metricsFileFlag.Name),
		Logger:         logger,
	}, nil
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// Some error types are simple enough that we'd rather just show the error message directly instead of vomiting out a
// whole stack trace in log output. Therefore, allow a debug mode that always shows full stack traces. Otherwise, show
// simple messages.
func isDebugMode() bool {
	envVar, _ := os.LookupEnv(ENV_VAR_NAME_DEBUG_MODE)
	envVar = strings.ToLower(envVar)
	return envVar == "true"
}

// Custom error types

type InvalidLogLevel string

func (invalidLogLevel InvalidLogLevel) Error() string {
	return fmt.Sprintf("The log-level value \"%s\" is invalid", string(invalidLogLevel))
}

type InvalidConcurrency int

func (concurrency InvalidConcurrency) Error() string {
	return fmt.Sprintf("The concurrency value %d is invalid, it must be 0 or greater", int(concurrency))
}

type WrongOperandCount int

func (count WrongOperandCount) Error() string {
	return fmt.Sprintf("Expected exactly 2 operands, got %d", int(count))
}

type TestsFailed struct {
	Failed  int
	Skipped int
	Total   int
}

func (err TestsFailed) Error() string {
	return fmt.Sprintf("%d of %d cases failed, %d skipped", err.Failed, err.Total, err.Skipped)
}
