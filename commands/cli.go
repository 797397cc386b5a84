package commands

import (
	"context"
	"fmt"

	"github.com/dalmo1991/dummy-package-dalmo/options"
	"github.com/dalmo1991/dummy-package-dalmo/runner"
	"github.com/gruntwork-io/go-commons/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
)

// CreateCli initializes the root urfave/cli/v3 Command with the sum and test subcommands.
func CreateCli(version string) *cli.Command {
	app := &cli.Command{}

	app.Name = "dummy"
	app.Version = version
	app.Usage = "Adds two numbers, and runs sum assertions the way a unit test runner does."
	app.Flags = globalFlags
	// Cases use ',' between operands, so --case values must reach the parser whole.
	app.DisableSliceFlagSeparator = true
	app.Commands = []*cli.Command{
		{
			Name:      "sum",
			Usage:     "Print the sum of two numbers. Use -- before negative operands.",
			ArgsUsage: "A B",
			Action:    runSum,
		},
		{
			Name:   "test",
			Usage:  "Run sum assertions and exit with a non-zero status if any of them fails.",
			Flags:  testFlags,
			Action: runTests,

			DisableSliceFlagSeparator: true,
		},
	}

	return app
}

func runSum(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	if cmd.NArg() != 2 {
		return errors.WithStackTrace(WrongOperandCount(cmd.NArg()))
	}

	a, err := options.ParseNumber(cmd.Args().Get(0))
	if err != nil {
		return errors.WithStackTrace(err)
	}
	b, err := options.ParseNumber(cmd.Args().Get(1))
	if err != nil {
		return errors.WithStackTrace(err)
	}

	sum := a.Plus(b)
	logger.Debugf("sum(%s, %s) = %s", a, b, sum)

	_, err = fmt.Fprintln(outWriter(cmd), sum)
	return err
}

func runTests(ctx context.Context, cmd *cli.Command) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return errors.WithStackTrace(err)
	}

	var metrics *runner.Metrics
	if opts.MetricsFile != "" {
		metrics = runner.NewMetrics(prometheus.NewRegistry())
	}

	opts.Logger.Infof("Running %d cases...", len(opts.Cases))
	report := runner.Run(ctx, opts, metrics)

	// Metrics are exported before the report is printed so a broken output stream cannot lose them.
	if metrics != nil {
		if err := metrics.WriteToTextfile(opts.MetricsFile); err != nil {
			return errors.WithStackTrace(err)
		}
		opts.Logger.Debugf("Wrote metrics to %s", opts.MetricsFile)
	}

	if err := report.Write(outWriter(cmd), opts.DetailedStatus); err != nil {
		return errors.WithStackTrace(err)
	}

	if !report.OK() {
		return errors.WithStackTrace(TestsFailed{Failed: report.Failed, Skipped: report.Skipped, Total: len(report.Results)})
	}

	return nil
}

// FormatError renders an error returned by the CLI, with its stack trace when DUMMY_DEBUG is set.
func FormatError(err error) string {
	if isDebugMode() {
		return errors.PrintErrorWithStackTrace(err)
	}
	return err.Error()
}
