package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"bandwidthtest/internal/models"
	"bandwidthtest/internal/modules/probe"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	invalidURLTemplate = "Invalid URL, the error was: %s\n"
	genericTemplate    = "An error has occurred, the error was: %s\n"
)

// Measurer is the part of the probe the command depends on.
type Measurer interface {
	Run(ctx context.Context, raw string) (models.Throughput, error)
}

// Execute runs the command against os.Args and returns the process exit code.
func Execute(ctx context.Context, logger *zap.Logger, level zap.AtomicLevel) int {
	return execute(ctx, logger, level, probe.New(logger), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, logger *zap.Logger, level zap.AtomicLevel, m Measurer, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(logger, level, m)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Debug("execution failed",
			zap.Stringer("kind", probe.KindOf(err)),
			zap.Error(err))
		fmt.Fprint(stderr, Report(err))
		return 1
	}
	return 0
}

func newRootCmd(logger *zap.Logger, level zap.AtomicLevel, m Measurer) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "bandwidth <url>",
		Short:         "Measure download bandwidth of a URL",
		Long:          `Downloads the resource at the given http or https URL, discarding the body, and prints the estimated throughput in kilobytes per second.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				level.SetLevel(zap.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, logger, m)
		},
	}

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
	pflag.CommandLine.AddFlagSet(rootCmd.Flags())

	return rootCmd
}

func run(cmd *cobra.Command, args []string, logger *zap.Logger, m Measurer) error {
	if len(args) == 0 {
		return probe.ErrMissingURL
	}
	if len(args) > 1 {
		logger.Debug("ignoring extra arguments", zap.Strings("extra", args[1:]))
	}

	kbps, err := m.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Bandwidth: %dkb/s\n", kbps)
	return nil
}

// Report renders err with the message template matching its kind.
func Report(err error) string {
	if probe.KindOf(err) == probe.KindMalformedURL {
		return fmt.Sprintf(invalidURLTemplate, err.Error())
	}
	return fmt.Sprintf(genericTemplate, err.Error())
}
