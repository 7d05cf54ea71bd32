// Package cmd provides the root command and CLI setup for killmap.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"killmap.dev/pkg/killmap/internal/adapter"
	"killmap.dev/pkg/killmap/internal/controller"
	"killmap.dev/pkg/killmap/internal/domain"
)

var inputs adapter.InputAdapter
var binaries adapter.TestBinaryAdapter
var testRunner adapter.TestRunnerAdapter
var workflow domain.Workflow
var ui controller.UI

var (
	subjectDirFlag    string
	binariesDirFlag   string
	envFileFlag       string
	buildParallelFlag int
	outputLimitFlag   int
	logFileFlag       string
	verboseFlag       bool
)

func init() {
	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	inputs = adapter.NewLocalInputAdapter()
	binaries = adapter.NewLocalTestBinaryAdapter()
	testRunner = adapter.NewLocalTestRunnerAdapter()
	workflow = domain.NewWorkflow(inputs, binaries, testRunner, ui)
}

const rootLongDescription = `Killmap runs every (test, mutant) pair of a Go module in isolated test
processes and records how each test behaves under each mutant.

Mutants are selected at run time through the KILLMAP_MUTANT environment
variable; 0 selects the unmodified program. Tests that expose a defect
(triggering tests) are run first, and only mutants that change their
behaviour are run against the remaining tests.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "killmap",
		Short:         "Kill map generator for Go mutation analysis",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(logFileFor(cmd), viper.GetBool(logVerboseKey))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&subjectDirFlag, dirFlagName, viper.GetString(subjectDirKey), "directory of the Go module under test")
	bindFlagToConfig(flags.Lookup(dirFlagName), subjectDirKey)

	flags.StringVar(&binariesDirFlag, binariesFlagName, viper.GetString(subjectBinariesKey), "directory for compiled test binaries")
	bindFlagToConfig(flags.Lookup(binariesFlagName), subjectBinariesKey)

	flags.StringVar(&envFileFlag, envFileFlagName, viper.GetString(subjectEnvFileKey), "dotenv file with extra environment for test processes")
	bindFlagToConfig(flags.Lookup(envFileFlagName), subjectEnvFileKey)

	flags.IntVar(&buildParallelFlag, buildParallelFlagName, viper.GetInt(buildParallelKey), "number of test binaries built concurrently")
	bindFlagToConfig(flags.Lookup(buildParallelFlagName), buildParallelKey)

	flags.IntVar(&outputLimitFlag, outputLimitFlagName, viper.GetInt(outputLimitKey), "bytes of test output kept for failure text")
	bindFlagToConfig(flags.Lookup(outputLimitFlagName), outputLimitKey)

	flags.StringVar(&logFileFlag, logFileFlagName, "", "log file (default from log.filename)")

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// logFileFor keeps worker processes out of the parent's log file.
func logFileFor(cmd *cobra.Command) string {
	if flag := cmd.Flag(logFileFlagName); flag != nil && flag.Changed {
		return flag.Value.String()
	}

	if cmd.Name() == workerCmdName {
		return viper.GetString(logWorkerFilenameKey)
	}

	return viper.GetString(logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
