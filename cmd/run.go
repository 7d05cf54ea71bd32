package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"killmap.dev/pkg/killmap/internal/adapter"
	"killmap.dev/pkg/killmap/internal/domain"
	m "killmap.dev/pkg/killmap/internal/model"
)

const runLongDescription = `Run every triggering test against every mutant it covers, then run the
remaining tests of TEST_PACKAGES against the mutants that changed the
behaviour of a triggering test.

TRIGGERING_TESTS lists the triggering tests as "--- importpath::TestName"
lines. TEST_PACKAGES lists one import path per line. PARTIAL_RUN_LOG is the
output of an earlier, interrupted run (use /dev/null for a fresh start); its
records are replayed instead of being run again.

One record per (test, mutant) pair is written to stdout:

  testId,mutantId,timeoutMs,TYPE,runTimeMs,digest,coveredMutants,failure`

var (
	baselineTimeoutFlag string
	gracePeriodFlag     string
	startupTimeoutFlag  string
	metricsFileFlag     string
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run TRIGGERING_TESTS TEST_PACKAGES PARTIAL_RUN_LOG",
		Short: "Build the kill map of a Go module",
		Long:  runLongDescription,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := selectionFlags(cmd)
			if err != nil {
				return err
			}

			executable, workerArgs, err := workerCommand()
			if err != nil {
				return err
			}

			runArgs := domain.RunArgs{
				BuildArgs:           buildArgs(),
				TriggeringTestsPath: args[0],
				TestPackagesPath:    args[1],
				PartialRunLogPath:   args[2],
				OnlyTest:            plan.OnlyTest,
				MutantsToRun:        plan.MutantsToRun,
				RunUnchangedMutants: plan.RunUnchangedMutants,
				BaselineTimeout:     durationSetting(baselineTimeoutKey),
				GracePeriod:         durationSetting(gracePeriodKey),
				StartupTimeout:      durationSetting(startupTimeoutKey),
				MetricsFile:         viper.GetString(metricsFileKey),
				Workers:             adapter.NewLocalWorkerAdapter(executable, workerArgs, nil, cmd.ErrOrStderr()),
				Output:              cmd.OutOrStdout(),
			}

			return workflow.Run(cmd.Context(), runArgs)
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringVar(&baselineTimeoutFlag, baselineTimeoutFlagName, viper.GetString(baselineTimeoutKey), "timeout of a test's unmutated run (duration or milliseconds)")
	bindFlagToConfig(flags.Lookup(baselineTimeoutFlagName), baselineTimeoutKey)

	flags.StringVar(&gracePeriodFlag, gracePeriodFlagName, viper.GetString(gracePeriodKey), "slack on top of a test's timeout before its worker is declared hung")
	bindFlagToConfig(flags.Lookup(gracePeriodFlagName), gracePeriodKey)

	flags.StringVar(&startupTimeoutFlag, startupTimeoutFlagName, viper.GetString(startupTimeoutKey), "how long a new worker may take to become ready")
	bindFlagToConfig(flags.Lookup(startupTimeoutFlagName), startupTimeoutKey)

	flags.StringVar(&metricsFileFlag, metricsFileFlagName, viper.GetString(metricsFileKey), "write run metrics to this file in Prometheus text format")
	bindFlagToConfig(flags.Lookup(metricsFileFlagName), metricsFileKey)

	flags.String(onlyTestFlagName, "", "run only this test, in both phases (importpath#TestName)")
	flags.IntSlice(mutantsToRunFlagName, nil,
		"run the triggering tests only against these mutant ids; for the other tests they replace the mutants found by the triggering tests")
	flags.Bool(runUnchangedMutantsFlag, false, "run the other tests against every covered mutant, not only behaviour-changing ones")
}

// selection holds the flags that narrow which pairs are run.
type selection struct {
	OnlyTest            *m.TestID
	MutantsToRun        []int
	RunUnchangedMutants bool
}

func selectionFlags(cmd *cobra.Command) (selection, error) {
	var sel selection

	onlyTest, err := cmd.Flags().GetString(onlyTestFlagName)
	if err != nil {
		return sel, err
	}

	if onlyTest != "" {
		test, err := m.ParseTestID(onlyTest, m.TestIDSeparator)
		if err != nil {
			return sel, fmt.Errorf("invalid --%s: %w", onlyTestFlagName, err)
		}

		sel.OnlyTest = &test
	}

	if cmd.Flags().Changed(mutantsToRunFlagName) {
		mutants, err := cmd.Flags().GetIntSlice(mutantsToRunFlagName)
		if err != nil {
			return sel, err
		}

		for _, id := range mutants {
			if id <= 0 {
				return sel, fmt.Errorf("invalid --%s: mutant id %d must be positive", mutantsToRunFlagName, id)
			}
		}

		sel.MutantsToRun = mutants
	}

	sel.RunUnchangedMutants, err = cmd.Flags().GetBool(runUnchangedMutantsFlag)

	return sel, err
}

func buildArgs() domain.BuildArgs {
	return domain.BuildArgs{
		SubjectDir:  viper.GetString(subjectDirKey),
		BinariesDir: viper.GetString(subjectBinariesKey),
		Parallel:    viper.GetInt(buildParallelKey),
	}
}

// workerCommand returns how this binary re-executes itself as a worker.
func workerCommand() (string, []string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", nil, fmt.Errorf("failed to locate killmap executable: %w", err)
	}

	args := []string{
		workerCmdName,
		"--" + binariesFlagName, viper.GetString(subjectBinariesKey),
		"--" + envFileFlagName, viper.GetString(subjectEnvFileKey),
		"--" + outputLimitFlagName, strconv.Itoa(viper.GetInt(outputLimitKey)),
		"--" + logFileFlagName, viper.GetString(logWorkerFilenameKey),
	}

	if viper.GetBool(logVerboseKey) {
		args = append(args, "--"+verboseFlagName)
	}

	return executable, args, nil
}
