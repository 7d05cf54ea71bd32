package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"killmap.dev/pkg/killmap/internal/domain"
)

const workerCmdName = "worker"

// workerCmd represents the worker command.
var workerCmd = newWorkerCmd()

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:    workerCmdName,
		Short:  "Run work orders read from stdin (started by killmap run)",
		Long:   "Read one work order per line from stdin, run it in a fresh test process and print its outcome on stdout.",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Serve(cmd.Context(), domain.ServeArgs{
				BinariesDir: viper.GetString(subjectBinariesKey),
				EnvFile:     viper.GetString(subjectEnvFileKey),
				OutputLimit: viper.GetInt(outputLimitKey),
				In:          cmd.InOrStdin(),
				Out:         cmd.OutOrStdout(),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
