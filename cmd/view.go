package cmd

import (
	"github.com/spf13/cobra"

	"killmap.dev/pkg/killmap/internal/controller"
	"killmap.dev/pkg/killmap/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view RESULT_LOG",
		Short: "Summarize a result log",
		Long:  "Summarize a result log per test: baseline outcome, mutants run, behaviour-changing mutants and outcome tallies.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := cmd.Flags().GetString(formatFlagName)
			if err != nil {
				return err
			}

			format, err := controller.ParseOutputFormat(value)
			if err != nil {
				return err
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{ResultLogPath: args[0], Format: format})
		},
	}

	cmd.Flags().StringP(formatFlagName, "f", string(controller.FormatTable), "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
