package cmd

import (
	"github.com/spf13/cobra"

	"killmap.dev/pkg/killmap/internal/domain"
)

const listLongDescription = `Build the test binaries of every package in TEST_PACKAGES and print the
id (importpath#TestName) of every test they contain, sorted.`

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list TEST_PACKAGES",
		Short: "List the tests of the given packages",
		Long:  listLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				BuildArgs:        buildArgs(),
				TestPackagesPath: args[0],
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
