package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// versionInfo reports the module version and the toolchain killmap was built with.
func versionInfo() (version, goVersion string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}

	version = info.Main.Version
	if version == "" || version == "(devel)" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				version = "devel-" + setting.Value
			}
		}
	}

	return version, info.GoVersion
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the killmap build version and the Go version used to build it.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := versionInfo()
			if version == "" {
				cmd.Println("killmap version: unknown")
				return
			}

			cmd.Printf("killmap version\t%s\n", version)
			cmd.Printf("go version\t%s\n", goVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
