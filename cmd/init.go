package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

type configSection struct {
	name    string
	comment string
	keys    []configKey
}

type configKey struct {
	key     string
	comment string
}

// configLayout is the order and commentary of the generated killmap.yaml.
var configLayout = []configSection{
	{
		name:    "subject",
		comment: "The module under analysis and where its test binaries are kept.",
		keys: []configKey{
			{subjectDirKey, "Module root, where go.mod lives."},
			{subjectBinariesKey, "Compiled test binaries and their manifest."},
			{subjectEnvFileKey, "Optional .env file loaded into every test process."},
		},
	},
	{
		name: "build",
		keys: []configKey{
			{buildParallelKey, "Test binaries compiled concurrently."},
		},
	},
	{
		name:    "run",
		comment: "Durations accept Go syntax (90s, 2m) or plain milliseconds.",
		keys: []configKey{
			{baselineTimeoutKey, "Timeout of a test run without any mutant enabled."},
			{outputLimitKey, "Bytes of test output kept for the digest and failure message."},
			{metricsFileKey, "Prometheus textfile written at the end of a run. Empty disables it."},
		},
	},
	{
		name: "worker",
		keys: []configKey{
			{gracePeriodKey, "Slack after a test timeout before its worker is declared hung."},
			{startupTimeoutKey, "Wait for a new worker to report it is ready."},
		},
	},
	{
		name: "log",
		keys: []configKey{
			{logFilenameKey, ""},
			{logWorkerFilenameKey, "Worker processes log here instead of the main log file."},
			{logLevelKey, "slog level: -4 debug, 0 info, 4 warn, 8 error."},
			{logVerboseKey, ""},
			{logMaxSizeKey, "Megabytes before the log file is rotated."},
			{logMaxBackupsKey, ""},
			{logMaxAgeKey, "Days rotated log files are kept."},
			{logCompressKey, ""},
		},
	},
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default killmap.yaml configuration file",
		Long: `Create a commented killmap.yaml in the current working directory populated
with the current settings so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			contents, err := renderConfig()
			if err != nil {
				return fmt.Errorf("failed to render config file: %w", err)
			}

			if err := writeNewFile(targetPath, contents); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

// renderConfig encodes the current viper settings following configLayout.
func renderConfig() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	version, err := valueNode(viper.Get(configVersionKey))
	if err != nil {
		return nil, err
	}

	root.Content = append(root.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: configVersionKey, HeadComment: "# killmap configuration"},
		version)

	for _, section := range configLayout {
		body := &yaml.Node{Kind: yaml.MappingNode}

		for _, entry := range section.keys {
			value, err := valueNode(viper.Get(entry.key))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", entry.key, err)
			}

			_, leaf, _ := strings.Cut(entry.key, ".")
			body.Content = append(body.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: leaf, HeadComment: yamlComment(entry.comment)},
				value)
		}

		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: section.name, HeadComment: yamlComment(section.comment)},
			body)
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func valueNode(value any) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return nil, err
	}

	return &node, nil
}

func yamlComment(text string) string {
	if text == "" {
		return ""
	}

	return "# " + text
}

// writeNewFile refuses to overwrite an existing file.
func writeNewFile(path string, contents []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	_, writeErr := file.Write(contents)

	return errors.Join(writeErr, file.Close())
}

func init() {
	rootCmd.AddCommand(initCmd)
}
