package adapter

import (
	"fmt"
	"slices"

	"github.com/joho/godotenv"
)

// LoadEnvFile reads a dotenv file and returns its entries as sorted KEY=VALUE
// pairs ready for exec.Cmd.Env. An empty path yields no entries.
func LoadEnvFile(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}

	env := make([]string, 0, len(values))
	for k, v := range values {
		env = append(env, k+"="+v)
	}

	slices.Sort(env)

	return env, nil
}
