package core

import (
	"os"
	"path/filepath"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	FedsweepConfigPath     = ".config/fedsweep"
	FedsweepConfigFilename = "config.yaml"
)

const FedsweepConfigEnv = "FEDSWEEP_CONFIG"

func fileExist(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Build path for config file
// Set from argument, then environment, then home directory
// Empty when none exists; defaults are used then
func getConfigPath(path string) string {
	if len(path) > 0 {
		return path
	}
	if configPath := os.Getenv(FedsweepConfigEnv); len(configPath) > 0 {
		return configPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	if homePath := filepath.Join(home, FedsweepConfigPath, FedsweepConfigFilename); fileExist(homePath) {
		return homePath
	}
	return ""
}

// Read launch config over the built-in defaults. YAML or JSON.
// An explicitly named file that cannot be read is an error.
func ReadLaunchConfig(path string) (LaunchConfig, string, error) {
	config := DefaultLaunchConfig()
	filename := getConfigPath(path)
	if len(filename) == 0 {
		return config, "", nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return LaunchConfig{}, filename, errors.Wrap(err, "cannot read fedsweep config")
	}
	if err := ParseLaunchConfig(data, &config); err != nil {
		return LaunchConfig{}, filename, errors.Wrapf(err, "invalid fedsweep config %s", filename)
	}
	return config, filename, nil
}

// Decode data onto config; fields missing from data keep their value
func ParseLaunchConfig(data []byte, config *LaunchConfig) error {
	return yaml.UnmarshalStrict(data, config)
}

// Validate reports every problem with the config, not just the first
func (c LaunchConfig) Validate() error {
	var result *multierror.Error
	if len(c.Values) == 0 {
		result = multierror.Append(result, errors.New("no sweep values"))
	}
	seen := make(map[int]struct{})
	for _, f := range c.Values {
		if f < 0 {
			result = multierror.Append(result, errors.Errorf("sweep value %d is negative", f))
		}
		if _, ok := seen[f]; ok {
			result = multierror.Append(result, errors.Errorf("sweep value %d listed twice", f))
		}
		seen[f] = struct{}{}
	}
	if c.LearningRate <= 0 {
		result = multierror.Append(result, errors.Errorf("learning rate %v must be positive", c.LearningRate))
	}
	if c.NumClients <= 0 {
		result = multierror.Append(result, errors.Errorf("client count %d must be positive", c.NumClients))
	}
	if _, ok := Datasets[c.Dataset]; !ok {
		result = multierror.Append(result, errors.Errorf("unknown dataset %q", c.Dataset))
	}
	if len(c.Directives.Memory) == 0 {
		result = multierror.Append(result, errors.New("memory request is empty"))
	}
	if len(c.Directives.Time) == 0 {
		result = multierror.Append(result, errors.New("time limit is empty"))
	}
	if c.Directives.Gpus < 0 {
		result = multierror.Append(result, errors.Errorf("gpu count %d is negative", c.Directives.Gpus))
	}
	if len(c.Environment.Program) == 0 {
		result = multierror.Append(result, errors.New("training program is empty"))
	}
	return result.ErrorOrNil()
}
