// Package sixconfig loads the optional .sixlock.yml project file and
// layers an environment variable override on top, the way a small CLI
// tool's config usually works: a handful of named fields with sane
// defaults, not a generic key-value bag.
package sixconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultKeyFile  = ".git/sixlock/master.key"
	defaultLogLevel = "info"

	// FileName is the config file sixconfig looks for in the repository
	// root.
	FileName = ".sixlock.yml"

	logLevelEnvVar = "SIXLOCK_LOG_LEVEL"
)

// Config holds sixlock's project-level settings.
type Config struct {
	KeyFile  string `yaml:"key_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns a Config populated with sixlock's built-in defaults.
func Default() Config {
	return Config{
		KeyFile:  defaultKeyFile,
		LogLevel: defaultLogLevel,
	}
}

// Load reads dir/.sixlock.yml if present, falling back to defaults for
// any field it does not set, then applies the SIXLOCK_LOG_LEVEL
// environment variable on top if it is set. A missing config file is not
// an error; a present-but-unparsable one is.
func Load(dir string) (Config, error) {
	cfg := Default()

	path := dir + string(os.PathSeparator) + FileName
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.KeyFile == "" {
		cfg.KeyFile = defaultKeyFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(logLevelEnvVar); v != "" {
		cfg.LogLevel = v
	}
}
