package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/gnana997/react2ts/pkg/converter"
	"github.com/gnana997/react2ts/pkg/format"
	"github.com/gnana997/react2ts/pkg/proptypes"
	"github.com/gnana997/react2ts/pkg/transform"
	"github.com/gnana997/react2ts/pkg/util"
)

const (
	configName = ".react2ts"
	envPrefix  = "REACT2TS"
)

// Config is the merged result of defaults, .react2ts.yaml, REACT2TS_*
// environment variables and command-line flags, in increasing priority.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Passes     []string             `mapstructure:"passes" yaml:"passes"`
	Vocabulary proptypes.Vocabulary `mapstructure:"vocabulary" yaml:"vocabulary"`
	Format     format.Config        `mapstructure:"format" yaml:"format"`
	Convert    converter.Config     `mapstructure:"convert" yaml:"convert"`

	Watch struct {
		DebounceMs int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
	} `mapstructure:"watch" yaml:"watch"`

	Serve struct {
		LogFile string `mapstructure:"log_file" yaml:"log_file"`
	} `mapstructure:"serve" yaml:"serve"`
}

// setDefaults registers every key so that AutomaticEnv can see it.
func setDefaults(v *viper.Viper) {
	vocab := proptypes.DefaultVocabulary()

	v.SetDefault("log.level", string(util.LevelInfo))
	v.SetDefault("log.format", string(util.FormatText))
	v.SetDefault("passes", transform.DefaultPassNames())

	v.SetDefault("vocabulary.library_names", vocab.LibraryNames)
	v.SetDefault("vocabulary.library_module", vocab.LibraryModule)
	v.SetDefault("vocabulary.base_module", vocab.BaseModule)
	v.SetDefault("vocabulary.base_component", vocab.BaseComponent)
	v.SetDefault("vocabulary.state_method", vocab.StateMethod)
	v.SetDefault("vocabulary.node_type", vocab.NodeType)
	v.SetDefault("vocabulary.element_type", vocab.ElementType)
	v.SetDefault("vocabulary.stateless_type", vocab.StatelessType)

	v.SetDefault("format.enabled", false)
	v.SetDefault("format.command", "prettier")
	v.SetDefault("format.ignore_errors", false)

	v.SetDefault("convert.keep_original", false)
	v.SetDefault("convert.dry_run", false)
	v.SetDefault("convert.workers", 0)
	v.SetDefault("convert.report", "")
	v.SetDefault("convert.exclude", []string{})

	v.SetDefault("watch.debounce_ms", 200)
	v.SetDefault("serve.log_file", "")
}

// readConfig loads .env, the config file and the environment into v.
// An explicit file that cannot be read is an error; a missing default file
// is not.
func readConfig(v *viper.Viper, explicit string) error {
	// .env is optional.
	_ = godotenv.Load()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// loadConfig decodes v into a Config.
func loadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Environment values for list keys arrive as one comma separated string.
	cfg.Passes = splitList(cfg.Passes)
	cfg.Convert.Exclude = splitList(cfg.Convert.Exclude)

	cfg.Vocabulary = cfg.Vocabulary.WithDefaults()
	cfg.Convert.Passes = cfg.Passes
	cfg.Convert.Vocabulary = cfg.Vocabulary
	return &cfg, nil
}

func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (c *Config) newLogger() *slog.Logger {
	return util.NewLogger(util.LoggerConfig{
		Level:  util.ParseLogLevel(c.Log.Level),
		Format: util.ParseLogFormat(c.Log.Format),
		Output: os.Stderr,
	})
}
