package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/ringstack/pkg/pipeline"
)

const (
	configFileName = "config"
	configFileType = "toml"
	configFileExt  = "config.toml"
	envPrefix      = "RINGSTACK"

	defaultAddr    = ":8080"
	defaultTimeout = "30s"
)

// Config is the on-disk configuration. Keys map to flags of the same name.
type Config struct {
	Sample SampleConfig `toml:"sample" mapstructure:"sample"`
	Render RenderConfig `toml:"render" mapstructure:"render"`
	Cache  CacheConfig  `toml:"cache" mapstructure:"cache"`
	Serve  ServeConfig  `toml:"serve" mapstructure:"serve"`
}

// SampleConfig holds sampler defaults.
type SampleConfig struct {
	Seed    uint64 `toml:"seed" mapstructure:"seed"`
	Count   int    `toml:"count" mapstructure:"count"`
	MaxSize int    `toml:"max_size" mapstructure:"max_size"`
}

// RenderConfig holds geometry and output defaults.
type RenderConfig struct {
	Formats            []string `toml:"formats" mapstructure:"formats"`
	CanvasSize         int      `toml:"canvas_size" mapstructure:"canvas_size"`
	Layer              int      `toml:"layer" mapstructure:"layer"`
	PerResonatorLayers bool     `toml:"per_resonator_layers" mapstructure:"per_resonator_layers"`
	Scale              int      `toml:"scale" mapstructure:"scale"`
	PreviewSize        int      `toml:"preview_size" mapstructure:"preview_size"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Disabled bool `toml:"disabled" mapstructure:"disabled"`
	// Redis is a redis:// URL used by serve instead of the file cache.
	Redis string `toml:"redis" mapstructure:"redis"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr    string `toml:"addr" mapstructure:"addr"`
	Timeout string `toml:"timeout" mapstructure:"timeout"`
}

// RequestTimeout parses Timeout, falling back to the default on bad input.
func (s ServeConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(defaultTimeout)
	}
	return d
}

func defaultConfig() Config {
	return Config{
		Sample: SampleConfig{
			Seed:    pipeline.DefaultSeed,
			Count:   pipeline.DefaultCount,
			MaxSize: pipeline.DefaultMaxSize,
		},
		Render: RenderConfig{
			Formats:     []string{pipeline.FormatSVG},
			Layer:       pipeline.DefaultLayer,
			Scale:       pipeline.DefaultScale,
			PreviewSize: pipeline.DefaultPreviewSize,
		},
		Serve: ServeConfig{
			Addr:    defaultAddr,
			Timeout: defaultTimeout,
		},
	}
}

// setConfigDefaults registers every key so that environment variables are
// picked up by Unmarshal even when the file does not mention them.
func setConfigDefaults(v *viper.Viper) {
	d := defaultConfig()
	v.SetDefault("sample.seed", d.Sample.Seed)
	v.SetDefault("sample.count", d.Sample.Count)
	v.SetDefault("sample.max_size", d.Sample.MaxSize)
	v.SetDefault("render.formats", d.Render.Formats)
	v.SetDefault("render.canvas_size", d.Render.CanvasSize)
	v.SetDefault("render.layer", d.Render.Layer)
	v.SetDefault("render.per_resonator_layers", d.Render.PerResonatorLayers)
	v.SetDefault("render.scale", d.Render.Scale)
	v.SetDefault("render.preview_size", d.Render.PreviewSize)
	v.SetDefault("cache.disabled", d.Cache.Disabled)
	v.SetDefault("cache.redis", d.Cache.Redis)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.timeout", d.Serve.Timeout)
}

// loadConfig reads the config file and RINGSTACK_* environment variables.
// With an empty path the file is looked up in the config directory, and a
// missing file is not an error. An explicit path must exist.
func loadConfig(path string) (Config, error) {
	v := viper.New()
	setConfigDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(configFileType)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// encodeConfig renders cfg as TOML.
func encodeConfig(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# ringstack configuration\n# Flags override these values; so do RINGSTACK_<SECTION>_<KEY> variables.\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// configFilePath returns the file loadConfig reads by default.
func configFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileExt), nil
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		// Replaces the root hook: a missing --config file is what init creates.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			switch {
			case err == nil:
				c.Config = cfg
			case !errors.Is(err, fs.ErrNotExist):
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default values",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := configFilePath()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				printWarning("Config already exists: %s", path)
				printNextStep("Overwrite it with", "ringstack config init --force")
				return nil
			}

			data, err := encodeConfig(defaultConfig())
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			printSuccess("Wrote config")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.configPath != "" {
				fmt.Fprintln(cmd.OutOrStdout(), c.configPath)
				return nil
			}
			path, err := configFilePath()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := encodeConfig(c.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
