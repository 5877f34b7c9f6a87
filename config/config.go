// Package config loads the command line tool settings from defaults, an
// optional config file, CSVFILE_* environment variables and flags.
package config

import (
	"os"
	"path/filepath"

	"github.com/magiconair/properties"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix   = "CSVFILE"
	DefaultFile = "~/.csvfile.yaml"
)

// Keys shared with flag bindings.
const (
	KeySafeMode     = "safe_mode"
	KeyIgnoreHeader = "ignore_header"
	KeyLogLevel     = "log_level"
)

type Config struct {
	SafeMode     bool   `mapstructure:"safe_mode"`
	IgnoreHeader bool   `mapstructure:"ignore_header"`
	LogLevel     string `mapstructure:"log_level"`
}

// Load reads the configuration into v and decodes it. An empty path means
// DefaultFile, which may be absent; an explicit path must exist. Files
// ending in .properties are read as Java properties, anything else by
// viper according to its extension.
func Load(v *viper.Viper, path string) (*Config, error) {
	v.SetDefault(KeySafeMode, true)
	v.SetDefault(KeyIgnoreHeader, false)
	v.SetDefault(KeyLogLevel, "info")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "expand config path")
	}
	if _, err := os.Stat(path); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "config file")
		}
	} else if err := readFile(v, path); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

func readFile(v *viper.Viper, path string) error {
	if filepath.Ext(path) != ".properties" {
		v.SetConfigFile(path)
		return errors.Wrapf(v.ReadInConfig(), "read config %s", path)
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	settings := make(map[string]interface{}, p.Len())
	for k, val := range p.Map() {
		settings[k] = val
	}
	return errors.Wrapf(v.MergeConfigMap(settings), "merge config %s", path)
}
