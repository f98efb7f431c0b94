// Package config layers engine settings from defaults, environment
// variables with the WOODPUSHER_ prefix, and command line flags, flags
// winning.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	v *viper.Viper
}

// Load parses args and binds them over the environment. Unknown flags are
// an error; an empty args slice is fine.
func (c *Config) Load(args []string) error {
	c.v = viper.New()

	fs := pflag.NewFlagSet("woodpusher", pflag.ContinueOnError)
	fs.Bool("debug", false, "debug logging")
	fs.Bool("uci", false, "speak UCI on stdin/stdout instead of the shell")
	fs.Int("default-depth", 2, "default search depth in full moves")
	fs.String("autoplay-db", "", "sqlite file recording autoplay games")
	fs.String("cpu-profile", "", "write a cpu profile to this file")
	fs.String("mem-profile", "", "write a memory profile to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.v.BindPFlags(fs); err != nil {
		return err
	}

	c.v.SetEnvPrefix("woodpusher")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()
	return nil
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// Set overrides a single setting, mainly for tests.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// AllSettings renders every known setting on one line, sorted by key.
func (c *Config) AllSettings() string {
	settings := c.v.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, settings[k])
	}
	return strings.Join(parts, " ")
}
