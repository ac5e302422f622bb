package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters shared by the drivers.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Sets  KVList
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 3, TPS: 60, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.Var(&c.Sets, "set", "sim option in key=value form, e.g. -set w=320 (repeatable)")
}

// Options returns the -set overrides as a sim configuration map.
func (c *Config) Options() (map[string]string, error) {
	out := make(map[string]string, len(c.Sets))
	for _, kv := range c.Sets {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("app: option %q is not key=value", kv)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one flag value.
func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}
