// Package config loads graphbash settings from a TOML file.
//
// Every field has a default, so a missing default config file is not an
// error and a config file only needs the keys it changes. Unknown keys are
// rejected to catch typos.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphbash/pkg/errors"
	"github.com/matzehuels/graphbash/pkg/panel"
)

const appName = "graphbash"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Config is the complete configuration.
type Config struct {
	Graph   GraphConfig      `toml:"graph"`
	Cost    panel.CostPolicy `toml:"cost"`
	Targets []Target         `toml:"targets"`
	Cache   CacheConfig      `toml:"cache"`
	Server  ServerConfig     `toml:"server"`
}

// GraphConfig selects where the panel graph comes from.
type GraphConfig struct {
	// Dump is the RAM dump to generate from.
	Dump string `toml:"dump"`
	// File is a previously generated graph. It takes precedence over Dump.
	File     string `toml:"file"`
	Root     int32  `toml:"root"`
	Depth    int    `toml:"depth"`
	MaxNodes int    `toml:"max_nodes"`
}

// Target is a named panel worth reaching.
type Target struct {
	Name        string `toml:"name" json:"name"`
	Node        int32  `toml:"node" json:"node"`
	Description string `toml:"description" json:"description,omitempty"`
	// Optional targets are only routed to when asked for by name.
	Optional bool `toml:"optional" json:"optional,omitempty"`
}

// CacheConfig selects and configures the graph cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	TTL           Duration `toml:"ttl"`
	Dir           string   `toml:"dir"`
	Prefix        string   `toml:"prefix"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// RouteTimeout bounds a single route query.
	RouteTimeout Duration `toml:"route_timeout"`
	// MaxGoals caps the goals of one route query. Zero means no limit.
	MaxGoals int `toml:"max_goals"`
}

// Duration is a time.Duration written as a string such as "168h".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Graph: GraphConfig{
			Dump:  "resources/RAM.bin",
			Root:  34,
			Depth: panel.DefaultMaxDepth,
		},
		Cost:    panel.DefaultCostPolicy(),
		Targets: DefaultTargets(),
		Cache: CacheConfig{
			Backend:       BackendFile,
			TTL:           Duration{7 * 24 * time.Hour},
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: appName,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			RouteTimeout: Duration{30 * time.Second},
			MaxGoals:     10,
		},
	}
}

// DefaultTargets returns the known glitch panels.
func DefaultTargets() []Target {
	return []Target{
		{Name: "panic-dash", Node: -1190},
		{Name: "instaboss", Node: -1399},
		{Name: "early-start", Node: -1510},
		{Name: "instawin", Node: -1569},
		{Name: "time-skip", Node: -1608, Optional: true},
		{Name: "time-cut", Node: -1615},
		{Name: "melt-panic-arena-size", Node: -2024},
		{Name: "visual-no-rules-box", Node: -974, Optional: true},
		{Name: "visual-spinning-skybox", Node: -989},
		{Name: "visual-corrupt-pause", Node: -1482},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/graphbash/config.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path on top of the defaults. An empty path
// loads the default path and tolerates its absence.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data)
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Targets = nil // decoding into the defaults would leak their fields
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if !md.IsDefined("targets") {
		cfg.Targets = DefaultTargets()
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := errors.ValidateDepth(c.Graph.Depth); err != nil {
		return err
	}
	if c.Graph.MaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "graph.max_nodes must not be negative")
	}
	if err := c.Cost.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateBackend(c.Cache.Backend, BackendFile, BackendRedis, BackendMongo, BackendNone); err != nil {
		return err
	}
	if c.Server.MaxGoals < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_goals must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if err := errors.ValidateTargetName(t.Name); err != nil {
			return err
		}
		if seen[t.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate target %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// Target returns the target with the given name.
func (c *Config) Target(name string) (Target, bool) {
	i := slices.IndexFunc(c.Targets, func(t Target) bool { return t.Name == name })
	if i < 0 {
		return Target{}, false
	}
	return c.Targets[i], true
}

// Goals resolves route goals given as target names or panel indices.
// Without arguments every non-optional target is a goal.
func (c *Config) Goals(args []string) ([]int32, error) {
	if len(args) == 0 {
		var goals []int32
		for _, t := range c.Targets {
			if !t.Optional {
				goals = append(goals, t.Node)
			}
		}
		return goals, nil
	}

	goals := make([]int32, 0, len(args))
	for _, arg := range args {
		if t, ok := c.Target(arg); ok {
			goals = append(goals, t.Node)
			continue
		}
		n, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidTarget, "%q is neither a known target nor a panel index", arg)
		}
		goals = append(goals, int32(n))
	}
	return goals, nil
}

// Name returns the target name of a panel, or its index as text.
func (c *Config) Name(node int32) string {
	for _, t := range c.Targets {
		if t.Node == node {
			return t.Name
		}
	}
	return strconv.Itoa(int(node))
}
