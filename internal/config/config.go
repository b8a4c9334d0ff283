// Package config loads kalah settings from an HCL file and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/lox/kalah/internal/kalah"
)

const (
	DefaultLogLevel = "info"
	DefaultLogFile  = "kalah.log"
)

// Config is the complete kalah configuration
type Config struct {
	Rules    RulesConfig
	Players  PlayersConfig
	Log      LogConfig
	Spectate SpectateConfig
}

// RulesConfig sets the board dimensions and end-of-game sweep
type RulesConfig struct {
	PitsPerPlayer int    `hcl:"pits_per_player,optional"`
	SeedsPerPit   int    `hcl:"seeds_per_pit,optional"`
	Sweep         string `hcl:"sweep,optional"`
}

// PlayersConfig names the players; empty names are prompted for
type PlayersConfig struct {
	First  string `hcl:"first,optional"`
	Second string `hcl:"second,optional"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// SpectateConfig enables the websocket feed when Address is set
type SpectateConfig struct {
	Address string `hcl:"address,optional"`
}

// file mirrors the HCL layout; every block is optional
type file struct {
	Rules    *RulesConfig    `hcl:"rules,block"`
	Players  *PlayersConfig  `hcl:"players,block"`
	Log      *LogConfig      `hcl:"log,block"`
	Spectate *SpectateConfig `hcl:"spectate,block"`
}

// env lists the variables that override the file
type env struct {
	PitsPerPlayer int    `env:"KALAH_PITS_PER_PLAYER"`
	SeedsPerPit   int    `env:"KALAH_SEEDS_PER_PIT"`
	Sweep         string `env:"KALAH_SWEEP"`
	First         string `env:"KALAH_FIRST"`
	Second        string `env:"KALAH_SECOND"`
	LogLevel      string `env:"KALAH_LOG_LEVEL"`
	LogFile       string `env:"KALAH_LOG_FILE"`
	Spectate      string `env:"KALAH_SPECTATE_ADDR"`
}

// Default returns the standard game settings
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			PitsPerPlayer: kalah.DefaultPitsPerPlayer,
			SeedsPerPit:   kalah.DefaultSeedsPerPit,
			Sweep:         kalah.SweepNone.String(),
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}

// Load reads the HCL file, falling back to defaults when it does not exist,
// then applies environment overrides.
func Load(filename string) (*Config, error) {
	config, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFile reads configuration from an HCL file only
func LoadFile(filename string) (*Config, error) {
	config := Default()
	if filename == "" {
		return config, nil
	}

	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	diags = gohcl.DecodeBody(f.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if decoded.Rules != nil {
		config.Rules = *decoded.Rules
	}
	if decoded.Players != nil {
		config.Players = *decoded.Players
	}
	if decoded.Log != nil {
		config.Log = *decoded.Log
	}
	if decoded.Spectate != nil {
		config.Spectate = *decoded.Spectate
	}

	config.applyDefaults()
	return config, nil
}

// ApplyEnv overrides settings with any KALAH_* variables that are set
func (c *Config) ApplyEnv() error {
	var vars env
	if err := cleanenv.ReadEnv(&vars); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if vars.PitsPerPlayer != 0 {
		c.Rules.PitsPerPlayer = vars.PitsPerPlayer
	}
	if vars.SeedsPerPit != 0 {
		c.Rules.SeedsPerPit = vars.SeedsPerPit
	}
	if vars.Sweep != "" {
		c.Rules.Sweep = vars.Sweep
	}
	if vars.First != "" {
		c.Players.First = vars.First
	}
	if vars.Second != "" {
		c.Players.Second = vars.Second
	}
	if vars.LogLevel != "" {
		c.Log.Level = vars.LogLevel
	}
	if vars.LogFile != "" {
		c.Log.File = vars.LogFile
	}
	if vars.Spectate != "" {
		c.Spectate.Address = vars.Spectate
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Rules.PitsPerPlayer == 0 {
		c.Rules.PitsPerPlayer = kalah.DefaultPitsPerPlayer
	}
	if c.Rules.SeedsPerPit == 0 {
		c.Rules.SeedsPerPit = kalah.DefaultSeedsPerPit
	}
	if c.Rules.Sweep == "" {
		c.Rules.Sweep = kalah.SweepNone.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.File == "" {
		c.Log.File = DefaultLogFile
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.KalahRules(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Players.First != "" && c.Players.First == c.Players.Second {
		return fmt.Errorf("players must have different names, both are %q", c.Players.First)
	}
	return nil
}

// KalahRules converts the rules block into engine rules
func (c *Config) KalahRules() (kalah.Rules, error) {
	sweep, err := kalah.ParseSweepPolicy(c.Rules.Sweep)
	if err != nil {
		return kalah.Rules{}, fmt.Errorf("rules: %w", err)
	}
	rules := kalah.Rules{
		PitsPerPlayer: c.Rules.PitsPerPlayer,
		SeedsPerPit:   c.Rules.SeedsPerPit,
		Sweep:         sweep,
	}
	if err := rules.Validate(); err != nil {
		return kalah.Rules{}, fmt.Errorf("rules: %w", err)
	}
	return rules, nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log: %w", err)
	}
	return level, nil
}
