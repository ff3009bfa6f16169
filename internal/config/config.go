package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/xerrors"

	"github.com/MarkProvanP/mips-toy-lang/internal/lexer"
)

// FileName is the config file looked for by Discover
const FileName = "noggin.toml"

// LogLevelEnv overrides log.level when set
const LogLevelEnv = "NOGGIN_LOG_LEVEL"

// Config holds the complete front end configuration
type Config struct {
	Lexer  LexerConfig  `toml:"lexer"`
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

// LexerConfig holds tokenizer policy
type LexerConfig struct {
	IdentifierHyphens bool `toml:"identifier_hyphens"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// OutputConfig holds CLI rendering settings
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Lexer:  LexerConfig{IdentifierHyphens: true},
		Log:    LogConfig{Level: "warn", Format: "text"},
		Output: OutputConfig{Format: "text", Color: true},
	}
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, xerrors.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads noggin.toml from dir, or returns the defaults if there is none.
func Discover(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if level := os.Getenv(LogLevelEnv); level != "" {
		c.Log.Level = level
	}
}

// Validate checks every enumerated setting.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	switch c.Output.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("output.format must be text or yaml, got %q", c.Output.Format)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", s, err)
	}
	return level, nil
}

// Logger builds a logger writing to w. verbose forces debug level.
func (c *Config) Logger(w io.Writer, verbose bool) *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil || verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// LexerOptions turns the lexer section into lexer options.
func (c *Config) LexerOptions() []lexer.Option {
	return []lexer.Option{lexer.WithIdentifierHyphens(c.Lexer.IdentifierHyphens)}
}
