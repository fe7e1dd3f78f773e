package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rhyrak/examsched/internal/scheduler"
)

// EnvPrefix marks environment overrides, e.g. EXAMSCHED_SCHEDULER__DAYS=3.
const EnvPrefix = "EXAMSCHED_"

type Config struct {
	Scheduler SchedulerConfig `json:"scheduler"`
	Log       LogConfig       `json:"log"`
	Server    ServerConfig    `json:"server"`
	Store     StoreConfig     `json:"store"`
	CSV       CSVConfig       `json:"csv"`
}

type SchedulerConfig struct {
	Days      int      `json:"days" validate:"gte=1"`
	BatchSize int      `json:"batch_size" validate:"gte=1"`
	Phases    []string `json:"phases" validate:"required,min=1,dive,required"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `json:"level" validate:"oneof=debug info warn error"`
	Format string `json:"format" validate:"oneof=json console"`
}

type ServerConfig struct {
	Addr string `json:"addr" validate:"required"`
	// MaxUploadMB bounds multipart uploads.
	MaxUploadMB int `json:"max_upload_mb" validate:"gte=1"`
}

type StoreConfig struct {
	// Path of the SQLite database; ":memory:" keeps runs in process.
	Path string `json:"path" validate:"required"`
}

type CSVConfig struct {
	Delimiter string `json:"delimiter" validate:"required"`
}

// Default returns a configuration that works without any file.
func Default() *Config {
	engine := scheduler.NewDefaultConfiguration()
	return &Config{
		Scheduler: SchedulerConfig{
			Days:      engine.NumberOfDays,
			BatchSize: engine.BatchSize,
			Phases:    engine.Phases,
		},
		Log:    LogConfig{Level: "info", Format: "json"},
		Server: ServerConfig{Addr: ":8080", MaxUploadMB: 8},
		Store:  StoreConfig{Path: "examsched.db"},
		CSV:    CSVConfig{Delimiter: ","},
	}
}

// Load reads path (YAML or JSON) over the defaults and then applies
// environment overrides. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := Default()
	if k.Exists("scheduler.phases") {
		cfg.Scheduler.Phases = nil
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field ranges and the scheduler phase list.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("invalid config: csv delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if err := c.Scheduler.Engine().Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Engine converts the section into the scheduler's configuration.
func (s SchedulerConfig) Engine() *scheduler.Configuration {
	return &scheduler.Configuration{
		NumberOfDays: s.Days,
		BatchSize:    s.BatchSize,
		Phases:       append([]string(nil), s.Phases...),
	}
}

// Rune returns the delimiter as a rune for the csv readers.
func (c CSVConfig) Rune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
