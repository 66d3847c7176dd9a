package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEndpoint     = "http://localhost:8000"
	DefaultTheme        = "ocean"
	DefaultFPS          = 20
	DefaultLogFile      = "ksdash.log"
	DefaultLength       = 32.0 * 3.141592653589793
	DefaultGridPoints   = 128
	DefaultDuration     = 100.0
	DefaultDt           = 0.25
	DefaultViscosity    = 1.0
	DefaultEpochs       = 5000
	DefaultLearningRate = 1e-3

	EnvEndpoint = "KSDASH_ENDPOINT"
)

type Config struct {
	Endpoint       string        `yaml:"endpoint"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Theme          string        `yaml:"theme"`
	FPS            int           `yaml:"fps"`
	LogLevel       string        `yaml:"log_level"`
	LogFormat      string        `yaml:"log_format"`
	LogFile        string        `yaml:"log_file"`
	Params         Params        `yaml:"params"`
}

// Params are the KS solver inputs sent with a run request.
type Params struct {
	Length       float64 `yaml:"length" json:"length"`
	GridPoints   int     `yaml:"grid_points" json:"grid_points"`
	Duration     float64 `yaml:"duration" json:"duration"`
	Dt           float64 `yaml:"dt" json:"dt"`
	Viscosity    float64 `yaml:"viscosity" json:"viscosity"`
	Epochs       int     `yaml:"epochs" json:"epochs"`
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
}

func DefaultParams() Params {
	return Params{
		Length:       DefaultLength,
		GridPoints:   DefaultGridPoints,
		Duration:     DefaultDuration,
		Dt:           DefaultDt,
		Viscosity:    DefaultViscosity,
		Epochs:       DefaultEpochs,
		LearningRate: DefaultLearningRate,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Theme:    DefaultTheme,
		FPS:      DefaultFPS,
		LogLevel: "info",
		LogFile:  DefaultLogFile,
		Params:   DefaultParams(),
	}
}

// Load reads a YAML config on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve loads path when set (defaults otherwise), then applies .env and
// environment overrides.
func Resolve(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvEndpoint); v != "" {
		c.Endpoint = v
	}
}

var ErrInvalidParams = errors.New("config: invalid parameters")

// Validate rejects inputs no run could start from. It does not judge
// physical plausibility.
func (p Params) Validate() error {
	switch {
	case p.Length <= 0:
		return fmt.Errorf("%w: length must be positive", ErrInvalidParams)
	case p.GridPoints < 2:
		return fmt.Errorf("%w: grid_points must be at least 2", ErrInvalidParams)
	case p.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidParams)
	case p.Dt <= 0 || p.Dt > p.Duration:
		return fmt.Errorf("%w: dt must be in (0, duration]", ErrInvalidParams)
	case p.Epochs < 0:
		return fmt.Errorf("%w: epochs must not be negative", ErrInvalidParams)
	case p.LearningRate < 0:
		return fmt.Errorf("%w: learning_rate must not be negative", ErrInvalidParams)
	}
	return nil
}
