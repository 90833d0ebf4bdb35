package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevator"
	"github.com/szymonmasternak/elevator-dispatch/internal/elevconsts"
	"github.com/szymonmasternak/elevator-dispatch/internal/logger"
	"gopkg.in/yaml.v3"
)

var Log = logger.GetLogger()

var ErrInvalidConfig = errors.New("invalid config")

const ENV_PREFIX = "ELEVSIM_"

type Config struct {
	Floors          int           `yaml:"floors"`
	Elevators       int           `yaml:"elevators"`
	TravelTime      time.Duration `yaml:"travel_time"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	IdleInterval    time.Duration `yaml:"idle_interval"`
	RequestInterval time.Duration `yaml:"request_interval"`
	RequestCount    int           `yaml:"request_count"`
	Seed            int64         `yaml:"seed"` //0 seeds from the clock
	LogLevel        string        `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Floors:          elevconsts.DEFAULT_FLOORS,
		Elevators:       elevconsts.DEFAULT_ELEVATORS,
		TravelTime:      elevconsts.DEFAULT_TRAVEL_TIME,
		PollInterval:    elevconsts.DEFAULT_POLL_INTERVAL,
		IdleInterval:    elevconsts.DEFAULT_IDLE_INTERVAL,
		RequestInterval: elevconsts.DEFAULT_REQUEST_INTERVAL,
		RequestCount:    elevconsts.DEFAULT_REQUEST_COUNT,
		LogLevel:        "info",
	}
}

// Load decodes the YAML file at path over the defaults, keys missing from
// the file keep their default value.
func Load(path string) (Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	Log.Debug().Str("path", path).Msg("Loaded config file")
	return c, nil
}

// ApplyEnv overrides fields from ELEVSIM_* variables. Values in envFile are
// read first and the process environment wins over them. A missing envFile
// is not an error.
func (c *Config) ApplyEnv(envFile string) error {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
			Log.Debug().Str("path", envFile).Msg("No env file, using process environment only")
		case err != nil:
			return fmt.Errorf("read env file %s: %w", envFile, err)
		default:
			values = fileValues
		}
	}

	lookup := func(key string) (string, bool) {
		if value, ok := os.LookupEnv(ENV_PREFIX + key); ok {
			return value, true
		}
		value, ok := values[ENV_PREFIX+key]
		return value, ok
	}

	ints := map[string]*int{
		"FLOORS":        &c.Floors,
		"ELEVATORS":     &c.Elevators,
		"REQUEST_COUNT": &c.RequestCount,
	}
	for key, field := range ints {
		if value, ok := lookup(key); ok {
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", ENV_PREFIX, key, value, ErrInvalidConfig)
			}
			*field = parsed
		}
	}

	durations := map[string]*time.Duration{
		"TRAVEL_TIME":      &c.TravelTime,
		"POLL_INTERVAL":    &c.PollInterval,
		"IDLE_INTERVAL":    &c.IdleInterval,
		"REQUEST_INTERVAL": &c.RequestInterval,
	}
	for key, field := range durations {
		if value, ok := lookup(key); ok {
			parsed, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("%s%s=%q: %w", ENV_PREFIX, key, value, ErrInvalidConfig)
			}
			*field = parsed
		}
	}

	if value, ok := lookup("SEED"); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED=%q: %w", ENV_PREFIX, value, ErrInvalidConfig)
		}
		c.Seed = parsed
	}
	if value, ok := lookup("LOG_LEVEL"); ok {
		c.LogLevel = value
	}
	return nil
}

func (c Config) Validate() error {
	if c.Floors <= elevconsts.MIN_FLOORS || c.Floors > elevconsts.MAX_FLOORS {
		return fmt.Errorf("floors %d not in (%d, %d]: %w", c.Floors, elevconsts.MIN_FLOORS, elevconsts.MAX_FLOORS, ErrInvalidConfig)
	}
	if c.Elevators <= elevconsts.MIN_ELEVATORS || c.Elevators > elevconsts.MAX_ELEVATORS {
		return fmt.Errorf("elevators %d not in (%d, %d]: %w", c.Elevators, elevconsts.MIN_ELEVATORS, elevconsts.MAX_ELEVATORS, ErrInvalidConfig)
	}
	if c.Floors < 2 && c.RequestCount > 0 {
		return fmt.Errorf("random requests need at least 2 floors: %w", ErrInvalidConfig)
	}
	if c.RequestCount < 0 {
		return fmt.Errorf("request count %d is negative: %w", c.RequestCount, ErrInvalidConfig)
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"travel_time", c.TravelTime},
		{"poll_interval", c.PollInterval},
		{"idle_interval", c.IdleInterval},
		{"request_interval", c.RequestInterval},
	}
	for _, duration := range durations {
		if duration.value <= 0 {
			return fmt.Errorf("%s %v must be positive: %w", duration.name, duration.value, ErrInvalidConfig)
		}
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalidConfig)
	}
	return nil
}

func (c Config) ElevatorConfig() elevator.Config {
	return elevator.Config{
		TravelTime:   c.TravelTime,
		IdleInterval: c.IdleInterval,
	}
}
