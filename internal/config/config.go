package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	ResolutionLocal  = "local"
	ResolutionRemote = "remote"
)

type Config struct {
	LogLevel   string     `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string     `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage    string     `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis      `yaml:"redis"`
	Resolution Resolution `yaml:"resolution"`
	Events     Events     `yaml:"events"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Resolution - where sub-board moves are resolved: in process or by a remote board service.
type Resolution struct {
	Mode    string        `yaml:"mode" env:"RESOLUTION_MODE" env-default:"local"`
	BaseURL string        `yaml:"base-url" env:"RESOLUTION_BASE_URL" env-default:"http://localhost:9090"`
	Timeout time.Duration `yaml:"timeout" env:"RESOLUTION_TIMEOUT" env-default:"5s"`
}

type Events struct {
	Heartbeat time.Duration `yaml:"heartbeat" env:"EVENTS_HEARTBEAT" env-default:"15s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory:
	case StorageRedis:
		if that.Redis.Host == "" || that.Redis.Port == "" {
			return fmt.Errorf("redis host and port are required for %s storage", StorageRedis)
		}
	default:
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	switch that.Resolution.Mode {
	case ResolutionLocal:
	case ResolutionRemote:
		if that.Resolution.BaseURL == "" {
			return fmt.Errorf("resolution base-url is required in %s mode", ResolutionRemote)
		}
	default:
		return fmt.Errorf("unknown resolution mode %q", that.Resolution.Mode)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
