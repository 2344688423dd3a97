package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/ozzus/skip-hire/internal/domain/models"
)

type Config struct {
	Env             string         `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger          string         `yaml:"jaeger" env:"JAEGER"`
	CatalogCacheTTL time.Duration  `yaml:"catalog_cache_ttl" env:"CATALOG_CACHE_TTL" env-default:"30m"`
	Log             LogConfig      `yaml:"log"`
	HTTP            HTTPConfig     `yaml:"http"`
	GRPC            GRPCConfig     `yaml:"grpc"`
	Redis           RedisConfig    `yaml:"redis"`
	Upstream        UpstreamConfig `yaml:"upstream"`
	Booking         BookingConfig  `yaml:"booking"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type HTTPConfig struct {
	Host           string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"HTTP_REQUEST_TIMEOUT" env-default:"5s"`
}

type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"GRPC_PORT" env-default:"44046"`
}

type RedisConfig struct {
	Disabled bool   `yaml:"disabled" env:"REDIS_DISABLED"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type UpstreamConfig struct {
	BaseURL  string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-default:"https://app.wewantwaste.co.uk"`
	Postcode string        `yaml:"postcode" env:"UPSTREAM_POSTCODE" env-default:"NR32"`
	Area     string        `yaml:"area" env:"UPSTREAM_AREA" env-default:"Lowestoft"`
	Timeout  time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"5s"`
}

type BookingConfig struct {
	DeliveryWindowDays int           `yaml:"delivery_window_days" env:"BOOKING_DELIVERY_WINDOW_DAYS" env-default:"14"`
	SessionTTL         time.Duration `yaml:"session_ttl" env:"BOOKING_SESSION_TTL" env-default:"2h"`
	SweepInterval      time.Duration `yaml:"sweep_interval" env:"BOOKING_SWEEP_INTERVAL" env-default:"5m"`
	MaxSessions        int           `yaml:"max_sessions" env:"BOOKING_MAX_SESSIONS" env-default:"10000"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c GRPCConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c UpstreamConfig) Location() models.Location {
	return models.Location{Postcode: c.Postcode, Area: c.Area}
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return MustLoadByPath(path)
}

func MustLoadByPath(configPath string) *Config {
	cfg, err := LoadByPath(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func LoadByPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read the config: %w", err)
	}

	return &cfg, nil
}

// LoadUpstreamFromEnv reads only the upstream section, from the environment.
func LoadUpstreamFromEnv() (UpstreamConfig, error) {
	var cfg UpstreamConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return UpstreamConfig{}, fmt.Errorf("cannot read upstream env: %w", err)
	}
	return cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}
