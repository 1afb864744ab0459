package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type API struct {
	BaseURL string        `yaml:"API_BASE_URL" env:"API_BASE_URL" env-default:"http://localhost:8080/api"`
	Timeout time.Duration `yaml:"API_TIMEOUT" env:"API_TIMEOUT" env-default:"30s"`
}

// Storage picks the key-value backend for the persisted cart and session
// slots. "none" disables persistence entirely (server-rendering contexts).
type Storage struct {
	Backend string `yaml:"STORAGE_BACKEND" env:"STORAGE_BACKEND" env-default:"file"`
	Path    string `yaml:"STORAGE_PATH" env:"STORAGE_PATH" env-default:".techhub"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Telemetry struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"techhub-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:""`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Payments struct {
	ReturnURL string `yaml:"RETURN_URL" env:"PAYMENTS_RETURN_URL" env-default:"http://localhost:4200/pago/resultado"`
}

type Config struct {
	Env       string       `yaml:"env" env:"ENV" env-default:"local"`
	API       API          `yaml:"api"`
	Storage   Storage      `yaml:"storage"`
	Redis     RedisConnect `yaml:"redis"`
	Telemetry Telemetry    `yaml:"telemetry"`
	Payments  Payments     `yaml:"payments"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

	}

	var cfg Config

	if configPath == "" {
		// Environment-only startup is fine for a client; every field has a
		// default or an env binding.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("can not read config from environment: %s", err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
