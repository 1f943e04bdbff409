package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override config.yaml.
// Nested keys are separated by a double underscore:
// TOURTREK_AUTH__TOKEN_SECRET -> auth.token_secret.
const EnvPrefix = "TOURTREK_"

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Log      LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Address        string   `yaml:"address" validate:"required"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Swagger        bool     `yaml:"swagger"`
}

type AuthConfig struct {
	TokenSecret string        `yaml:"token_secret" validate:"required"`
	TokenTTL    time.Duration `yaml:"token_ttl" validate:"required"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"oneof=mongo postgres"`
	// URI is a full connection string. For mongo it may be left empty and
	// assembled from Host, User and Password (Atlas SRV form).
	URI      string `yaml:"uri"`
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required"`
}

// MongoURI returns URI or, when empty, an Atlas SRV connection string.
func (d DatabaseConfig) MongoURI() string {
	if d.URI != "" {
		return d.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/%s?retryWrites=true&w=majority", d.User, d.Password, d.Host, d.Name)
}

type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	FeaturedTTLSecs int    `yaml:"featured_ttl_seconds"`
}

func (r RedisConfig) FeaturedTTL() time.Duration {
	return time.Duration(r.FeaturedTTLSecs) * time.Second
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

func defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:        ":5000",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Auth:     AuthConfig{TokenTTL: time.Hour},
		Database: DatabaseConfig{Driver: DriverMongo, Name: "tourDB"},
		Redis:    RedisConfig{FeaturedTTLSecs: 60},
		Kafka: KafkaConfig{
			BookingTopic:       "bookings",
			NotificationsTopic: "booking-notifications",
			GroupID:            "tourtrek-worker",
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads the YAML file at path, then applies .env and environment
// overrides and validates the result. A missing file is not an error: the
// service can run purely from the environment.
func LoadConfig(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env is optional.
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load env: %w", err)
	}

	// Lists from the environment replace file values instead of merging index by index.
	if k.Exists("http.allowed_origins") {
		cfg.HTTP.AllowedOrigins = nil
	}
	if k.Exists("kafka.brokers") {
		cfg.Kafka.Brokers = nil
	}

	err = k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		Tag: "yaml",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			WeaklyTypedInput: true,
			Result:           cfg,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to apply env: %w", err)
	}

	// Plain variable names kept for existing deployments.
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		cfg.HTTP.Address = ":" + v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_SECRET"); ok && v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v, ok := os.LookupEnv("DB_USER"); ok && v != "" {
		cfg.Database.User = v
	}
	if v, ok := os.LookupEnv("DB_PASS"); ok && v != "" {
		cfg.Database.Password = v
	}
	return nil
}
