package config

import (
	"fmt"
	"os"

	"github.com/Domenick1991/cabinbooking/internal/cabin"
	"gopkg.in/yaml.v3"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Cabin    cabin.Config   `yaml:"cabin"`
	Storage  StorageConfig  `yaml:"storage"`
}

type HTTPConfig struct {
	Address    string `yaml:"address"`
	SwaggerDir string `yaml:"swagger_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr        string `yaml:"addr"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	BookingsKey string `yaml:"bookings_key"`
}

type KafkaConfig struct {
	Brokers         []string `yaml:"brokers"`
	SeatEventsTopic string   `yaml:"seat_events_topic"`
	GroupID         string   `yaml:"group_id"`
}

// StorageConfig selects the record store mirrored by the ledger.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

func Default() Config {
	return Config{
		HTTP:    HTTPConfig{Address: ":8080"},
		Cabin:   cabin.DefaultConfig(),
		Storage: StorageConfig{Driver: StorageFile, Path: "bookings.csv"},
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.HTTP.Address == "" {
		c.HTTP.Address = def.HTTP.Address
	}
	if c.Cabin.Rows == 0 && c.Cabin.Columns == 0 {
		c.Cabin = def.Cabin
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Driver == StorageFile && c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
}

func (c *Config) Validate() error {
	if err := c.Cabin.Validate(); err != nil {
		return fmt.Errorf("invalid cabin config: %w", err)
	}
	switch c.Storage.Driver {
	case StorageFile, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
