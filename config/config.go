// Package config reads server settings from the environment. Every key can be
// overridden with a SCHOOL_ variable (redis.addr -> SCHOOL_REDIS_ADDR), and a
// .env file is loaded first when present.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"school-dashboard-go/stats"
)

const envPrefix = "SCHOOL"

// Storage drivers.
const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port    string
	Storage string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	PostgresURL      string
	PostgresMaxConns int32

	TrendDays  int
	BcryptCost int
	Seed       bool
}

func defaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("port", "8080")
	v.SetDefault("storage", DriverRedis)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "")
	v.SetDefault("postgres.url", "postgres://localhost:5432/school?sslmode=disable")
	v.SetDefault("postgres.maxConns", 4)
	v.SetDefault("trendDays", 30)
	v.SetDefault("bcryptCost", 0)
	v.SetDefault("seed", true)
}

// Load reads dotEnvPath (skipped when empty or missing) and then the
// environment.
func Load(dotEnvPath string) (*Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, fmt.Errorf("config.godotenv(%s): %w", dotEnvPath, err)
			}
			log.Printf("Loaded environment from %s", dotEnvPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config.os.Stat(%s): %w", dotEnvPath, err)
		}
	}

	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:             v.GetString("port"),
		Storage:          strings.ToLower(v.GetString("storage")),
		RedisAddr:        v.GetString("redis.addr"),
		RedisPassword:    v.GetString("redis.password"),
		RedisDB:          v.GetInt("redis.db"),
		RedisPrefix:      v.GetString("redis.prefix"),
		PostgresURL:      v.GetString("postgres.url"),
		PostgresMaxConns: v.GetInt32("postgres.maxConns"),
		TrendDays:        v.GetInt("trendDays"),
		BcryptCost:       v.GetInt("bcryptCost"),
		Seed:             v.GetBool("seed"),
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) check() error {
	switch c.Storage {
	case DriverRedis, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage)
	}
	if c.TrendDays <= 0 || c.TrendDays > stats.MaxTrendDays {
		return fmt.Errorf("trendDays must be between 1 and %d, got %d", stats.MaxTrendDays, c.TrendDays)
	}
	if c.PostgresMaxConns <= 0 {
		return fmt.Errorf("postgres.maxConns must be positive, got %d", c.PostgresMaxConns)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
