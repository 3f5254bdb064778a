package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Agora    AgoraConfig
	Match    MatchConfig
	Economy  EconomyConfig
	CORS     CORSConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig points at an optional Postgres candidate directory. An
// empty Host means the seeded in-memory directory is used.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig points at the optional economy/settings store. An empty Host
// means an in-memory store is used.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AgoraConfig struct {
	AppID                string
	AppCertificate       string
	LegacyAppID          string
	LegacyAppCertificate string
	DefaultExpireSeconds int
}

type MatchConfig struct {
	Policy            string
	Delay             time.Duration
	GlobalRoom        string
	DefaultUserAge    int
	DefaultUserGender string
}

type EconomyConfig struct {
	FilterCost int
	BoostCost  int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("TOKEN_DEFAULT_EXPIRE_SECONDS", 3600)
	v.SetDefault("MATCH_POLICY", "shared_room")
	v.SetDefault("MATCH_DELAY", "2s")
	v.SetDefault("MATCH_GLOBAL_ROOM", "call_room_global")
	v.SetDefault("DEFAULT_USER_AGE", 25)
	v.SetDefault("DEFAULT_USER_GENDER", "Male")
	v.SetDefault("FILTER_COST", 10)
	v.SetDefault("BOOST_COST", 50)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".env")
}

// LoadFrom reads configuration into v from envFile (if present) and the
// environment. Tests pass their own viper instance.
func LoadFrom(v *viper.Viper, envFile string) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		// Try to read from .env file, but don't fail if it doesn't exist
		_ = v.ReadInConfig()
	}

	config := &Config{
		Server: ServerConfig{
			Host:         v.GetString("SERVER_HOST"),
			Port:         v.GetInt("SERVER_PORT"),
			Env:          v.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Agora: AgoraConfig{
			AppID:                v.GetString("AGORA_APP_ID"),
			AppCertificate:       v.GetString("AGORA_APP_CERTIFICATE"),
			LegacyAppID:          v.GetString("APP_ID"),
			LegacyAppCertificate: v.GetString("APP_CERTIFICATE"),
			DefaultExpireSeconds: v.GetInt("TOKEN_DEFAULT_EXPIRE_SECONDS"),
		},
		Match: MatchConfig{
			Policy:            v.GetString("MATCH_POLICY"),
			Delay:             v.GetDuration("MATCH_DELAY"),
			GlobalRoom:        v.GetString("MATCH_GLOBAL_ROOM"),
			DefaultUserAge:    v.GetInt("DEFAULT_USER_AGE"),
			DefaultUserGender: v.GetString("DEFAULT_USER_GENDER"),
		},
		Economy: EconomyConfig{
			FilterCost: v.GetInt("FILTER_COST"),
			BoostCost:  v.GetInt("BOOST_COST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values. Missing Agora secrets
// are not an error here: token requests report them individually.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	switch c.Match.Policy {
	case "shared_room", "random":
	default:
		return fmt.Errorf("unknown match policy %q (want shared_room or random)", c.Match.Policy)
	}
	if c.Match.Delay < 0 {
		return fmt.Errorf("match delay must not be negative")
	}
	if c.Match.DefaultUserAge < 0 {
		return fmt.Errorf("default user age must not be negative")
	}
	switch c.Match.DefaultUserGender {
	case "Male", "Female", "Other":
	default:
		return fmt.Errorf("default user gender %q is not one of Male, Female, Other", c.Match.DefaultUserGender)
	}
	if c.Economy.FilterCost < 0 || c.Economy.BoostCost < 0 {
		return fmt.Errorf("economy costs must not be negative")
	}
	if c.Database.Host != "" {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name is required")
		}
	}
	return nil
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
