// Package config loads runtime configuration from environment variables
// (LISTIT_ prefix) and an optional .listit.yaml file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	LogFile string

	// Database: when DBHost is empty the server runs against the local
	// on-disk store instead.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr string

	DataDir string

	JWTSecret string
	CSRFKey   string

	AllowOrigins []string

	// Suggestion helper (optional, OpenAI-compatible endpoint).
	SuggestURL   string
	SuggestKey   string
	SuggestModel string
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("log_file", "./logs/app.log")
	v.SetDefault("db_host", "")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "listit_db")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("redis_addr", "")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("csrf_key", "")
	v.SetDefault("allow_origins", "http://localhost:3000")
	v.SetDefault("suggest_url", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("suggest_key", "")
	v.SetDefault("suggest_model", "gpt-4o-mini")

	v.SetConfigName(".listit")
	v.SetEnvPrefix("LISTIT")
	v.AutomaticEnv()
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		Port:         v.GetString("port"),
		LogFile:      v.GetString("log_file"),
		DBHost:       v.GetString("db_host"),
		DBPort:       v.GetString("db_port"),
		DBUser:       v.GetString("db_user"),
		DBPassword:   v.GetString("db_password"),
		DBName:       v.GetString("db_name"),
		DBSSLMode:    v.GetString("db_sslmode"),
		RedisAddr:    v.GetString("redis_addr"),
		DataDir:      v.GetString("data_dir"),
		JWTSecret:    v.GetString("jwt_secret"),
		CSRFKey:      v.GetString("csrf_key"),
		AllowOrigins: strings.Split(v.GetString("allow_origins"), ","),
		SuggestURL:   v.GetString("suggest_url"),
		SuggestKey:   v.GetString("suggest_key"),
		SuggestModel: v.GetString("suggest_model"),
	}, nil
}

// DatabaseConfigured reports whether a remote backend was requested. The
// decision between remote and local persistence is made once, at startup.
func (c *Config) DatabaseConfigured() bool {
	return c.DBHost != ""
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
