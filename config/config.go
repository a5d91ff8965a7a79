package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	DB         DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Scheduling SchedulingConfig
	Public     PublicConfig
}

type AppConfig struct {
	Port            string
	Env             string
	LogLevel        string
	DefaultTimezone string
	CORSOrigins     []string
}

type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// SchedulingConfig holds the tunables of the slot engine and the queue estimator.
type SchedulingConfig struct {
	MorningEnd         string
	EveningEnd         string
	RegenerationMonths int
	MinAverageSamples  int
}

type PublicConfig struct {
	RateLimit  int
	RateWindow time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	rateWindow, err := time.ParseDuration(viper.GetString("PUBLIC_RATE_WINDOW"))
	if err != nil {
		rateWindow = time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:            viper.GetString("APP_PORT"),
			Env:             viper.GetString("APP_ENV"),
			LogLevel:        viper.GetString("LOG_LEVEL"),
			DefaultTimezone: viper.GetString("APP_DEFAULT_TIMEZONE"),
			CORSOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASSWORD"),
			Name:         viper.GetString("DB_NAME"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			MaxOpenConns: viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: viper.GetInt("DB_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: accessExpiry,
		},
		Scheduling: SchedulingConfig{
			MorningEnd:         viper.GetString("SCHEDULING_MORNING_END"),
			EveningEnd:         viper.GetString("SCHEDULING_EVENING_END"),
			RegenerationMonths: viper.GetInt("SCHEDULING_REGENERATION_MONTHS"),
			MinAverageSamples:  viper.GetInt("SCHEDULING_MIN_AVERAGE_SAMPLES"),
		},
		Public: PublicConfig{
			RateLimit:  viper.GetInt("PUBLIC_RATE_LIMIT"),
			RateWindow: rateWindow,
		},
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_DEFAULT_TIMEZONE", "UTC")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCHEDULING_MORNING_END", "14:00")
	viper.SetDefault("SCHEDULING_EVENING_END", "22:00")
	viper.SetDefault("SCHEDULING_REGENERATION_MONTHS", 3)
	viper.SetDefault("SCHEDULING_MIN_AVERAGE_SAMPLES", 3)
	viper.SetDefault("PUBLIC_RATE_LIMIT", 60)
}

// splitList parses a comma separated env value, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
