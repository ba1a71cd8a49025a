package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tenf-admin-go/pkg/logger"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	DB          DBConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Auth        AuthConfig
	Twitch      TwitchConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional: an empty Addr disables caching entirely and
// the app runs on a noop cache client.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyPrefix    string
}

// CacheConfig carries the TTL policy per query kind. Only members and
// events are cached; everything moderation-facing reads live.
type CacheConfig struct {
	MembersActiveTTL   time.Duration
	MembersVipsTTL     time.Duration
	MembersAllTTL      time.Duration
	MemberByLoginTTL   time.Duration
	EventsAllTTL       time.Duration
	EventsPublishedTTL time.Duration
	EventByIDTTL       time.Duration
}

type AuthConfig struct {
	AdminToken string
}

type TwitchConfig struct {
	EventSubSecret string
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "tenf_admin"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", ""),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "tenf"),
		},
		Cache: CacheConfig{
			MembersActiveTTL:   getEnvDuration("CACHE_MEMBERS_ACTIVE_TTL", 5*time.Minute),
			MembersVipsTTL:     getEnvDuration("CACHE_MEMBERS_VIPS_TTL", 5*time.Minute),
			MembersAllTTL:      getEnvDuration("CACHE_MEMBERS_ALL_TTL", 10*time.Minute),
			MemberByLoginTTL:   getEnvDuration("CACHE_MEMBER_BY_LOGIN_TTL", 5*time.Minute),
			EventsAllTTL:       getEnvDuration("CACHE_EVENTS_ALL_TTL", 5*time.Minute),
			EventsPublishedTTL: getEnvDuration("CACHE_EVENTS_PUBLISHED_TTL", 2*time.Minute),
			EventByIDTTL:       getEnvDuration("CACHE_EVENT_BY_ID_TTL", 2*time.Minute),
		},
		Auth: AuthConfig{
			AdminToken: getEnv("AUTH_ADMIN_TOKEN", ""),
		},
		Twitch: TwitchConfig{
			EventSubSecret: getEnv("TWITCH_EVENTSUB_SECRET", ""),
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
