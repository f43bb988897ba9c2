package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"church-app-go/pkg/logger"
)

// Used when KAKAO_CLIENT_ID is not provided so local builds can still render
// the login redirect.
const defaultKakaoClientID = "church-app-dev-client"

type Config struct {
	HTTPPort       string
	Env            string
	BaseURL        string
	CORSOrigins    []string
	Timezone       string
	MetricsEnabled bool
	DB             DBConfig
	Supabase       SupabaseConfig
	Kakao          KakaoConfig
	Session        SessionConfig
	Verse          VerseConfig
	Redis          RedisConfig
	Scheduler      SchedulerConfig
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

type SupabaseConfig struct {
	URL            string
	PublishableKey string
	ServiceKey     string
	StorageBucket  string
	AuthTimeout    time.Duration
	SkipAuth       bool
	MockUserID     string
	MockUserEmail  string
	MockUserName   string
	MockUserAvatar string
}

type KakaoConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	ProfileURL   string
	Timeout      time.Duration
}

type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

type VerseConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	GeminiURL    string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

type RedisConfig struct {
	URL string
}

type SchedulerConfig struct {
	Enabled           bool
	InviteCleanupCron string
	VersePrewarmCron  string
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	return Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		BaseURL:        strings.TrimRight(getEnv("BASE_URL", "http://localhost:5173"), "/"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Seoul"),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "church_app"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Supabase: SupabaseConfig{
			URL:            getEnv("SUPABASE_URL", ""),
			PublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", getEnv("NEXT_PUBLIC_SUPABASE_ANON_KEY", "")),
			ServiceKey:     getEnv("SUPABASE_SERVICE_KEY", ""),
			StorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "photos"),
			AuthTimeout:    getEnvDuration("SUPABASE_AUTH_TIMEOUT", 5*time.Second),
			SkipAuth:       getEnvBool("AUTH_SKIP", false),
			MockUserID:     getEnv("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			MockUserEmail:  getEnv("AUTH_MOCK_USER_EMAIL", ""),
			MockUserName:   getEnv("AUTH_MOCK_USER_NAME", ""),
			MockUserAvatar: getEnv("AUTH_MOCK_USER_AVATAR_URL", ""),
		},
		Kakao: KakaoConfig{
			ClientID:     getEnv("KAKAO_CLIENT_ID", defaultKakaoClientID),
			ClientSecret: getEnv("KAKAO_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("KAKAO_REDIRECT_URL", "http://localhost:8080/api/auth/kakao/callback"),
			AuthURL:      getEnv("KAKAO_AUTH_URL", "https://kauth.kakao.com/oauth/authorize"),
			TokenURL:     getEnv("KAKAO_TOKEN_URL", "https://kauth.kakao.com/oauth/token"),
			ProfileURL:   getEnv("KAKAO_PROFILE_URL", "https://kapi.kakao.com/v2/user/me"),
			Timeout:      getEnvDuration("KAKAO_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			TTL:    getEnvDuration("SESSION_TTL", 7*24*time.Hour),
			Issuer: getEnv("SESSION_ISSUER", "church-app"),
		},
		Verse: VerseConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			GeminiURL:    getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com/v1beta"),
			Timeout:      getEnvDuration("GEMINI_TIMEOUT", 15*time.Second),
			CacheTTL:     getEnvDuration("VERSE_CACHE_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Scheduler: SchedulerConfig{
			Enabled:           getEnvBool("SCHEDULER_ENABLED", true),
			InviteCleanupCron: getEnv("INVITE_CLEANUP_CRON", "0 3 * * *"),
			VersePrewarmCron:  getEnv("VERSE_PREWARM_CRON", "5 0 * * *"),
		},
	}, nil
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Presence reports which optional integrations are configured. Values are
// never exposed, only whether they are set.
func (c Config) Presence() map[string]bool {
	return map[string]bool{
		"SUPABASE_URL":             c.Supabase.URL != "",
		"SUPABASE_PUBLISHABLE_KEY": c.Supabase.PublishableKey != "",
		"SUPABASE_SERVICE_KEY":     c.Supabase.ServiceKey != "",
		"KAKAO_CLIENT_ID":          c.Kakao.ClientID != "" && c.Kakao.ClientID != defaultKakaoClientID,
		"KAKAO_CLIENT_SECRET":      c.Kakao.ClientSecret != "",
		"SESSION_SECRET":           c.Session.Secret != "",
		"GEMINI_API_KEY":           c.Verse.GeminiAPIKey != "",
		"REDIS_URL":                c.Redis.URL != "",
		"DB_DSN":                   c.DB.DSN != "",
	}
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

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	if len(result) == 0 {
		return fallback
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
