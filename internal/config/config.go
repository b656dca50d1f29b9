package config

import (
	"log"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port               string
	AllowedOrigins     []string
	FrontendURL        string
	JWTSecret          string
	GameTokenTTL       time.Duration
	RedisURL           string
	RedisPassword      string
	SearchCacheTTL     time.Duration
	SearchCacheSize    int
	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration
	DefaultDifficulty  string
	BoardRows          int
	BoardColumns       int
	WinLength          int
	Evaluator          string
	LogLevel           string
}

var defaults = map[string]any{
	"PORT":                     "8080",
	"FRONTEND_URL":             "http://localhost:5173",
	"ALLOWED_ORIGINS":          "",
	"JWT_SECRET":               "your-secret-key-change-this-in-production",
	"GAME_TOKEN_TTL_MINUTES":   120,
	"REDIS_URL":                "",
	"REDIS_PASSWORD":           "",
	"SEARCH_CACHE_TTL_MINUTES": 60,
	"SEARCH_CACHE_SIZE":        4096,
	"SESSION_IDLE_MINUTES":     30,
	"CLEANUP_INTERVAL_MINUTES": 5,
	"DEFAULT_DIFFICULTY":       "medium",
	"BOARD_ROWS":               6,
	"BOARD_COLUMNS":            7,
	"WIN_LENGTH":               4,
	"EVALUATOR":                "winloss",
	"LOG_LEVEL":                "info",
}

var AppConfig *Config

// LoadConfig reads the environment (a .env file should already be loaded by
// the caller). Unparsable numbers fall back to their defaults.
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	frontendURL := v.GetString("FRONTEND_URL")

	// Frontend + localhost + CSV values
	var allowedOrigins []string
	candidates := append([]string{frontendURL, "http://localhost:5173"}, strings.Split(v.GetString("ALLOWED_ORIGINS"), ",")...)
	for _, origin := range candidates {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" && !slices.Contains(allowedOrigins, trimmed) {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	AppConfig = &Config{
		Port:               v.GetString("PORT"),
		AllowedOrigins:     allowedOrigins,
		FrontendURL:        frontendURL,
		JWTSecret:          v.GetString("JWT_SECRET"),
		GameTokenTTL:       minutes(v, "GAME_TOKEN_TTL_MINUTES"),
		RedisURL:           v.GetString("REDIS_URL"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		SearchCacheTTL:     minutes(v, "SEARCH_CACHE_TTL_MINUTES"),
		SearchCacheSize:    positiveInt(v, "SEARCH_CACHE_SIZE"),
		SessionIdleTimeout: minutes(v, "SESSION_IDLE_MINUTES"),
		CleanupInterval:    minutes(v, "CLEANUP_INTERVAL_MINUTES"),
		DefaultDifficulty:  strings.ToLower(v.GetString("DEFAULT_DIFFICULTY")),
		BoardRows:          positiveInt(v, "BOARD_ROWS"),
		BoardColumns:       positiveInt(v, "BOARD_COLUMNS"),
		WinLength:          positiveInt(v, "WIN_LENGTH"),
		Evaluator:          strings.ToLower(v.GetString("EVALUATOR")),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}

	return AppConfig
}

// positiveInt reads key as an int, falling back to the default when the
// value does not parse or is not positive.
func positiveInt(v *viper.Viper, key string) int {
	def := defaults[key].(int)
	value := v.GetInt(key)
	if value < 1 {
		log.Printf("Invalid integer value for %s: %q, using default: %d", key, v.GetString(key), def)
		return def
	}
	return value
}

func minutes(v *viper.Viper, key string) time.Duration {
	return time.Duration(positiveInt(v, key)) * time.Minute
}
