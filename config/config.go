package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Env               string
	AppName           string
	Port              string
	DBURL             string
	CookieName        string
	SessionTTLMinutes int
	BcryptCost        int
	DebugAdmin        bool
}

func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		AppName:           getEnv("APP_NAME", "My App"),
		Port:              getEnv("PORT", "8080"),
		DBURL:             mustGetEnv("DB_URL"),
		CookieName:        getEnv("COOKIE_NAME", "session_id"),
		SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 7*24*60),
		BcryptCost:        getEnvAsInt("BCRYPT_COST", 12),
		DebugAdmin:        getEnvAsBool("DEBUG_ADMIN", false),
	}
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}
