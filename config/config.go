package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port          string
	DBPath        string
	AppEnv        string
	LogLevel      string
	ZonesPath     string
	CatalogSeed   string
	AllowedHosts  []string
	MaxFetchBytes int
	StewardHeader bool
}

// Dev reports whether the app runs with development logging.
func (c AppConfig) Dev() bool { return c.AppEnv != "production" }

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}
	return fromEnv()
}

func fromEnv() AppConfig {
	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	maxBytes, err := strconv.Atoi(get("CATALOG_MAX_BYTES", "1500000"))
	if err != nil || maxBytes <= 0 {
		maxBytes = 1500000
	}
	var hosts []string
	for _, h := range strings.Split(get("CATALOG_ALLOWED_HOSTS", ""), ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, strings.ToLower(h))
		}
	}
	return AppConfig{
		Port:          get("PORT", "8080"),
		DBPath:        get("DB_PATH", "conductor.db"),
		AppEnv:        get("APP_ENV", "development"),
		LogLevel:      get("LOG_LEVEL", "info"),
		ZonesPath:     get("ZONES_PATH", ""),
		CatalogSeed:   get("CATALOG_SEED", ""),
		AllowedHosts:  hosts,
		MaxFetchBytes: maxBytes,
		StewardHeader: get("ENABLE_STEWARD_HEADER", "false") == "true",
	}
}
