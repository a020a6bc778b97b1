package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string
	BaseURI     string // Public base URI of this service, used in OAuth redirects

	// GoHighLevel (LeadConnector) OAuth + API
	GHLClientID        string
	GHLClientSecret    string
	GHLRedirectURI     string
	GHLScope           string
	GHLAPIBase         string
	GHLMarketplaceBase string

	// SmartVault OAuth + API
	SmartVaultClientID     string
	SmartVaultClientSecret string
	SmartVaultRedirectURI  string
	SmartVaultAPIBase      string
	SmartVaultAccountID    string // Optional; resolved from the firm entity when empty

	// Sync engine
	SyncPageSize     int
	SyncPageDelay    time.Duration
	SyncTimezone     string // IANA zone for stored timestamps
	SyncSchedule     string // Cron spec for the combined contact+opportunity sync
	RefreshSchedule  string // Cron spec for upstream token refresh
	SchedulerEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-ghlsync"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-ghlsync"),
		BaseURI:     getEnv("BASE_URI", "http://localhost:8080"),

		GHLClientID:        getEnv("GHL_CLIENT_ID", ""),
		GHLClientSecret:    getEnv("GHL_CLIENT_SECRET", ""),
		GHLRedirectURI:     getEnv("GHL_REDIRECT_URI", ""),
		GHLScope:           getEnv("GHL_SCOPE", ""),
		GHLAPIBase:         getEnv("GHL_API_BASE", "https://services.leadconnectorhq.com"),
		GHLMarketplaceBase: getEnv("GHL_MARKETPLACE_BASE", "https://marketplace.leadconnectorhq.com"),

		SmartVaultClientID:     getEnv("SMARTVAULT_CLIENT_ID", ""),
		SmartVaultClientSecret: getEnv("SMARTVAULT_CLIENT_SECRET", ""),
		SmartVaultRedirectURI:  getEnv("SMARTVAULT_REDIRECT_URI", ""),
		SmartVaultAPIBase:      getEnv("SMARTVAULT_API_BASE", "https://rest.smartvault.com"),
		SmartVaultAccountID:    getEnv("SMARTVAULT_ACCOUNT_ID", ""),

		SyncPageSize:     getEnvInt("SYNC_PAGE_SIZE", 100),
		SyncPageDelay:    time.Duration(getEnvInt("SYNC_PAGE_DELAY_MS", 100)) * time.Millisecond,
		SyncTimezone:     getEnv("SYNC_TIMEZONE", "America/Phoenix"),
		SyncSchedule:     getEnv("SYNC_SCHEDULE", "0 */6 * * *"),
		RefreshSchedule:  getEnv("REFRESH_SCHEDULE", "@hourly"),
		SchedulerEnabled: getEnv("SCHEDULER_ENABLED", "true") == "true",
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
