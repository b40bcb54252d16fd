package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      string
	DBDriver      string
	DatabaseURL   string
	EnableDBCheck bool
	SQLitePath    string

	ReferenceCurrency string
	SyncMaxRangeDays  int
	SyncRequireAuth   bool
	JWTSecret         string

	NBPBaseURL string
	NBPTables  []string
	NBPTimeout time.Duration

	RateLimit          string
	CORSAllowedOrigins []string
	MetricsEnabled     bool

	KafkaBrokers   []string
	KafkaSyncTopic string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("SQLITE_PATH", "currencies.db")
	v.SetDefault("REFERENCE_CURRENCY", "PLN")
	v.SetDefault("SYNC_MAX_RANGE_DAYS", 31)
	v.SetDefault("SYNC_REQUIRE_AUTH", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("NBP_BASE_URL", "https://api.nbp.pl/api")
	v.SetDefault("NBP_TABLES", "A,B")
	v.SetDefault("NBP_TIMEOUT", "15s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_SYNC_TOPIC", "currency-sync-events")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		LogLevel:          strings.ToLower(v.GetString("LOG_LEVEL")),
		DBDriver:          strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		SQLitePath:        v.GetString("SQLITE_PATH"),
		ReferenceCurrency: strings.ToUpper(strings.TrimSpace(v.GetString("REFERENCE_CURRENCY"))),
		SyncMaxRangeDays:  v.GetInt("SYNC_MAX_RANGE_DAYS"),
		SyncRequireAuth:   v.GetBool("SYNC_REQUIRE_AUTH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		NBPBaseURL:        v.GetString("NBP_BASE_URL"),
		NBPTables:         splitList(v.GetString("NBP_TABLES"), strings.ToUpper),
		RateLimit:         v.GetString("RATE_LIMIT"),
		MetricsEnabled:    v.GetBool("METRICS_ENABLED"),
		KafkaBrokers:      splitList(v.GetString("KAFKA_BROKERS"), nil),
		KafkaSyncTopic:    v.GetString("KAFKA_SYNC_TOPIC"),
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"), nil)

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			cfg.SQLitePath = "currencies.db"
		}
	default:
		log.Printf("Warning: Invalid value for DB_DRIVER ('%s'). Defaulting to %s.\n", cfg.DBDriver, DriverPostgres)
		cfg.DBDriver = DriverPostgres
	}

	if len(cfg.ReferenceCurrency) != 3 {
		log.Printf("Warning: Invalid value for REFERENCE_CURRENCY ('%s'). Defaulting to PLN.\n", cfg.ReferenceCurrency)
		cfg.ReferenceCurrency = "PLN"
	}

	if cfg.SyncMaxRangeDays <= 0 {
		log.Printf("Warning: Invalid value for SYNC_MAX_RANGE_DAYS (%d). Defaulting to 31.\n", cfg.SyncMaxRangeDays)
		cfg.SyncMaxRangeDays = 31
	}

	if len(cfg.NBPTables) == 0 {
		cfg.NBPTables = []string{"A", "B"}
	}

	timeoutStr := v.GetString("NBP_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
		log.Printf("Warning: Invalid value for NBP_TIMEOUT ('%s'). Defaulting to %s.\n", timeoutStr, timeout.String())
	}
	cfg.NBPTimeout = timeout

	if cfg.SyncRequireAuth && cfg.JWTSecret == "" {
		log.Println("Warning: SYNC_REQUIRE_AUTH is set but JWT_SECRET is empty. Every sync request will be rejected.")
	}

	return cfg
}

func splitList(raw string, transform func(string) string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if transform != nil {
			part = transform(part)
		}
		out = append(out, part)
	}
	return out
}
