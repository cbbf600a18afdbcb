package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const devJWTSecret = "dev-only-room-booking-secret"

type DatabaseConfig struct {
	Driver          string // "mysql" or "sqlite"
	DSN             string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SeedSampleRooms bool
}

type Config struct {
	Port        string
	GinMode     string
	JWTSecret   []byte
	TokenTTL    time.Duration
	BcryptCost  int
	CorsOrigins []string

	// TrustedProxies lists the reverse proxy addresses (IP or CIDR) whose
	// X-Forwarded-For is believed. Empty means the peer address is the client.
	TrustedProxies []string

	LoginRatePerMinute int
	LoginRateBurst     int

	Database DatabaseConfig
}

// Load builds the runtime configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port:               envOrDefault("PORT", "8080"),
		GinMode:            envOrDefault("GIN_MODE", gin.DebugMode),
		TokenTTL:           envDuration("TOKEN_TTL", 24*time.Hour),
		BcryptCost:         envInt("BCRYPT_COST", bcrypt.DefaultCost),
		CorsOrigins:        parseCorsOrigins(os.Getenv("CORS_ORIGINS")),
		LoginRatePerMinute: envInt("LOGIN_RATE_PER_MINUTE", 30),
		LoginRateBurst:     envInt("LOGIN_RATE_BURST", 10),
	}

	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return Config{}, fmt.Errorf("unknown GIN_MODE %q", cfg.GinMode)
	}

	proxies, err := parseTrustedProxies(os.Getenv("TRUSTED_PROXIES"))
	if err != nil {
		return Config{}, err
	}
	cfg.TrustedProxies = proxies

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		if cfg.GinMode == gin.ReleaseMode {
			return Config{}, errMissingSecret
		}
		log.Println("⚠️  JWT_SECRET not set; using the development secret")
		secret = devJWTSecret
	}
	cfg.JWTSecret = []byte(secret)

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		log.Printf("⚠️  BCRYPT_COST %d out of range; using %d", cfg.BcryptCost, bcrypt.DefaultCost)
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	db, err := loadDatabaseConfig()
	if err != nil {
		return Config{}, err
	}
	cfg.Database = db
	return cfg, nil
}

func loadDatabaseConfig() (DatabaseConfig, error) {
	db := DatabaseConfig{
		Driver:          strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
		MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		LogLevel:        envOrDefault("DB_LOG_LEVEL", "warn"),
		SeedSampleRooms: envBool("SEED_SAMPLE_ROOMS", false),
	}

	switch db.Driver {
	case "sqlite":
		db.DSN = envOrDefault("SQLITE_PATH", "room_booking.db")
	case "mysql":
		dsn, name, err := resolveMySQLDSN()
		if err != nil {
			return DatabaseConfig{}, err
		}
		db.DSN, db.Name = dsn, name
	default:
		return DatabaseConfig{}, errUnknownDriver(db.Driver)
	}
	return db, nil
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func parseTrustedProxies(raw string) ([]string, error) {
	var proxies []string
	for _, part := range strings.Split(raw, ",") {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
			}
		}
		proxies = append(proxies, proxy)
	}
	return proxies, nil
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("⚠️  %s=%q is not an integer; using %d", key, raw, def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("⚠️  %s=%q is not a positive duration; using %s", key, raw, def)
		return def
	}
	return d
}
