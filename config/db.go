package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"room-booking/models"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminPassword = "password123"
)

var errMissingSecret = errors.New("JWT_SECRET must be set when GIN_MODE=release")

func errUnknownDriver(driver string) error {
	return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", driver)
}

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		parsed, err := mysqldriver.ParseDSN(raw)
		if err != nil {
			return "", "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		if !parsed.ParseTime {
			return "", "", errors.New("mysql dsn must set parseTime=true")
		}
		return raw, parsed.DBName, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "room_booking")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}

func gormLogLevel(raw string) logger.LogLevel {
	switch strings.ToLower(raw) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// OpenDatabase opens the configured dialect and sizes the connection pool.
// Requests beyond MaxOpenConns wait inside database/sql for a free connection.
func OpenDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	default:
		return nil, errUnknownDriver(cfg.Driver)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("cannot get raw sql.DB: %w", err)
	}
	maxOpen, lifetime := cfg.MaxOpenConns, cfg.ConnMaxLifetime
	if cfg.Driver == "sqlite" {
		// one writer at a time; a single connection also keeps :memory: databases alive
		maxOpen = 1
		lifetime = 0
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(lifetime)

	return db, nil
}

// Migrate creates or updates the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.BookingSetting{},
	)
}

// ConnectDatabase opens, migrates and seeds the database.
func ConnectDatabase(cfg Config) (*gorm.DB, error) {
	db, err := OpenDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := SeedDatabase(db, cfg.BcryptCost, cfg.Database.SeedSampleRooms); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return db, nil
}

// SeedDatabase ensures the default admin and both policy settings exist.
// It never overwrites rows that are already present.
func SeedDatabase(db *gorm.DB, bcryptCost int, sampleRooms bool) error {
	// ---------------- Admin ----------------
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		admin := models.User{
			Username:       defaultAdminUsername,
			Email:          defaultAdminEmail,
			PasswordDigest: string(hash),
			Role:           models.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("warning: failed to create default admin: %v", err)
		} else {
			log.Println("Default admin seeded")
		}
	}

	// ---------------- Booking settings ----------------
	defaults := []models.BookingSetting{
		{SettingKey: models.SettingMinDuration, SettingValue: models.DefaultMinDuration, Description: models.MinDurationDescription},
		{SettingKey: models.SettingMaxDuration, SettingValue: models.DefaultMaxDuration, Description: models.MaxDurationDescription},
	}
	for _, setting := range defaults {
		var existing models.BookingSetting
		err := db.Where("setting_key = ?", setting.SettingKey).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&setting).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", setting.SettingKey, err)
		}
	}

	// ---------------- Rooms ----------------
	if sampleRooms {
		var roomCount int64
		if err := db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
			return fmt.Errorf("count rooms: %w", err)
		}
		if roomCount == 0 {
			rooms := []models.Room{
				{RoomNumber: "101", RoomName: "Small Meeting Room", Capacity: 4},
				{RoomNumber: "102", RoomName: "Medium Meeting Room", Capacity: 8},
				{RoomNumber: "201", RoomName: "Conference Room", Capacity: 20},
			}
			if err := db.Create(&rooms).Error; err != nil {
				log.Printf("warning: failed to seed sample rooms: %v", err)
			} else {
				log.Println("Sample rooms seeded")
			}
		}
	}

	return nil
}
