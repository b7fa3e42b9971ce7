package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                      string
	Origin                    string
	Environment               string
	JWTSecret                 string
	JWTRefreshSecret          string
	Database                  DatabaseConfig
	Redis                     RedisConfig
	Clinic                    ClinicConfig
	JWTExpirationMinutes      int
	JWTRefreshExpirationHours int
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RedisConfig holds the optional contact-prefill cache settings. An
// empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ClinicConfig holds the booking policy knobs: which weekday the
// clinic is closed, how many dates the booking window offers, and the
// listing page size.
type ClinicConfig struct {
	ClosedWeekday     time.Weekday
	BookingWindowSize int
	PageSize          int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clinic"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	jwtRefreshExpHours, err := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168")) // 7 days
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_HOURS: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTLMinutes, err := strconv.Atoi(getEnv("REDIS_PREFILL_TTL_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PREFILL_TTL_MINUTES: %w", err)
	}

	closedWeekday, err := parseWeekday(getEnv("CLINIC_CLOSED_WEEKDAY", "Sunday"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_CLOSED_WEEKDAY: %w", err)
	}

	windowSize, err := strconv.Atoi(getEnv("CLINIC_BOOKING_WINDOW_SIZE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_BOOKING_WINDOW_SIZE: %w", err)
	}
	if windowSize < 1 {
		// an empty window would make every booking date invalid
		return nil, fmt.Errorf("invalid CLINIC_BOOKING_WINDOW_SIZE: must be at least 1, got %d", windowSize)
	}

	pageSize, err := strconv.Atoi(getEnv("CLINIC_PAGE_SIZE", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_PAGE_SIZE: %w", err)
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("invalid CLINIC_PAGE_SIZE: must be at least 1, got %d", pageSize)
	}

	// Return complete configuration
	return &Config{
		Port:             getEnv("PORT", "3001"),
		Origin:           getEnv("ORIGIN", "http://localhost:3000"),
		Environment:      getEnv("APP_ENV", "development"),
		JWTSecret:        getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		Database:         dbConfig,
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      time.Duration(redisTTLMinutes) * time.Minute,
		},
		Clinic: ClinicConfig{
			ClosedWeekday:     closedWeekday,
			BookingWindowSize: windowSize,
			PageSize:          pageSize,
		},
		JWTExpirationMinutes:      jwtExpMinutes,
		JWTRefreshExpirationHours: jwtRefreshExpHours,
	}, nil
}

// parseWeekday maps an English weekday name to time.Weekday.
func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
