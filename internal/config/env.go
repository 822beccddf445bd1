package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads a .env file into the process environment when one exists.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// FromEnv loads balance configuration from environment variables
// Falls back to defaults if variables are not set
func FromEnv() Balance {
	cfg := Default()

	// Support preset modes
	if p, ok := Preset(os.Getenv("DIFFICULTY")); ok {
		cfg = p
	}

	if val, ok := getEnvInt("STARTING_CASH"); ok && val >= 0 {
		cfg.StartingCash = val
	}
	if val, ok := getEnvInt("STARTING_REPUTATION"); ok && val >= 1 && val <= 5 {
		cfg.StartingReputation = val
	}
	if val, ok := getEnvInt("STARTING_HOUR"); ok && val >= 0 && val <= 23 {
		cfg.StartingHour = val
	}
	if val, ok := getEnvInt("FIRST_ORDER_ID"); ok && val > 0 {
		cfg.FirstOrderID = val
	}
	if val, ok := getEnvInt("INITIAL_ORDERS"); ok && val >= 0 {
		cfg.InitialOrders = val
	}
	if val, ok := getEnvInt("DIRECT_SALE_PERCENT"); ok && val > 0 && val <= 100 {
		cfg.DirectSalePercent = val
	}
	if val, ok := getEnvInt("MINUTES_PER_STEP"); ok && val > 0 {
		cfg.MinutesPerStep = val
	}

	return cfg
}

// ServerFromEnv overlays CARDEMPIRE_* variables on s.
func ServerFromEnv(s Server) Server {
	s.Addr = getEnvOrDefault("CARDEMPIRE_ADDR", s.Addr)
	s.StoreDriver = getEnvOrDefault("CARDEMPIRE_STORE", s.StoreDriver)
	s.DataDir = getEnvOrDefault("CARDEMPIRE_DATA_DIR", s.DataDir)
	s.SQLitePath = getEnvOrDefault("CARDEMPIRE_SQLITE_PATH", s.SQLitePath)
	s.PostgresDSN = getEnvOrDefault("CARDEMPIRE_POSTGRES_DSN", s.PostgresDSN)
	s.RedisAddr = getEnvOrDefault("CARDEMPIRE_REDIS_ADDR", s.RedisAddr)
	s.RedisPassword = getEnvOrDefault("CARDEMPIRE_REDIS_PASSWORD", s.RedisPassword)
	s.SaveSlot = getEnvOrDefault("CARDEMPIRE_SAVE_SLOT", s.SaveSlot)
	if val, ok := getEnvInt("CARDEMPIRE_REDIS_DB"); ok && val >= 0 {
		s.RedisDB = val
	}
	if val, ok := getEnvInt("CARDEMPIRE_CACHE_SIZE"); ok && val >= 0 {
		s.CacheSize = val
	}
	if val, ok := os.LookupEnv("CARDEMPIRE_REALTIME"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			s.Realtime = b
		}
	}
	if val, ok := os.LookupEnv("CARDEMPIRE_AUTOSAVE"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			s.Autosave = b
		}
	}
	if val := os.Getenv("CARDEMPIRE_TICK_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			s.TickInterval = d
		}
	}
	return s
}

func getEnvInt(key string) (int, bool) {
	val := os.Getenv(key)
	if val == "" {
		return 0, false
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return num, true
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
