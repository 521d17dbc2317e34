package config

import (
	"errors"
	"log"
	"os"
	"strconv"
)

// DefaultUnitCostKWh is the fallback cost per kWh (COP) used by the
// consumption report to estimate extra cost above the historical average.
const DefaultUnitCostKWh = 868.0

const devSecretKey = "clave_por_defecto_segura"

type Config struct {
	Port        string
	DatabaseDSN string
	SecretKey   string
	Env         string
	UnitCostKWh float64
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
// The database DSN comes from DATABASE_URL, falling back to POSTGRES_URI.
func Load() (Config, error) {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_URL", os.Getenv("POSTGRES_URI"))
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.UnitCostKWh = ParseFloat("UNIT_COST_KWH", DefaultUnitCostKWh)
	cfg.SecretKey = getEnv("SECRET_KEY", devSecretKey)
	if cfg.SecretKey == devSecretKey {
		if cfg.Env == "production" {
			return cfg, errors.New("SECRET_KEY must be set explicitly in production")
		}
		log.Println("SECRET_KEY not set; using development default")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseFloat reads an env var as float64 with default.
func ParseFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid number for %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
