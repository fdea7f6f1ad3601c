package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads .env into the process environment. Missing file is fine;
// deployed environments inject real env vars.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
	}
	return fallback
}

// Commonly used settings, resolved at call time so tests can override env.

func JWTSecret() string { return Get("JWT_SECRET", "change-me") }

func JWTExpire() time.Duration { return GetDuration("JWT_EXPIRE", 7*24*time.Hour) }

// KYCTimeout bounds one verification pipeline run. Download and OCR are
// both unbounded-latency operations; a deadline hit surfaces as a stage
// failure, not a hang.
func KYCTimeout() time.Duration { return GetDuration("KYC_TIMEOUT", 45*time.Second) }

func UploadDir() string { return Get("UPLOAD_DIR", "uploads") }

func BaseURL() string { return Get("BASE_URL", "http://localhost:5000") }
