package server

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// Config holds the server settings read from the environment
type Config struct {
	Addr        string
	DatabaseURL string // empty disables the project store
	TokenKey    []byte // empty disables bearer auth
	RateLimit   rate.Limit
	RateBurst   int
}

// LoadConfig reads an optional .env file and then the environment
func LoadConfig() (Config, error) {
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	cfg := Config{
		Addr:        getenv("GOFRAME_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
		RateLimit:   5,
		RateBurst:   10,
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("RATE_LIMIT must be a positive number, got %q", v)
		}
		cfg.RateLimit = rate.Limit(f)
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("RATE_BURST must be a positive integer, got %q", v)
		}
		cfg.RateBurst = n
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
