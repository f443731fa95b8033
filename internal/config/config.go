package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	CompanyID    string
	PartnerToken string
	UserToken    string

	APIBase  string
	Timezone string

	ServerPort      string
	UpstreamTimeout time.Duration

	RateLimitPerMinute int
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
}

func Load() *Config {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	return &Config{
		CompanyID:    os.Getenv("COMPANY_ID"),
		PartnerToken: os.Getenv("PARTNER_TOKEN"),
		UserToken:    os.Getenv("USER_TOKEN"),

		APIBase:  getEnv("ALTEGIO_API_BASE", "https://api.alteg.io/api/v1"),
		Timezone: getEnv("TIMEZONE", "Europe/Kyiv"),

		ServerPort:      getEnv("SERVER_PORT", "3000"),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            getEnvInt("REDIS_DB", 0),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// HasCompany reports whether the gateway knows which Altegio company to
// operate on. Tools must refuse to run without it.
func (c *Config) HasCompany() bool {
	return c.CompanyID != ""
}
