package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// Base URL of the loan API, no trailing slash.
	APIBaseURL string

	// Timeout for calls to the loan API and to presigned upload targets.
	APITimeout time.Duration

	// How long the "resume last dashboard" cookie is kept.
	ManageTokenTTLDays int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	// .env is a convenience for local runs; real deployments set env vars.
	_ = godotenv.Load()

	c := &Config{
		AppPort:            getenv("APP_PORT", "8081"),
		APIBaseURL:         strings.TrimRight(getenv("API_BASE_URL", "http://localhost:8080"), "/"),
		APITimeout:         30 * time.Second,
		ManageTokenTTLDays: 180,
	}
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.APITimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("MANAGE_TOKEN_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ManageTokenTTLDays = n
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API_BASE_URL %q", c.APIBaseURL)
	}
	return nil
}
