package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("configuration validation failed")

const (
	envEsAddr = "ELASTICSEARCH_SERVICE_HOST"
	envEsPort = "ELASTICSEARCH_SERVICE_PORT"
)

type Config struct {
	LogLevel string

	// Elasticsearch export
	ESAddresses []string
	ESIndex     string

	// Sealed export, both at least 32 chars
	SealKey string
	SignKey string

	// Summary & income statement
	WithdrawalRate float64
	TaxCategories  []string
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		LogLevel: getEnv("BEANBOOK_LOG_LEVEL", "info"),

		ESAddresses: getEnvList("BEANBOOK_ES_ADDRESSES", []string{defaultESAddress()}),
		ESIndex:     getEnv("BEANBOOK_ES_INDEX", "beanbook"),

		SealKey: getEnv("BEANBOOK_SEAL_KEY", ""),
		SignKey: getEnv("BEANBOOK_SIGN_KEY", ""),

		WithdrawalRate: getEnvFloat("BEANBOOK_WITHDRAWAL_RATE", 0.04),
		TaxCategories:  getEnvList("BEANBOOK_TAX_CATEGORIES", []string{"Taxes"}),
	}
}

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	for _, addr := range c.ESAddresses {
		u, err := url.Parse(addr)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid elasticsearch address '%s': %v", addr, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			problems = append(problems, fmt.Sprintf("invalid elasticsearch address '%s': scheme must be http or https", addr))
		}
	}
	if c.ESIndex == "" {
		problems = append(problems, "elasticsearch index cannot be empty")
	}

	if (c.SealKey == "") != (c.SignKey == "") {
		problems = append(problems, "seal and sign keys must be set together")
	}
	if c.SealKey != "" && len(c.SealKey) < 32 {
		problems = append(problems, "seal key must be at least 32 chars")
	}
	if c.SignKey != "" && len(c.SignKey) < 32 {
		problems = append(problems, "sign key must be at least 32 chars")
	}

	if c.WithdrawalRate <= 0 || c.WithdrawalRate > 1 {
		problems = append(problems, fmt.Sprintf("invalid withdrawal rate %v: must be in (0, 1]", c.WithdrawalRate))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n- %s", ErrInvalid, strings.Join(problems, "\n- "))
	}
	return nil
}

// CanSeal reports whether sealed output is configured.
func (c *Config) CanSeal() bool {
	return c.SealKey != "" && c.SignKey != ""
}

func defaultESAddress() string {
	address := getEnv(envEsAddr, "localhost")
	port := getEnv(envEsPort, "9200")
	return fmt.Sprintf("http://%s:%s", address, port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
