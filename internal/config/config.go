package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	InsightBackendPostgres  = "postgres"
	InsightBackendFirestore = "firestore"

	AIProviderVertex    = "vertex"
	AIProviderAnthropic = "anthropic"
	AIProviderNone      = "none"
)

type Config struct {
	Port     string
	LogLevel string

	DatabaseURL    string
	InsightBackend string

	ProjectID      string
	Region         string
	AIProvider     string
	VertexModel    string
	AnthropicModel string
	AnthropicKey   string

	AMQPURL       string
	AMQPExchange  string
	AMQPMailQueue string

	SessionSecret     string
	SessionSecretName string
	SessionTTL        time.Duration
	CookieSecure      bool
	CronKey           string

	Currency     string
	DateFormat   string
	NumberFormat string

	ForecastMonths int
}

func New() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: os.Getenv("LOGLEVEL"),

		DatabaseURL:    os.Getenv("DATABASEURL"),
		InsightBackend: getEnv("INSIGHTBACKEND", InsightBackendPostgres),

		ProjectID:      os.Getenv("PROJECTID"),
		Region:         getEnv("REGION", "us-central1"),
		AIProvider:     getEnv("AIPROVIDER", AIProviderVertex),
		VertexModel:    getEnv("VERTEXMODEL", "gemini-2.0-flash"),
		AnthropicModel: getEnv("ANTHROPICMODEL", "claude-3-5-haiku-latest"),
		AnthropicKey:   os.Getenv("ANTHROPICAPIKEY"),

		AMQPURL:       os.Getenv("AMQPURL"),
		AMQPExchange:  getEnv("AMQPEXCHANGE", "notifications"),
		AMQPMailQueue: getEnv("AMQPMAILQUEUE", "email"),

		SessionSecret:     os.Getenv("SESSIONSECRET"),
		SessionSecretName: os.Getenv("SESSIONSECRETNAME"),
		SessionTTL:        getEnvDuration("SESSIONTTL", 7*24*time.Hour),
		CookieSecure:      getEnvBool("COOKIESECURE", true),
		CronKey:           os.Getenv("CRONKEY"),

		Currency:     getEnv("CURRENCY", "BRL"),
		DateFormat:   getEnv("DATEFORMAT", "DD/MM/YYYY"),
		NumberFormat: getEnv("NUMBERFORMAT", "pt-BR"),

		ForecastMonths: getEnvInt("FORECASTMONTHS", 6),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.DatabaseURL == "" {
		problems = append(problems, "DATABASEURL is required")
	}
	switch c.InsightBackend {
	case InsightBackendPostgres:
	case InsightBackendFirestore:
		if c.ProjectID == "" {
			problems = append(problems, "PROJECTID is required for the firestore insight backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("INSIGHTBACKEND %q is not supported", c.InsightBackend))
	}
	switch c.AIProvider {
	case AIProviderNone:
	case AIProviderVertex:
		if c.ProjectID == "" {
			problems = append(problems, "PROJECTID is required for the vertex provider")
		}
	case AIProviderAnthropic:
		if c.AnthropicKey == "" {
			problems = append(problems, "ANTHROPICAPIKEY is required for the anthropic provider")
		}
	default:
		problems = append(problems, fmt.Sprintf("AIPROVIDER %q is not supported", c.AIProvider))
	}
	if c.SessionSecret == "" && c.SessionSecretName == "" {
		problems = append(problems, "one of SESSIONSECRET or SESSIONSECRETNAME is required")
	}
	if c.SessionSecretName != "" && c.ProjectID == "" {
		problems = append(problems, "PROJECTID is required to read SESSIONSECRETNAME")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "SESSIONTTL must be positive")
	}
	if c.ForecastMonths < 1 || c.ForecastMonths > 36 {
		problems = append(problems, "FORECASTMONTHS must be between 1 and 36")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// ---- Helpers ----

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
