package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Runner   RunnerConfig
	Ai       AIConfig
	Intake   IntakeConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
}

type DatabaseConfig struct {
	Connection string // empty disables persistence
	Verbose    bool
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AuthConfig struct {
	JWTSecret string // empty disables authentication
}

type RunnerConfig struct {
	Provider   string // "native", "ollama", "huggingface" or "echo"
	BaseURL    string
	Timeout    time.Duration
	SessionTTL time.Duration
}

type AIConfig struct {
	LLMModel       string
	OllamaBaseURL  string
	HuggingFaceKey string
	ReplyTokens    int
}

type IntakeConfig struct {
	SessionStore       string // "memory" or "redis"
	SessionTTL         time.Duration
	LockLease          time.Duration // redis store only
	SchemaPath         string
	QuestionsPath      string
	ReflectiveMinChars int
	Title              string
	CompletionTopic    string
	SummaryRecipient   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "logs/audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Verbose:    getEnvAsBool("DB_VERBOSE", false),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "GreenWatch"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Runner: RunnerConfig{
			Provider:   getEnv("RUNNER_PROVIDER", "echo"),
			BaseURL:    getEnv("RUNNER_BASE_URL", "http://localhost:8080"),
			Timeout:    getEnvAsDuration("RUNNER_TIMEOUT", 30*time.Second),
			SessionTTL: getEnvAsDuration("RUNNER_SESSION_TTL", time.Hour),
		},
		Ai: AIConfig{
			LLMModel:       getEnv("LLM_MODEL", "llama3"),
			OllamaBaseURL:  getEnv("LLM_BASE_URL", "http://localhost:11434"),
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
			ReplyTokens:    getEnvAsInt("LLM_REPLY_TOKENS", 200),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1),
		},
		Intake: IntakeConfig{
			SessionStore:       getEnv("SESSION_STORE", "memory"),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", time.Hour),
			LockLease:          getEnvAsDuration("SESSION_LOCK_LEASE", 45*time.Second),
			SchemaPath:         getEnv("INTAKE_SCHEMA_PATH", ""),
			QuestionsPath:      getEnv("INTAKE_QUESTIONS_PATH", ""),
			ReflectiveMinChars: getEnvAsInt("INTAKE_REFLECTIVE_MIN_CHARS", 100),
			Title:              getEnv("INTAKE_TITLE", "Engineering Watch Log"),
			CompletionTopic:    getEnv("INTAKE_COMPLETION_TOPIC", "INTAKE_LOG_COMPLETED"),
			SummaryRecipient:   getEnv("INTAKE_SUMMARY_RECIPIENT", ""),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
