package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverFirestore = "firestore"
	DriverMySQL     = "mysql"
)

type Config struct {
	Port     string
	LogLevel string

	// Firebase / Firestore
	AppID           string
	CredentialsFile string
	ProjectID       string

	// Storage
	StoreDriver string
	DBDSN       string

	// Admin
	JWTSecret         string
	JWTTTL            time.Duration
	AdminEmail        string
	AdminPasswordHash string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Notificações
	FCMTopic     string
	KafkaBrokers []string
	KafkaTopic   string

	RateLimitRPS      float64
	RateLimitBurst    int
	CORSAllowedOrigin string

	// Proxies cujo X-Forwarded-For é aceito; vazio = nenhum
	TrustedProxies []string
}

// Load lê a configuração do ambiente (o .env já deve ter sido carregado pelo godotenv)
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AppID:           getEnv("APP_ID", "meuappsaude"),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json"),
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),

		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", DriverFirestore)),
		DBDSN:       getEnv("DB_DSN", ""),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getDuration("JWT_TTL", 24*time.Hour),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		FCMTopic:     getEnv("FCM_TOPIC", ""),
		KafkaBrokers: getStringSliceEnv("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "malaria.submissions"),

		RateLimitRPS:      getFloatEnv("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getIntEnv("RATE_LIMIT_BURST", 10),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "*"),

		TrustedProxies: getStringSliceEnv("TRUSTED_PROXIES", nil),
	}
}

// CollectionPath é o caminho da coleção no Firestore: artifacts/{APP_ID}/users
func (c *Config) CollectionPath() string {
	return fmt.Sprintf("artifacts/%s/users", c.AppID)
}

// NeedsFirebase diz se o processo precisa do arquivo de credenciais
func (c *Config) NeedsFirebase() bool {
	return c.StoreDriver == DriverFirestore || c.FCMTopic != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
