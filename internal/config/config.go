package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Engine   EngineConfig
	Matching MatchingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type EngineConfig struct {
	// Navigation: "all" walks every question, "unanswered" walks only the
	// ones the store does not hold yet.
	Navigation string
	// Progress: "effective" counts local unsynced answers, "persisted"
	// counts only stored ones.
	Progress          string
	CommitTopic       string
	SessionTTLMinutes int
}

type MatchingConfig struct {
	TeamSize  int
	ExportDir string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "TopicMatch"),
		},
		Engine: EngineConfig{
			Navigation:        getEnv("ENGINE_NAVIGATION", "all"),
			Progress:          getEnv("ENGINE_PROGRESS", "effective"),
			CommitTopic:       getEnv("ANSWER_COMMIT_TOPIC_NAME", "ANSWER_COMMIT"),
			SessionTTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		Matching: MatchingConfig{
			TeamSize:  getEnvAsInt("MATCHING_TEAM_SIZE", 4),
			ExportDir: getEnv("MATCHING_EXPORT_DIR", "exports"),
		},
	}
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
