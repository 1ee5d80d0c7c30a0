package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	UploadDir         string
	AllowedExtensions []string
	PageSize          int

	ReportCodePrefix string

	JWTSecret     string
	SessionSecret string

	AdminUsername string
	AdminPassword string
	AdminEmail    string

	Debug         bool
	LogFile       string
	LogMaxSize    int
	LogMaxAge     int
	LogMaxBackups int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "acr_platform"),

		UploadDir:         getEnv("UPLOAD_DIR", "static/uploads"),
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", "png,jpg,jpeg,gif,pdf,doc,docx,mp4")),
		PageSize:          getEnvInt("REPORTS_PER_PAGE", 10),

		ReportCodePrefix: getEnv("REPORT_CODE_PREFIX", "ACR"),

		JWTSecret:     getEnv("JWT_SECRET", "change-me"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-too"),

		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),

		Debug:         getEnv("DEBUG", "false") == "true",
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSize:    getEnvInt("LOG_MAX_SIZE", 50),
		LogMaxAge:     getEnvInt("LOG_MAX_AGE", 28),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
