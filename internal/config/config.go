package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const DefaultMaxAttachmentSize = 10 << 20 // 10 MiB

type Config struct {
	Addr     string
	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AccessSecret  string
	RefreshSecret string

	// Email suffixes that classify a registration as STUDENT.
	UniversityDomains []string

	AllowedAttachmentTypes []string
	MaxAttachmentSize      int64
	UploadDir              string

	KafkaBrokers []string
	KafkaTopic   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// Load reads .env if present, then the environment, falling back to
// development defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using environment")
	}

	return &Config{
		Addr:          getEnv("ADDR", ":8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(127.0.0.1:3306)/campushub?charset=utf8mb4&parseTime=True"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		AccessSecret:  getEnv("JWT_ACCESS_SECRET", "secret-key"),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", "refresh-key"),
		UniversityDomains: splitList(getEnv("UNIVERSITY_DOMAINS",
			"th-deg.de,stud.th-deg.de")),
		AllowedAttachmentTypes: splitList(getEnv("ALLOWED_ATTACHMENT_TYPES",
			"application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document")),
		MaxAttachmentSize: int64(getEnvInt("MAX_ATTACHMENT_SIZE", DefaultMaxAttachmentSize)),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "campushub.notifications"),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:          getEnv("SMTP_FROM", "NoReply <no-reply@example.com>"),
	}
}

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

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
