package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret []byte

	KafkaBrokers []string
	KafkaTopic   string

	AdminEmail    string
	AdminPassword string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found, using system environment variables")
	}

	return Config{
		ServerPort: envIntDefault("SERVER_PORT", 8080),
		LogLevel:   envDefault("LOG_LEVEL", "info"),

		DBHost:     envDefault("DB_HOST", "localhost"),
		DBPort:     envDefault("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		KafkaBrokers: csv(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   envDefault("KAFKA_TOPIC", "order_events"),

		AdminEmail:    envDefault("ADMIN_EMAIL", "admin@messmate.local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

func csv(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
