package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Institutional policy constants. The role and moderation packages
	// receive these at startup rather than reading them directly.
	EmailDomain  string // e.g. "@kongu.edu"
	ProgramYears int    // assumed course length for alumni detection
	AdminEmail   string // literal account exempt from email-pattern checks
	AdminName    string
	AdminSeedPwd string

	FeedCacheTTL   time.Duration
	AlumniCacheTTL time.Duration

	// Optional JSON file overriding the built-in banned keyword tables.
	ModerationKeywordsFile string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:       getEnv("API_PORT", "8080"),
		JWTKey:        []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:        time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "user"),
		DBPassword:    getEnv("DB_PASSWORD", "password"),
		DBName:        getEnv("DB_NAME", "campus_connect_db"),
		DBSslMode:     getEnv("DB_SSLMODE", "disable"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		EmailDomain:  getEnv("EMAIL_DOMAIN", "@kongu.edu"),
		ProgramYears: getEnvAsInt("PROGRAM_YEARS", 4),
		AdminEmail:   getEnv("ADMIN_EMAIL", "admin@kongu.edu"),
		AdminName:    getEnv("ADMIN_NAME", "Portal Admin"),
		AdminSeedPwd: getEnv("ADMIN_SEED_PASSWORD", ""),

		FeedCacheTTL:   time.Duration(getEnvAsInt("FEED_CACHE_TTL_SECONDS", 30)) * time.Second,
		AlumniCacheTTL: time.Duration(getEnvAsInt("ALUMNI_CACHE_TTL_SECONDS", 300)) * time.Second,

		ModerationKeywordsFile: getEnv("MODERATION_KEYWORDS_FILE", ""),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
