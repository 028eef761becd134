package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBSource          string
	JWTSecret         string
	JWTTTL            time.Duration
	GatewaySecretHash string
	StaffIDs          []int64
	OpenHour          int
	CloseHour         int
	Timezone          string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		Port:              getEnv("PORT", "8000"),
		DBSource:          getEnv("DB_SOURCE", "cafe_bot.db"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            time.Duration(24) * time.Hour,
		GatewaySecretHash: getEnv("GATEWAY_SECRET_HASH", ""),
		StaffIDs:          parseIDList(getEnv("STAFF_IDS", "")),
		OpenHour:          getEnvInt("OPEN_HOUR", 9),
		CloseHour:         getEnvInt("CLOSE_HOUR", 21),
		Timezone:          getEnv("TIMEZONE", "Europe/Moscow"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("bad %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// parseIDList reads a comma-separated list of external staff ids.
func parseIDList(raw string) []int64 {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("skipping bad staff id %q", part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
