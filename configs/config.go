package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBSource       string
	Port           string
	JWTSecret      string
	JWTTTL         time.Duration
	PromptPayID    string
	UploadDir      string
	ShippingFee    float64
	AllowedOrigins []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file, using environment only")
	}

	return &Config{
		DBSource:    getEnv("DB_SOURCE", "bakery.db"),
		Port:        getEnv("PORT", "8000"),
		JWTSecret:   getEnv("JWT_SECRET", "changeme"),
		JWTTTL:      24 * time.Hour,
		PromptPayID: getEnv("PROMPTPAY_ID", "0931253748"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		ShippingFee: getEnvFloat("SHIPPING_FEE", 0),
		// comma-separated เช่น "https://shop.example.com,https://admin.example.com"
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "*")),
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
