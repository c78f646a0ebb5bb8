package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config reúne toda la configuración del servicio leída del entorno.
type Config struct {
	Puerto      string
	DatabaseURL string
	JWTSecret   string
	WebhookURL  string
	LogLevel    string
}

// Cargar lee el archivo .env si existe y arma la configuración con los
// valores por defecto de desarrollo local.
func Cargar() *Config {
	_ = godotenv.Load()

	return &Config{
		Puerto:      getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", "barberia.db"),
		JWTSecret:   getenv("JWT_SECRET", "clave-de-emergencia-por-si-no-carga-el-env"),
		WebhookURL:  os.Getenv("WEBHOOK_URL"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}

func getenv(clave, porDefecto string) string {
	if v := os.Getenv(clave); v != "" {
		return v
	}
	return porDefecto
}
