// Package config centraliza la configuración derivada del entorno.
// Reemplaza el estado ambiente (process.env suelto) por un objeto explícito
// que se inyecta en el router y los servicios al arrancar.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"adoptme"`
	Port    int    `env:"PORT" envDefault:"8080"`

	// DSN de Postgres. Vacío => repos in-memory (modo dev/tests).
	DatabaseURL string `env:"DATABASE_URL"`

	// Sesiones
	JWTSecret    string        `env:"JWT_SECRET" envDefault:"tokenSecretJWT"`
	CookieName   string        `env:"COOKIE_NAME" envDefault:"coderCookie"`
	CookieMaxAge time.Duration `env:"COOKIE_MAX_AGE" envDefault:"1h"`

	// Uploads (imágenes de mascotas y documentos de usuarios)
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./public"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Timeouts del server
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
