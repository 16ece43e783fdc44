package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"hospedajes/auth"
	"hospedajes/config"
	"hospedajes/db"
	"hospedajes/handlers"
	"hospedajes/i18n"

	"github.com/dchest/captcha"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if env := os.Getenv("APP_ENV"); env == "dev" || env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if err := config.LoadConfig("config.json"); err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	if err := i18n.LoadTranslations("i18n"); err != nil {
		log.Fatal().Err(err).Msg("loading translations")
	}

	auth.InitStore()

	db.InitDB(config.AppConfig.DatabasePath)
	defer db.DB.Close()

	if err := os.MkdirAll(config.AppConfig.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("creating upload directory")
	}

	mux := http.NewServeMux()

	// Static assets and uploaded images
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.AppConfig.UploadDir))))

	// Captcha images for the login form (only linked when enable_captcha is set)
	mux.Handle("/captcha/", captcha.Server(captcha.StdWidth, captcha.StdHeight))

	handlers.RegisterHandlers(mux)

	// CSRF protection over every form
	csrfMiddleware := csrf.Protect(
		[]byte(config.AppConfig.SessionKey),
		csrf.Secure(false), // Set to true in production with HTTPS
		csrf.Path("/"),
	)

	handler := handlers.LoggingMiddleware(log.Logger)(
		handlers.SecurityHeadersMiddleware(csrfMiddleware(mux)))

	addr := fmt.Sprintf("%s:%d", config.AppConfig.ListenIP, config.AppConfig.ListenPort)
	log.Info().Str("addr", addr).Str("app", config.AppConfig.AppName).Msg("server starting")

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
