package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"railbooking/internal/auth"
	"railbooking/internal/booking"
	"railbooking/internal/booking/booking_api"
	booking_db "railbooking/internal/booking/db"
	"railbooking/internal/config"
	"railbooking/internal/identity"
	"railbooking/internal/inventory"
	"railbooking/internal/kafka"
	"railbooking/internal/logger"
	"railbooking/internal/mailer"
	"railbooking/internal/otp"
	"railbooking/internal/qr"
	"railbooking/internal/storage"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	docs, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		log.Fatal("STORE", fmt.Sprintf("Failed to open data directory: %v", err))
	}

	identityStore, err := identity.NewStore(docs, cfg.Storage.UsersDoc)
	if err != nil {
		log.Fatal("STORE", fmt.Sprintf("Failed to load users document: %v", err))
	}
	ticketDB, err := booking_db.NewDB(docs, cfg.Storage.BookingsDoc)
	if err != nil {
		log.Fatal("STORE", fmt.Sprintf("Failed to load tickets document: %v", err))
	}

	catalog := inventory.NewCatalog(inventory.SeedTrains())

	var mail mailer.Mailer
	if cfg.Email.Enabled && cfg.Email.SMTPUsername != "" {
		mail = mailer.NewSMTPMailer(cfg.Email)
	} else {
		log.Warn("MAIL", "SMTP disabled or unconfigured, mail delivery is logged only")
		mail = &mailer.LogMailer{Logger: log}
	}

	var otpStore otp.Store
	if cfg.Redis.Enabled {
		redisStore, err := otp.NewRedisStore(cfg.Redis.Addr)
		if err != nil {
			log.Fatal("REDIS", fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
		log.Info("REDIS", "OTP store backed by Redis at "+cfg.Redis.Addr)
		otpStore = redisStore
	} else {
		otpStore = otp.NewMemoryStore()
	}
	authenticator := otp.NewAuthenticator(otpStore, mail, cfg.OTP.Expiry)

	var publisher booking.Publisher
	if cfg.Kafka.Enabled {
		if cfg.Kafka.MockMode {
			log.Warn("KAFKA", "Running in mock mode, events are logged only")
			publisher = &kafka.MockProducer{Logger: log}
		} else {
			if err := kafka.EnsureTopicExists(cfg.Kafka.Brokers, cfg.Kafka.Topic); err != nil {
				log.Error("KAFKA", fmt.Sprintf("Failed to ensure topic %s: %v", cfg.Kafka.Topic, err))
			}
			producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
			defer producer.Close()
			publisher = producer
		}
	}

	qrGen := qr.NewGenerator()
	service := booking.NewService(ticketDB, catalog, identityStore, mail, qrGen, publisher, log)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	handler := booking_api.NewHandler(service, identityStore, authenticator, tokens, catalog, qrGen, log)

	r := chi.NewRouter()
	r.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("SERVER", "Railway booking service on "+cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	log.Info("SERVER", "Booking service shutdown complete")
}
