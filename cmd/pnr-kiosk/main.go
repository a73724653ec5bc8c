// The pnr-kiosk service exposes only the public PNR status lookup, the way a
// station kiosk would: no accounts, no sessions, read-only.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"railbooking/internal/booking"
	booking_db "railbooking/internal/booking/db"
	"railbooking/internal/config"
	"railbooking/internal/identity"
	"railbooking/internal/inventory"
	"railbooking/internal/logger"
	"railbooking/internal/payload"
	"railbooking/internal/qr"
	"railbooking/internal/storage"
	"railbooking/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	appLog := logger.NewLogger()
	defer appLog.Close()

	docs, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		log.Fatalf("failed to open data directory: %v", err)
	}
	ticketDB, err := booking_db.NewDB(docs, cfg.Storage.BookingsDoc)
	if err != nil {
		log.Fatalf("failed to load tickets document: %v", err)
	}
	identityStore, err := identity.NewStore(docs, cfg.Storage.UsersDoc)
	if err != nil {
		log.Fatalf("failed to load users document: %v", err)
	}

	catalog := inventory.NewCatalog(inventory.SeedTrains())
	qrGen := qr.NewGenerator()
	service := booking.NewService(ticketDB, catalog, identityStore, nil, qrGen, nil, appLog)

	r := chi.NewRouter()
	r.Get("/pnr/{pnr}", func(w http.ResponseWriter, r *http.Request) {
		ticket, err := service.TrackByPNR(chi.URLParam(r, "pnr"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, utils.ErrorResponse("PNR not found", err.Error()))
			return
		}
		writeJSON(w, http.StatusOK, utils.SuccessResponse("PNR status", map[string]any{
			"ticket":  ticket,
			"payload": payload.Display(*ticket),
		}))
	})
	r.Get("/pnr/{pnr}/qr", func(w http.ResponseWriter, r *http.Request) {
		ticket, err := service.TrackByPNR(chi.URLParam(r, "pnr"))
		if err != nil {
			writeJSON(w, http.StatusNotFound, utils.ErrorResponse("PNR not found", err.Error()))
			return
		}
		png, err := qrGen.GenerateTicketQR(*ticket)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("failed to generate QR", err.Error()))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	})

	port := os.Getenv("KIOSK_PORT")
	if port == "" {
		port = ":8081"
	}

	server := &http.Server{
		Addr:    port,
		Handler: r,
	}

	go func() {
		appLog.Info("SERVER", "PNR kiosk on "+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	appLog.Info("SERVER", "Kiosk shutdown complete")
}

func writeJSON(w http.ResponseWriter, status int, body utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
