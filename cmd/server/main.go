package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"bokning/internal/api"
	"bokning/internal/auth"
	"bokning/internal/calendar"
	"bokning/internal/config"
	"bokning/internal/repository"
	"bokning/internal/secrets"
	"bokning/internal/service"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	database, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	credentialCache := secrets.NewEnvCache()
	gateway := calendar.NewClient(credentialCache, cfg.Location, cfg.AllowedOrganizers)

	ledger := repository.NewBookingRepository(database)
	adminAuthRepo := repository.NewAdminAuthRepository(database)

	sender := service.NewSenderService(cfg)
	availabilitySvc := service.NewAvailabilityService(cfg, ledger, gateway)
	bookingSvc := service.NewBookingService(cfg, ledger, gateway, sender)
	busyDaySvc := service.NewBusyDayService(cfg, ledger, gateway)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(cfg, ledger)

	bookingHandler := api.NewBookingHandler(availabilitySvc, bookingSvc)
	adminHandler := api.NewAdminHandler(busyDaySvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/available-slots", bookingHandler.GetAvailableSlots).Methods("GET")
	r.HandleFunc("/create-booking", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	r.Handle("/busy-days", auth.AdminAuthMiddleware(http.HandlerFunc(adminHandler.GetBusyDays))).Methods("GET")
	r.Handle("/toggle-busy-day", auth.AdminAuthMiddleware(http.HandlerFunc(adminHandler.ToggleBusyDay))).Methods("POST")
	r.Handle("/add-busy-times", auth.AdminAuthMiddleware(http.HandlerFunc(adminHandler.AddBusyTimes))).Methods("POST")
	r.Handle("/admin/admins", auth.AdminAuthMiddleware(http.HandlerFunc(adminAuthHandler.CreateAdmin))).Methods("POST")

	// Nightly housekeeping
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		if err := jobSvc.PruneExpiredBusyDays(); err != nil {
			log.Printf("Busy day prune job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule busy day prune job: %v", err)
	}
	scheduler.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, cors(r)))
}
