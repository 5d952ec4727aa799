package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xcabral/leaddesk/internal/infra/crm"
	"github.com/xcabral/leaddesk/internal/infra/database"
	"github.com/xcabral/leaddesk/internal/infra/http/handlers"
	"github.com/xcabral/leaddesk/internal/infra/http/middleware"
	"github.com/xcabral/leaddesk/internal/infra/mail"
	"github.com/xcabral/leaddesk/internal/infra/queue"
	"github.com/xcabral/leaddesk/internal/infra/session"
	"github.com/xcabral/leaddesk/internal/usecase"
)

const sessionTTL = 24 * time.Hour

func main() {
	godotenv.Load()

	crmURL := os.Getenv("CRM_API_URL")
	if crmURL == "" {
		crmURL = "http://localhost:5000/api"
	}
	crmClient := crm.NewClient(crmURL)

	// Session store: Postgres when configured, in-memory otherwise.
	var store session.Store
	var db *sql.DB
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		var err error
		db, err = database.NewDBConnection(dsn)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		if err := database.EnsureSchema(context.Background(), db); err != nil {
			log.Fatal(err)
		}
		store = session.NewPostgresStore(db, sessionTTL)
	} else {
		store = session.NewMemoryStore(sessionTTL)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@leaddesk.app"),
	)

	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	// Worker consumes queued report email jobs.
	worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go worker.Start(queue.QueueName)

	sessions := middleware.NewSessionManager(store, sessionTTL)

	authHandler := handlers.NewAuthHandler(crmClient, sessions)
	leadHandler := handlers.NewLeadHandler(crmClient, sessions)
	quotationHandler := handlers.NewQuotationHandler(crmClient, sessions, usecase.UUIDGenerator{})
	reportHandler := handlers.NewReportHandler(crmClient, sessions, producer)
	settingsHandler := handlers.NewSettingsHandler(crmClient, sessions)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{envOr("FRONTEND_ORIGIN", "http://localhost:3000")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/session", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireSession)

		r.Delete("/api/session", authHandler.HandleLogout)
		r.Get("/api/me", authHandler.HandleMe)
		r.Post("/api/me/password", authHandler.HandleChangePassword)

		r.Route("/api/leads", func(r chi.Router) {
			r.Get("/", leadHandler.HandleList)
			r.Post("/", leadHandler.HandleCreate)
			r.Get("/stats", leadHandler.HandleStats)
			r.Get("/{id}", leadHandler.HandleGet)
			r.Put("/{id}", leadHandler.HandleUpdate)
			r.Delete("/{id}", leadHandler.HandleDelete)
		})

		r.Route("/api/quotations", func(r chi.Router) {
			r.Get("/", quotationHandler.HandleList)
			r.Post("/", quotationHandler.HandleCreate)
			r.Get("/stats", quotationHandler.HandleStats)
			r.Delete("/{id}", quotationHandler.HandleDelete)
			r.Post("/{id}/send", quotationHandler.HandleSend)
		})

		r.Route("/api/reports", func(r chi.Router) {
			r.Get("/dashboard-stats", reportHandler.HandleDashboardStats)
			r.Post("/email", reportHandler.HandleEmailReport)
			r.Get("/{kind}", reportHandler.HandleReport)
		})

		r.Get("/api/users", settingsHandler.HandleUsers)
		r.Get("/api/settings/company", settingsHandler.HandleGetCompany)
		r.Put("/api/settings/company", settingsHandler.HandleUpdateCompany)
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 LeadDesk gateway running on %s (upstream: %s)", port, crmURL)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
