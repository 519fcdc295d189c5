// Package server wires the database, domain services and HTTP routes
// into a running application.
package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"hrdesk/internal/domain/attendance"
	"hrdesk/internal/domain/dashboard"
	"hrdesk/internal/domain/evaluation"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/messaging"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/payroll"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/platform/config"
	"hrdesk/internal/platform/db"
	"hrdesk/internal/platform/render"
	attendancehandler "hrdesk/internal/transport/http/handlers/attendance"
	authhandler "hrdesk/internal/transport/http/handlers/auth"
	dashboardhandler "hrdesk/internal/transport/http/handlers/dashboard"
	employeeshandler "hrdesk/internal/transport/http/handlers/employees"
	evaluationshandler "hrdesk/internal/transport/http/handlers/evaluations"
	leavehandler "hrdesk/internal/transport/http/handlers/leave"
	messageshandler "hrdesk/internal/transport/http/handlers/messages"
	notificationshandler "hrdesk/internal/transport/http/handlers/notifications"
	payrollhandler "hrdesk/internal/transport/http/handlers/payroll"
	profilehandler "hrdesk/internal/transport/http/handlers/profile"
	"hrdesk/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		log.Fatalf("storage dir: %v", err)
	}

	profileService := profile.NewService(profile.NewStore(pool))
	attendanceService := attendance.NewService(attendance.NewStore(pool))
	leaveService := leave.NewService(leave.NewStore(pool))
	payrollService := payroll.NewService(payroll.NewStore(pool), render.NewPDFRenderer())
	evaluationService := evaluation.NewService(evaluation.NewStore(pool))
	notificationService := notifications.NewService(notifications.NewStore(pool))
	messagingStore := messaging.NewStore(pool)
	messagingService := messaging.NewService(messagingStore, notificationService, slog.Default())
	dashboardService := &dashboard.Service{
		Store:         dashboard.NewStore(pool),
		Leave:         leaveService.Store,
		Attendance:    attendanceService,
		Payroll:       payrollService,
		Evaluations:   evaluationService,
		Messages:      messagingStore,
		Notifications: notificationService,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.AuthRateLimitPerMinute, time.Minute,
				middleware.WithKeyFunc(middleware.AuthUsernameOrIPKey("username"))))
			authHandler.RegisterRoutes(r)
		})

		employeeshandler.NewHandler(profileService, attendanceService, leaveService, payrollService, evaluationService).RegisterRoutes(r)
		profilehandler.NewHandler(profileService, payrollService, cfg.StorageDir).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService, profileService).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, profileService, notificationService).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService, profileService, notificationService).RegisterRoutes(r)
		evaluationshandler.NewHandler(evaluationService, profileService, notificationService).RegisterRoutes(r)
		messageshandler.NewHandler(messagingService).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationService).RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardService, profileService).RegisterRoutes(r)
	})

	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.StorageDir)))
	router.Get("/media/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	log.Printf("hrdesk server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
