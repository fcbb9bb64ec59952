package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mastergurukulam/apiserver/config"
	"github.com/mastergurukulam/apiserver/internal/auth"
	"github.com/mastergurukulam/apiserver/internal/db"
	"github.com/mastergurukulam/apiserver/internal/handlers"
	"github.com/mastergurukulam/apiserver/internal/notify"
	"github.com/mastergurukulam/apiserver/internal/services"
	"github.com/mastergurukulam/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	notifier   *notify.Notifier
}

// New constructs a Server with basic middleware and defaults. It also
// seeds the default superadmin account on first run.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	jwtSecret := strings.TrimSpace(cfg.Auth.JWTSecret)
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	notifier, err := newNotifier(ctx, cfg.Notify)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	adminRepo := store.NewAdminRepository(dbConn)
	courseRepo := store.NewCourseRepository(dbConn)
	activityRepo := store.NewActivityRepository(dbConn)
	examRepo := store.NewExamRepository(dbConn)
	facilityRepo := store.NewFacilityRepository(dbConn)
	facultyRepo := store.NewFacultyRepository(dbConn)
	testimonialRepo := store.NewTestimonialRepository(dbConn)
	videoRepo := store.NewVideoRepository(dbConn)
	contactRepo := store.NewContactRepository(dbConn)

	tokens := auth.NewTokenService(jwtSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	adminService := services.NewAdminService(adminRepo, tokens, cfg.Auth.BcryptCost, slog.Default())
	courseService := services.NewCourseService(courseRepo)
	activityService := services.NewActivityService(activityRepo)
	examService := services.NewExamService(examRepo)
	facilityService := services.NewFacilityService(facilityRepo)
	facultyService := services.NewFacultyService(facultyRepo)
	testimonialService := services.NewTestimonialService(testimonialRepo)
	videoService := services.NewVideoService(videoRepo)
	contactService := services.NewContactService(contactRepo, notifier)

	if err := adminService.EnsureDefaultAdmin(ctx); err != nil {
		_ = notifier.Close()
		_ = dbConn.Close()
		return nil, fmt.Errorf("seed default admin: %w", err)
	}

	authMiddleware := handlers.RequireAuth(tokens)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/admin", func(r chi.Router) {
		handlers.AdminRouter(r, adminService, authMiddleware)
		r.Route("/contacts", func(r chi.Router) {
			handlers.ContactReviewRouter(r, contactService, authMiddleware)
		})
	})
	router.Route("/courses", func(r chi.Router) {
		handlers.CourseRouter(r, courseService, authMiddleware)
	})
	router.Route("/activities", func(r chi.Router) {
		handlers.ActivityRouter(r, activityService, authMiddleware)
	})
	router.Route("/exams", func(r chi.Router) {
		handlers.ExamRouter(r, examService, authMiddleware)
	})
	router.Route("/facilities", func(r chi.Router) {
		handlers.FacilityRouter(r, facilityService, authMiddleware)
	})
	router.Route("/faculty", func(r chi.Router) {
		handlers.FacultyRouter(r, facultyService, authMiddleware)
	})
	router.Route("/testimonials", func(r chi.Router) {
		handlers.TestimonialRouter(r, testimonialService, authMiddleware)
	})
	router.Route("/videos", func(r chi.Router) {
		handlers.VideoRouter(r, videoService, authMiddleware)
	})
	router.Route("/contacts", func(r chi.Router) {
		handlers.ContactRouter(r, contactService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		notifier:   notifier,
	}, nil
}

// newNotifier builds the enquiry-event publisher named by the config.
// An empty backend disables publishing; the nil Notifier is a no-op.
func newNotifier(ctx context.Context, cfg config.NotifyConfig) (*notify.Notifier, error) {
	switch strings.TrimSpace(strings.ToLower(cfg.Backend)) {
	case "":
		return nil, nil
	case "rabbitmq":
		publisher, err := notify.NewRabbitMQPublisher(cfg.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		return notify.New(publisher, slog.Default()), nil
	case "pubsub":
		publisher, err := notify.NewPubSubPublisher(ctx, cfg.PubSub)
		if err != nil {
			return nil, fmt.Errorf("connect pubsub: %w", err)
		}
		return notify.New(publisher, slog.Default()), nil
	default:
		return nil, fmt.Errorf("unknown notify backend %q", cfg.Backend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.notifier != nil {
		_ = s.notifier.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
