package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(env string, lifecycleHandler LifecycleHandler, memberHandler MemberHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "membership-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/lifecycle", func(r chi.Router) {
			r.Post("/transactions/process", lifecycleHandler.ProcessTransactions)
			r.Post("/expirations/process", lifecycleHandler.ProcessDueActions)
			r.Post("/migrations/process", lifecycleHandler.MigrateLegacyMembers)
		})

		r.Get("/schedule", lifecycleHandler.GetSchedule)

		r.Route("/members", func(r chi.Router) {
			r.Get("/", memberHandler.ListMembers)
			r.Get("/{email}", memberHandler.GetMember)
		})

		r.Get("/stats", memberHandler.GetStats)
	})

	return r
}
