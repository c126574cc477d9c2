package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	frontendURL string,
	patientHandler PatientHandler,
	employeeHandler EmployeeHandler,
	timesheetHandler TimesheetHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "evv-timeclock"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/patients", patientHandler.List)
		r.Get("/employees", employeeHandler.List)

		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", timesheetHandler.List)
			r.Get("/active", timesheetHandler.Active)
			r.Post("/manual-clock-in", timesheetHandler.ManualClockIn)
			r.Post("/manual-clock-out", timesheetHandler.ManualClockOut)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", timesheetHandler.Get)
				r.Put("/", timesheetHandler.Update)
			})
		})
	})

	return r
}
