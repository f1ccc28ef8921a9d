package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/course-api-be/internal/api/handlers"
	"github.com/isdelr/course-api-be/internal/auth"
	"github.com/isdelr/course-api-be/internal/services"
	"github.com/isdelr/course-api-be/internal/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Users          services.UserServiceProvider
	Courses        services.CourseServiceProvider
	Events         services.EventServiceProvider
	Hub            *websocket.Hub
	Store          handlers.Pinger
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(requestIDLogger)
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.AccessHandler(accessLog))
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.Users)
	courseHandler := handlers.NewCourseHandler(deps.Courses)
	eventHandler := handlers.NewEventHandler(deps.Events)
	healthHandler := handlers.NewHealthHandler(deps.Store)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.Courses, deps.AllowedOrigins)

	requireAuth := auth.BasicAuthMiddleware(deps.Users, handlers.RespondError)

	r.Get("/", handlers.Welcome)
	r.Get("/healthz", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.With(requireAuth).Get("/ws", wsHandler.Serve)
		r.With(requireAuth).Get("/events", eventHandler.GetRecent)

		r.Route("/users", func(r chi.Router) {
			r.With(requireAuth).Get("/", userHandler.GetMe)
			r.Post("/", userHandler.Create)
		})

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseHandler.GetAll)
			r.With(requireAuth).Post("/", courseHandler.Create)

			// The course is loaded before credentials are checked, so a
			// missing course answers 404 even to anonymous callers.
			r.Route("/{id}", func(r chi.Router) {
				r.Use(courseHandler.CourseCtx)
				r.Get("/", courseHandler.Get)
				r.With(requireAuth).Put("/", courseHandler.Update)
				r.With(requireAuth).Delete("/", courseHandler.Delete)
			})
		})
	})

	r.NotFound(handlers.NotFound)

	return r
}

func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, duration time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Stringer("url", r.URL).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("request")
}
