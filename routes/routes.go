package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/ulticlub/roster-service/docs"
	"github.com/ulticlub/roster-service/handlers"
	"github.com/ulticlub/roster-service/middleware"
	"github.com/ulticlub/roster-service/models"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	// Gatherer backs /metrics; the endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

func SetupRoutes(
	opts Options,
	rosterHandler *handlers.RosterHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))

		adminOnly := middleware.RequireRole(models.RoleAdmin)

		// Reads are public. Mutations are rejected before the body is read.
		r.Route("/roster", func(r chi.Router) {
			r.Get("/", rosterHandler.ListRoster)
			r.Get("/available", rosterHandler.AvailablePlayers)
			r.Get("/stats", rosterHandler.RosterStats)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", rosterHandler.AddAssignment)
				r.Patch("/{rosterEntryID}", rosterHandler.UpdateAssignment)
				r.Delete("/{rosterEntryID}", rosterHandler.RemoveAssignment)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.ListPlayers)
			r.Get("/{playerID}", playerHandler.GetPlayer)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", playerHandler.CreatePlayer)
				r.Put("/{playerID}", playerHandler.UpdatePlayer)
				r.Delete("/{playerID}", playerHandler.DeletePlayer)
				r.Post("/{playerID}/photo", playerHandler.UploadPhoto)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListTournaments)
			r.Get("/{tournamentID}", tournamentHandler.GetTournament)
			r.Get("/{tournamentID}/teams", tournamentHandler.ListTeams)
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", tournamentHandler.CreateTournament)
				r.Delete("/{tournamentID}", tournamentHandler.DeleteTournament)
				r.Post("/{tournamentID}/teams", tournamentHandler.CreateTeam)
			})
		})
		r.With(adminOnly).Delete("/teams/{teamID}", tournamentHandler.DeleteTeam)

		r.With(adminOnly).Get("/dashboard", dashboardHandler.Stats)
	})

	router.Get("/ws/tournaments/{tournamentID}/roster", webSocketHandler.ServeRoster)

	return router
}
