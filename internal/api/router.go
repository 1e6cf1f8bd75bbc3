package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sfares/newsroom-be/internal/api/handlers"
	"github.com/sfares/newsroom-be/internal/auth"
	"github.com/sfares/newsroom-be/internal/config"
	"github.com/sfares/newsroom-be/internal/services"
	"github.com/sfares/newsroom-be/internal/websocket"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config        *config.Config
	DB            *sql.DB
	Hub           *websocket.Hub
	Tokens        *auth.TokenService
	Users         services.UserServiceProvider
	Sessions      services.SessionServiceProvider
	Articles      services.ArticleServiceProvider
	Categories    services.CategoryServiceProvider
	Comments      services.CommentServiceProvider
	Polls         services.PollServiceProvider
	Reactions     services.ReactionServiceProvider
	Notifications services.NotificationServiceProvider
	Ads           services.AdServiceProvider
	Media         services.MediaServiceProvider
	Analytics     services.AnalyticsServiceProvider
	Settings      services.SettingsServiceProvider
	History       services.HistoryServiceProvider
	Horoscopes    services.HoroscopeServiceProvider
	Hosts         services.HostStatsProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.Config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMW := auth.NewMiddleware(d.Tokens, d.Users, handlers.RespondError)
	credentialLimiter := NewRateLimiter(10)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(d.Sessions)
	userHandler := handlers.NewUserHandler(d.Users)
	articleHandler := handlers.NewArticleHandler(d.Articles)
	categoryHandler := handlers.NewCategoryHandler(d.Categories)
	commentHandler := handlers.NewCommentHandler(d.Comments, d.Settings)
	pollHandler := handlers.NewPollHandler(d.Polls)
	reactionHandler := handlers.NewReactionHandler(d.Reactions)
	notificationHandler := handlers.NewNotificationHandler(d.Notifications)
	adHandler := handlers.NewAdHandler(d.Ads)
	mediaHandler := handlers.NewMediaHandler(d.Media)
	analyticsHandler := handlers.NewAnalyticsHandler(d.Analytics, d.Hub)
	settingsHandler := handlers.NewSettingsHandler(d.Settings)
	historyHandler := handlers.NewHistoryHandler(d.History)
	horoscopeHandler := handlers.NewHoroscopeHandler(d.Horoscopes)
	healthHandler := handlers.NewHealthHandler(d.DB, d.Hosts)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.Tokens)

	// Uploaded media is served directly off disk.
	r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(d.Config.MediaPath))))

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", healthHandler.Check)

		// WebSocket connection endpoint
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.With(credentialLimiter.Middleware).Post("/register", authHandler.Register)
			r.With(credentialLimiter.Middleware).Post("/login", authHandler.Login)
			r.Post("/refresh-token", authHandler.Refresh)
			r.With(credentialLimiter.Middleware).Post("/forgot-password", authHandler.ForgotPassword)
			r.With(credentialLimiter.Middleware).Post("/reset-password", authHandler.ResetPassword)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Put("/password", userHandler.ChangePassword)
			})
		})

		r.Route("/news", func(r chi.Router) {
			r.Get("/", articleHandler.List)
			r.Get("/{slug}", articleHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify, authMW.RequireEditor)
				r.Post("/", articleHandler.Create)
				r.Put("/{slug}", articleHandler.Update)
				r.Delete("/{slug}", articleHandler.Delete)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.List)
			r.Get("/{slug}", categoryHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify, authMW.RequireAdmin)
				r.Post("/", categoryHandler.Create)
				r.Put("/{slug}", categoryHandler.Update)
				r.Delete("/{slug}", categoryHandler.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Post("/", commentHandler.Create)
			r.Get("/article/{articleId}", commentHandler.ListByArticle)
			r.Post("/{id}/like", commentHandler.Like)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify, authMW.RequireEditor)
				r.Get("/", commentHandler.ListByStatus)
				r.Put("/{id}/status", commentHandler.Moderate)
				r.Delete("/{id}", commentHandler.Delete)
			})
		})

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.List)
			r.Get("/{id}", pollHandler.Get)
			r.With(authMW.Verify).Post("/{id}/vote", pollHandler.Vote)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify, authMW.RequireAdmin)
				r.Post("/", pollHandler.Create)
				r.Put("/{id}", pollHandler.Update)
				r.Delete("/{id}", pollHandler.Delete)
			})
		})

		r.Route("/reactions", func(r chi.Router) {
			r.Get("/article/{articleId}", reactionHandler.Counts)
			r.With(authMW.Verify, authMW.RequireEditor).Get("/article/{articleId}/all", reactionHandler.List)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify)
				r.Put("/article/{articleId}", reactionHandler.Set)
				r.Delete("/article/{articleId}", reactionHandler.Delete)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify)
				r.Get("/", notificationHandler.ListMine)
				r.Put("/{id}/read", notificationHandler.MarkRead)
				r.Delete("/{id}", notificationHandler.Delete)
			})
			r.With(authMW.Verify, authMW.RequireAdmin).Post("/", notificationHandler.Create)
		})

		r.Route("/ads", func(r chi.Router) {
			r.Get("/", adHandler.List)
			r.Get("/{id}", adHandler.Get)
			r.Post("/{id}/impression", adHandler.Impression)
			r.Post("/{id}/click", adHandler.Click)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify, authMW.RequireAdmin)
				r.Post("/", adHandler.Create)
				r.Put("/{id}", adHandler.Update)
				r.Delete("/{id}", adHandler.Delete)
			})
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(authMW.Verify, authMW.RequireEditor)
			r.Post("/upload", mediaHandler.Upload)
			r.Get("/", mediaHandler.List)
			r.Get("/{id}", mediaHandler.Get)
			r.Post("/{id}/usage", mediaHandler.RecordUsage)
			r.Delete("/{id}", mediaHandler.Delete)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Use(authMW.Verify, authMW.RequireAdmin)
			r.Get("/report", analyticsHandler.Report)
			r.Get("/snapshots", analyticsHandler.Snapshots)
			r.Post("/snapshots", analyticsHandler.CreateSnapshot)
			r.Get("/range", analyticsHandler.Range)
			r.Get("/latest", analyticsHandler.Latest)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(authMW.Verify, authMW.RequireAdmin)
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Update)
			r.Post("/reset", settingsHandler.Reset)
		})

		r.Route("/reading-history", func(r chi.Router) {
			r.Use(authMW.Verify)
			r.Post("/", historyHandler.Record)
			r.Get("/", historyHandler.List)
			r.Delete("/", historyHandler.Clear)
		})

		r.Route("/horoscopes", func(r chi.Router) {
			r.Get("/", horoscopeHandler.List)
			r.Get("/{slug}", horoscopeHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Verify, authMW.RequireAdmin)
				r.Post("/", horoscopeHandler.Create)
				r.Put("/{slug}", horoscopeHandler.Update)
				r.Delete("/{slug}", horoscopeHandler.Delete)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authMW.Verify, authMW.RequireAdmin)
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	return r
}
