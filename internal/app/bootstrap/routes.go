// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	accountsfeature "github.com/dalemusser/clubhub/internal/app/features/accounts"
	admissionsfeature "github.com/dalemusser/clubhub/internal/app/features/admissions"
	healthfeature "github.com/dalemusser/clubhub/internal/app/features/health"
	moderationfeature "github.com/dalemusser/clubhub/internal/app/features/moderation"
	progressfeature "github.com/dalemusser/clubhub/internal/app/features/progress"
	ranksfeature "github.com/dalemusser/clubhub/internal/app/features/ranks"
	teamsfeature "github.com/dalemusser/clubhub/internal/app/features/teams"
	allowliststore "github.com/dalemusser/clubhub/internal/app/store/allowlist"
	blockliststore "github.com/dalemusser/clubhub/internal/app/store/blocklist"
	clubsettingsstore "github.com/dalemusser/clubhub/internal/app/store/clubsettings"
	teamstore "github.com/dalemusser/clubhub/internal/app/store/teams"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and Startup have completed. ClubHub exposes a JSON API:
//
//	/health                 liveness probe
//	/auth/*                 registration and login (public)
//	/account/*              any authenticated user
//	/admin/*                admins only
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	invites := allowliststore.New(db)
	blocked := blockliststore.New(db)
	teams := teamstore.New(db)
	settings := clubsettingsstore.New(db)
	mail := newMailer(appCfg, logger)

	teamsSvc := teamsfeature.NewService(teams, users, settings, logger)

	admissionsHandler := admissionsfeature.NewHandler(
		admissionsfeature.NewService(users, invites, blocked, mail, appCfg.SiteName, logger),
		invites, logger)
	moderationHandler := moderationfeature.NewHandler(
		moderationfeature.NewService(blocked, invites, users, logger),
		blocked, logger)
	ranksHandler := ranksfeature.NewHandler(
		ranksfeature.NewService(users, logger), logger)
	teamsHandler := teamsfeature.NewHandler(teamsSvc, logger)
	progressHandler := progressfeature.NewHandler(
		progressfeature.NewService(users, teamsSvc, logger), logger)
	accountsHandler := accountsfeature.NewHandler(
		accountsfeature.NewService(users, invites, blocked, teamsSvc, mail, appCfg.SiteName, logger), logger)

	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Public signup and login, rate limited per IP to slow down
	// credential stuffing and OTP guessing.
	authLimiter := ratelimit.New(20, time.Minute)
	r.Group(func(gr chi.Router) {
		gr.Use(authLimiter.Middleware)
		gr.Mount("/auth", accountsfeature.PublicRoutes(accountsHandler))
	})

	// Everything below requires a valid API token.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireToken(users, logger))

		pr.Mount("/account", accountsfeature.UserRoutes(accountsHandler))

		pr.Route("/admin", func(ar chi.Router) {
			ar.Use(auth.RequireRole(hierarchy.RoleAdmin))

			ar.Mount("/allowed-emails", admissionsfeature.Routes(admissionsHandler))
			ar.Mount("/progress", progressfeature.Routes(progressHandler))
			ar.Mount("/blocked-emails", moderationfeature.Routes(moderationHandler))
			ar.Mount("/ranks", ranksfeature.Routes(ranksHandler))
			ar.Mount("/teams", teamsfeature.Routes(teamsHandler))
			ar.Mount("/users", accountsfeature.AdminRoutes(accountsHandler))
		})
	})

	return r, nil
}
