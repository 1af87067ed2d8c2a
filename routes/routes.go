package routes

import (
	"github.com/Daniyar05/esports-tournament-system/handlers"
	appmiddleware "github.com/Daniyar05/esports-tournament-system/middleware"
	"github.com/Daniyar05/esports-tournament-system/models"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes собирает все HTTP-маршруты приложения.
// Мутации закрыты JWT; standings и просмотр турниров публичные.
func SetupRoutes(
	router *chi.Mux,
	auth *appmiddleware.Authenticator,
	authHandler *handlers.AuthHandler,
	seasonHandler *handlers.SeasonHandler,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	standingsHandler *handlers.StandingsHandler,
	pollHandler *handlers.PollHandler,
	walletHandler *handlers.WalletHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler())

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/signin", authHandler.SignIn)

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", seasonHandler.ListHandler)
		r.Get("/{seasonID}", seasonHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(appmiddleware.Authorize(models.RoleAdmin, models.RoleOrganizer))

			r.Post("/", seasonHandler.CreateHandler)
			r.Put("/{seasonID}", seasonHandler.RenameHandler)
			r.Patch("/{seasonID}/activate", seasonHandler.ActivateHandler)
			r.Delete("/{seasonID}", seasonHandler.DeleteHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/default", tournamentHandler.DefaultHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/teams", teamHandler.ListHandler)
		r.Get("/{tournamentID}/standings", standingsHandler.GetHandler)
		r.Get("/{tournamentID}/standings/export", standingsHandler.ExportHandler)
		r.Get("/{tournamentID}/polls", pollHandler.ListHandler)

		// Самозапись команды — любой аутентифицированный пользователь.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/{tournamentID}/teams", teamHandler.CreateHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(appmiddleware.Authorize(models.RoleAdmin, models.RoleOrganizer))

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}", tournamentHandler.UpdateDetailsHandler)
			r.Patch("/{tournamentID}/status", tournamentHandler.UpdateStatusHandler)
			r.Post("/{tournamentID}/winner", tournamentHandler.DeclareWinnerHandler)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogoHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)

			r.Post("/{tournamentID}/teams/bulk", teamHandler.BulkImportHandler)
			r.Post("/{tournamentID}/teams/reconcile", teamHandler.ReconcileHandler)
			r.Post("/{tournamentID}/polls", pollHandler.CreateHandler)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(appmiddleware.Authorize(models.RoleAdmin, models.RoleOrganizer))

			r.Put("/{teamID}/players", teamHandler.UpdatePlayersHandler)
			r.Put("/{teamID}/matches/{matchNo}", teamHandler.RecordScoreHandler)
			r.Post("/{teamID}/logo", teamHandler.UploadLogoHandler)
			r.Delete("/{teamID}", teamHandler.DeleteHandler)
		})
	})

	router.Route("/polls", func(r chi.Router) {
		r.Get("/{pollID}/results", pollHandler.ResultsHandler)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/{pollID}/votes", pollHandler.VoteHandler)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(appmiddleware.Authorize(models.RoleAdmin, models.RoleOrganizer))
			r.Post("/{pollID}/close", pollHandler.CloseHandler)
		})
	})

	router.Route("/wallet", func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/", walletHandler.BalanceHandler)
		r.Get("/transactions", walletHandler.TransactionsHandler)
		r.Post("/deposit", walletHandler.DepositHandler)

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Authorize(models.RoleAdmin))
			r.Post("/refund", walletHandler.RefundHandler)
		})
	})

	router.Get("/ws/standings/{tournamentID}", webSocketHandler.ServeWs)
}
