package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/life-connect/life_connect/internal/account"
	"github.com/life-connect/life_connect/internal/auth"
	"github.com/life-connect/life_connect/internal/config"
	"github.com/life-connect/life_connect/internal/donor"
	"github.com/life-connect/life_connect/internal/mail"
	"github.com/life-connect/life_connect/internal/middleware"
	"github.com/life-connect/life_connect/internal/request"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Mail   mail.Sender
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories over the document store. The donor directory is a read
	// view over users, not a separately owned collection.
	accountRepo := account.NewPostgresRepository(d.DB)
	ledger := request.NewPostgresLedger(d.DB)
	directory := donor.NewPostgresDirectory(d.DB)

	// Services and handlers
	accountSvc := account.NewService(accountRepo)
	tokenSvc := auth.NewService(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL)
	dedup := request.NewDedupGuard(d.Cache, d.Cfg.DedupWindow, d.Logger)
	requestSvc := request.NewService(ledger, directory, d.Mail, accountRepo, dedup, d.Cfg.MailSendTimeout, d.Logger)

	accountHandler := account.NewHandler(accountSvc, tokenSvc)
	requestHandler := request.NewHandler(requestSvc)

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)
	RegisterAccountRoutes(app, accountHandler, rateLimiter)
	RegisterRequestRoutes(app, requestHandler)

	// Protected routes
	protected := app.Group("", middleware.Auth(tokenSvc))
	RegisterProfileRoutes(protected, accountHandler, accountSvc, requestSvc)
	RegisterPeerRoutes(protected, requestHandler)

	return nil
}
