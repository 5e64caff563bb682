package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/wichananm65/storefront-backend/internal/cart"
	"github.com/wichananm65/storefront-backend/internal/category"
	"github.com/wichananm65/storefront-backend/internal/config"
	"github.com/wichananm65/storefront-backend/internal/database"
	"github.com/wichananm65/storefront-backend/internal/events"
	"github.com/wichananm65/storefront-backend/internal/httpx"
	"github.com/wichananm65/storefront-backend/internal/logger"
	"github.com/wichananm65/storefront-backend/internal/middleware"
	"github.com/wichananm65/storefront-backend/internal/order"
	"github.com/wichananm65/storefront-backend/internal/product"
	"github.com/wichananm65/storefront-backend/internal/shipping"
	"github.com/wichananm65/storefront-backend/internal/user"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func serveCommand() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrateFirst bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrateFirst {
		if err := database.Migrate(db.DB, database.Up); err != nil {
			return err
		}
		log.Info("Migrations applied")
	}

	publisher, err := newPublisher(cfg, log)
	if err != nil {
		return err
	}
	defer publisher.Close()

	app := newApp(cfg, db, publisher, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
		errCh <- app.Listen(cfg.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	log.Info("Server exited")
	return nil
}

func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	return database.Open(ctx, database.Config{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
}

func newPublisher(cfg *config.Config, log *zap.Logger) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Info("Kafka brokers not configured, order events disabled")
		return events.NoopPublisher{}, nil
	}
	pub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		return nil, err
	}
	log.Info("Publishing order events",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic))
	return pub, nil
}

// newApp wires every feature package onto one fiber app. Public routes are
// registered before the JWT middleware; everything after it needs a token.
func newApp(cfg *config.Config, db *sqlx.DB, publisher events.Publisher, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "storefront",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return httpx.Fail(c, code, httpMessage(code))
		},
	})
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	setupCORS(app, cfg.CORSOrigins)

	secret := []byte(cfg.JWTSecret)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, secret, cfg.TokenTTL, log)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService, log)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)), log)

	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	cartHandler := cart.NewHandler(cartService, log)

	orderService := order.NewService(order.NewPostgresRepository(db), publisher, log, cfg.OrderTimeout)
	orderHandler := order.NewHandler(orderService, log)

	shippingHandler := shipping.NewHandler(shipping.NewDirectory())

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return httpx.Fail(c, fiber.StatusServiceUnavailable, "database unavailable")
		}
		return httpx.OKMessage(c, "ok", fiber.Map{"time": time.Now().UTC()})
	})

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	shippingHandler.RegisterPublicRoutes(app)

	app.Use(middleware.JWT(secret))

	admin := middleware.RequireAdmin()
	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterAdminRoutes(app, admin)
	categoryHandler.RegisterAdminRoutes(app, admin)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	return app
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func httpMessage(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "resource not found"
	case fiber.StatusMethodNotAllowed:
		return "method not allowed"
	case fiber.StatusInternalServerError:
		return "internal server error"
	default:
		return "request failed"
	}
}
