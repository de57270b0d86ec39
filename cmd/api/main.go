package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/confmerch/checkout-backend/internal/catalog"
	"github.com/confmerch/checkout-backend/internal/checkout"
	"github.com/confmerch/checkout-backend/internal/config"
	"github.com/confmerch/checkout-backend/internal/location"
	"github.com/confmerch/checkout-backend/internal/notification"
	"github.com/confmerch/checkout-backend/internal/order"
	"github.com/confmerch/checkout-backend/internal/payment"
	"github.com/confmerch/checkout-backend/internal/session"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	// the database is optional: orders archive to it and the catalog is
	// served from it when available, otherwise everything runs in memory
	var db *sql.DB
	var archive order.Repository
	catalogRepo := catalog.Repository(catalog.NewInMemoryRepository(catalog.DefaultCatalog()))
	if cfg.DatabaseURL != "" {
		db = mustOpenDB(cfg.DatabaseURL)
		defer db.Close()

		orderRepo := order.NewPostgresRepository(db)
		if err := orderRepo.EnsureSchema(); err != nil {
			log.Fatalf("orders schema: %v", err)
		}
		archive = orderRepo

		pgCatalog := catalog.NewPostgresRepository(db)
		if err := pgCatalog.EnsureSchema(); err != nil {
			log.Fatalf("products schema: %v", err)
		}
		catalogRepo = pgCatalog
	}

	gateway := payment.NewPayPalGateway(cfg.PayPalClientID, cfg.PayPalSecret, cfg.PayPalBaseURL)

	var notify checkout.Notifier
	if cfg.SendGridAPIKey != "" && cfg.EmailSender != "" {
		notify = notification.NewMailer(cfg.SendGridAPIKey, cfg.EmailSender)
	}

	sessions := session.NewManager(cfg.JWTSecret, gateway, cfg.Currency, notify, archive)

	// public routes
	catalogHandler := catalog.NewHandler(catalog.NewService(catalogRepo))
	catalogHandler.RegisterPublicRoutes(app)

	locationHandler := location.NewHandler(location.Coordinates{Lat: cfg.VenueLat, Lng: cfg.VenueLng}, cfg.GoogleMapAPIKey)
	locationHandler.RegisterPublicRoutes(app)

	sessionHandler := session.NewHandler(sessions)
	sessionHandler.RegisterPublicRoutes(app)

	// everything past this point needs a session token
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	checkoutHandler := checkout.NewHandler(sessions)
	checkoutHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}
