package main

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/ame-market/equipment-market-backend/internal/cart"
	"github.com/ame-market/equipment-market-backend/internal/config"
	"github.com/ame-market/equipment-market-backend/internal/equipment"
	"github.com/ame-market/equipment-market-backend/internal/order"
	"github.com/ame-market/equipment-market-backend/internal/review"
	"github.com/ame-market/equipment-market-backend/internal/supplier"
	"github.com/ame-market/equipment-market-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(traceMiddleware)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	ensureSchema(db)

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)))

	supplierService := supplier.NewService(supplier.NewPostgresRepository(db))

	equipmentService := equipment.NewService(equipment.NewPostgresRepository(db))
	equipmentHandler := equipment.NewHandler(equipmentService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), equipmentService)
	cartHandler := cart.NewHandler(cartService)

	orderService := order.NewService(order.NewPostgresRepository(db), cartService)
	orderHandler := order.NewHandler(orderService)

	reviewService := review.NewService(review.NewPostgresRepository(db), orderService)
	reviewHandler := review.NewHandler(reviewService)

	// the supplier detail page shows the supplier's catalog and reviews
	supplierHandler := supplier.NewHandler(supplierService, equipmentService, reviewService)

	userHandler.RegisterPublicRoutes(app)
	supplierHandler.RegisterPublicRoutes(app)
	equipmentHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	// make uploaded files public
	app.Static("/uploads", "./uploads")

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// allow unauthenticated GETs for the public catalog surface
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != "GET" {
				return false
			}
			p := c.Path()
			return strings.HasPrefix(p, "/api/equipments") ||
				strings.HasPrefix(p, "/api/reviews/supplier/") ||
				strings.HasPrefix(p, "/uploads/")
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	supplierHandler.RegisterProtectedRoutes(app)
	equipmentHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

// ensureSchema creates the tables on first run. The UNIQUE constraint
// on cart_items backs the add-to-cart upsert.
func ensureSchema(db *sql.DB) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			"firstName" TEXT NOT NULL,
			"lastName" TEXT NOT NULL,
			phone TEXT,
			"birthDate" TEXT,
			description TEXT,
			photo TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id SERIAL PRIMARY KEY,
			"companyName" TEXT NOT NULL,
			"contactPerson" TEXT NOT NULL,
			"registrationNumber" TEXT NOT NULL,
			phone TEXT,
			description TEXT,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			address TEXT,
			logo TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS equipment (
			id SERIAL PRIMARY KEY,
			"supplierId" INT NOT NULL REFERENCES suppliers (id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			model TEXT,
			description TEXT,
			price BIGINT NOT NULL DEFAULT 0,
			photo TEXT,
			"serialNumber" TEXT,
			"createdAt" TEXT,
			"updatedAt" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			id SERIAL PRIMARY KEY,
			"userId" INT NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id SERIAL PRIMARY KEY,
			"cartId" INT NOT NULL REFERENCES carts (id) ON DELETE CASCADE,
			"equipmentId" INT NOT NULL,
			quantity INT NOT NULL,
			UNIQUE ("cartId", "equipmentId")
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			"userId" INT NOT NULL,
			"supplierId" INT NOT NULL,
			"deliveryAddress" TEXT NOT NULL,
			"totalCost" BIGINT NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			"completionTime" TEXT,
			"orderName" TEXT,
			description TEXT,
			"dateOfOrdering" TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			"orderId" INT NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
			"equipmentId" INT NOT NULL,
			quantity INT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS supplier_reviews (
			id SERIAL PRIMARY KEY,
			"userId" INT NOT NULL,
			"orderId" INT NOT NULL UNIQUE,
			"supplierId" INT NOT NULL,
			rating INT NOT NULL,
			"shortReview" TEXT,
			description TEXT,
			"createdAt" TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}

func traceMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("URL = %s, Method = %s, Duration = %v\n", c.OriginalURL(), c.Method(), time.Since(start))
	return err
}
