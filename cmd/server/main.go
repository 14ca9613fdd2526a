package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/controllers/http"
	mmysql "storefront/internal/infra/mysql"
	"storefront/internal/infra/rabbitmq"
	"storefront/internal/infra/storage"
	mysqlrepo "storefront/internal/repository/mysql"
	"storefront/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := mmysql.Seed(db); err != nil {
		log.Fatalf("db: seed: %v", err)
	}

	users := mysqlrepo.NewUserRepository(db)
	customers := mysqlrepo.NewCustomerRepository(db)
	products := mysqlrepo.NewProductRepository(db)
	orders := mysqlrepo.NewOrderRepository(db)
	cartItems := mysqlrepo.NewCartRepository(db)
	uploads := mysqlrepo.NewUploadRepository(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "storefront.events")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}

	accountService := services.NewAccountService(users, publisher)
	customerService := services.NewCustomerService(customers)
	productService := services.NewProductService(products)
	orderService := services.NewOrderService(orders, customers, products, publisher)
	cartService := services.NewCartService(cartItems, products, customers, orders, publisher)
	uploadService := services.NewUploadService(uploads, storage.NewNameOnlyStore())
	dashboardService := services.NewDashboardService(customers, products, orders)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	cartService.SetRedisClient(redisClient)

	ctx := context.Background()
	go func() {
		time.Sleep(5 * time.Second)
		if err := cartService.WarmupProductCache(ctx); err != nil {
			log.Printf("Failed to warm up cache: %v", err)
		} else {
			log.Println("Cache warmed up successfully")
		}
	}()

	issuer := auth.NewTokenIssuer(
		[]byte(envOr("JWT_SECRET", "dev-only-insecure-secret")),
		envDuration("SESSION_TTL", time.Hour),
		envDuration("SESSION_REMEMBER_TTL", 720*time.Hour),
	)

	handler := http.NewHandler(
		accountService,
		customerService,
		productService,
		orderService,
		cartService,
		uploadService,
		dashboardService,
		issuer,
		redisClient,
	)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = strings.Split(origins, ",")
		cfg.AllowCredentials = true
		r.Use(cors.New(cfg))
	}

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
