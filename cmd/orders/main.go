package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"go-shop/internal/orders/adapters"
	"go-shop/internal/orders/application"
	"go-shop/internal/orders/infrastructure"
	"go-shop/internal/orders/ports"
	"go-shop/pkg/auth"
	"go-shop/pkg/config"
	"go-shop/pkg/db"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/metrics"
	"go-shop/pkg/middleware"
	"go-shop/pkg/rabbitmq"
	tlspkg "go-shop/pkg/tls"
)

func main() {
	// Load configuration
	cfg := config.LoadForService("ORDERS")
	cfg.DBHost = getEnvOrDefault("ORDERS_DB_HOST", "localhost")
	cfg.DBPort = getEnvOrDefault("ORDERS_DB_PORT", "5432")
	cfg.DBName = getEnvOrDefault("ORDERS_DB_NAME", "orders_db")
	cfg.HTTPPort = getEnvOrDefault("ORDERS_HTTP_PORT", "8003")

	// Initialize logger
	log := logger.NewWithFormat("orders-service", cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	log.Info("starting orders service")

	// Connect to database
	dbConn, err := db.NewConnection(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Timeout:  cfg.DBTimeout,
	})
	if err != nil {
		log.Fatal("failed to connect to database: " + err.Error())
	}
	log.Info("connected to database")

	// Initialize repository and run migrations
	repo := adapters.NewPostgresOrderRepository(dbConn)
	if err := repo.Migrate(); err != nil {
		log.Fatal("failed to migrate database: " + err.Error())
	}

	// Outbound HTTP client (shared timeout/TLS policy)
	httpClient, err := buildHTTPClient(cfg)
	if err != nil {
		log.Fatal("failed to build outbound HTTP client: " + err.Error())
	}

	// Downstream clients
	productClient := adapters.NewHTTPProductClient(cfg.ProductsURL, httpClient)
	verifier := auth.NewHTTPClient(cfg.UsersURL, httpClient)

	// Connect to RabbitMQ
	var eventPublisher ports.EventPublisher
	rabbitConn, err := rabbitmq.NewConnection(cfg.RabbitMQURL, log)
	if err != nil {
		log.Warn("failed to connect to RabbitMQ, events will be disabled: " + err.Error())
	} else {
		defer rabbitConn.Close()

		// Setup publisher
		pub, err := rabbitmq.NewPublisher(rabbitConn, events.ExchangeOrders, log)
		if err != nil {
			log.Warn("failed to create publisher: " + err.Error())
		} else {
			eventPublisher = adapters.NewRabbitMQPublisher(pub, log)
		}

		// Setup consumer for InventoryAdjusted events
		consumer, err := adapters.NewInventoryAdjustedConsumer(rabbitConn, log)
		if err != nil {
			log.Warn("failed to create InventoryAdjusted consumer: " + err.Error())
		} else {
			if err := consumer.Start(context.Background()); err != nil {
				log.Warn("failed to start consumer: " + err.Error())
			}
		}
	}

	// Initialize use case
	useCase := application.NewOrderUseCase(repo, productClient, eventPublisher, log)

	// Start HTTP server
	serverMetrics := metrics.NewServerMetrics("orders")

	httpHandler := infrastructure.NewHTTPHandler(useCase)
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.TraceID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.CORS())
	router.Use(serverMetrics.Middleware())

	api := router.Group("/api/v1")
	httpHandler.RegisterRoutes(api, middleware.Auth(verifier))

	// Health check and metrics
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", metrics.Handler())

	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	}

	go func() {
		if err := serve(httpServer, cfg, log); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: " + err.Error())
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown error: " + err.Error())
	}

	log.Info("server stopped")
}

// serve starts the HTTP server, over TLS when enabled
func serve(server *http.Server, cfg *config.Config, log *logger.Logger) error {
	if cfg.TLSEnabled {
		tlsConfig, err := tlspkg.ServerConfig(cfg.TLSCertFile, cfg.TLSKeyFile, cfg.TLSCAFile, false)
		if err != nil {
			return err
		}
		server.Addr = ":" + cfg.HTTPSPort
		server.TLSConfig = tlsConfig
		log.Info("HTTPS server listening on " + server.Addr)
		return server.ListenAndServeTLS("", "")
	}

	log.Info("HTTP server listening on " + server.Addr)
	return server.ListenAndServe()
}

// buildHTTPClient builds the client used for downstream service calls
func buildHTTPClient(cfg *config.Config) (*http.Client, error) {
	client := &http.Client{Timeout: cfg.ClientTimeout}

	if cfg.TLSEnabled {
		tlsConfig, err := tlspkg.ClientConfig("", "", cfg.TLSCAFile)
		if err != nil {
			return nil, err
		}
		client.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}

	return client, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
