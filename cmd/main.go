package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Infraestrutura e utilitários
	"storefront/config"
	_ "storefront/docs" // Registra a especificação servida em /swagger/
	"storefront/internal/pkg/cache"
	"storefront/internal/pkg/database"
	"storefront/internal/pkg/events"
	"storefront/internal/pkg/logger"
	"storefront/internal/pkg/metrics"
	"storefront/internal/pkg/middleware"
	"storefront/internal/pkg/token"

	// Camadas para Injeção de Dependências
	"storefront/internal/api/category"
	"storefront/internal/api/company"
	"storefront/internal/api/order"
	"storefront/internal/api/product"
	"storefront/internal/api/router"
	"storefront/internal/api/stock"
	"storefront/internal/api/user"
	"storefront/internal/repository/categoryrepo"
	"storefront/internal/repository/companyrepo"
	"storefront/internal/repository/orderrepo"
	"storefront/internal/repository/productrepo"
	"storefront/internal/repository/stockrepo"
	"storefront/internal/repository/userrepo"
	"storefront/internal/service/categoryservice"
	"storefront/internal/service/companyservice"
	"storefront/internal/service/orderservice"
	"storefront/internal/service/productservice"
	"storefront/internal/service/stockservice"
	"storefront/internal/service/userservice"
)

// @title Storefront API
// @version 1.0
// @description Catálogo multi-empresa e ciclo de vida de pedidos com validação de estoque.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	// 0. Variáveis de ambiente (.env). Sem o arquivo seguimos só com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Inicializando serviço storefront...", map[string]interface{}{"env": cfg.Environment})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL, database.PoolConfig{
		MaxOpenConns: cfg.DBMaxOpenConns,
		MaxIdleConns: cfg.DBMaxIdleConns,
	})
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	log.Info("Conexão PostgreSQL estabelecida.", nil)
	txManager := database.NewTxManager(db)

	// B. Cache (Redis). Opcional: sem ele não há cache de produtos nem rate limit.
	var cacheClient cache.Client
	redisClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.CacheTimeout)
	if err != nil {
		log.Warn("Redis indisponível; seguindo sem cache e sem rate limit.", map[string]interface{}{"error": err.Error()})
		redisClient.Close()
	} else {
		cacheClient = redisClient
		defer redisClient.Close()
		log.Info("Conexão Redis estabelecida.", nil)
	}

	// C. Eventos de pedido (Kafka). Opcional.
	var publisher orderservice.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventTopic, log)
		if err != nil {
			log.Fatal("Falha ao criar o publicador de eventos.", err)
		}
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info("Publicador Kafka inicializado.", map[string]interface{}{"topic": cfg.OrderEventTopic})
	}

	// 3. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler

	// A. Repositórios
	productRepo := productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
	stockRepo := stockrepo.NewStockRepository(db, cacheClient, cfg.DBTimeout, log)
	companyRepo := companyrepo.NewCompanyRepository(db, cfg.DBTimeout, log)
	categoryRepo := categoryrepo.NewCategoryRepository(db, cfg.DBTimeout, log)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	orderRepo := orderrepo.NewOrderRepository(db, cfg.DBTimeout, log)
	log.Debug("Repositórios inicializados.", nil)

	// B. Serviços
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	stockSvc := stockservice.NewService(stockRepo, log)
	productSvc := productservice.NewService(productRepo, companyRepo, categoryRepo, log)
	companySvc := companyservice.NewService(companyRepo, log)
	categorySvc := categoryservice.NewService(categoryRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc, log)
	orderSvc := orderservice.NewService(orderRepo, stockRepo, stockSvc, userRepo, txManager, log,
		orderservice.WithPublisher(publisher),
		orderservice.WithMetrics(metrics.NewOrderMetrics(nil)),
	)
	log.Debug("Serviços inicializados.", nil)

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userSvc.EnsureAdmin(bootCtx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal("Falha ao criar o administrador inicial.", err)
	}
	cancelBoot()

	// C. Handlers
	handlers := router.Handlers{
		Product:  product.NewHandler(productSvc, log),
		Stock:    stock.NewHandler(stockSvc, log),
		User:     user.NewHandler(userSvc, log),
		Company:  company.NewHandler(companySvc, log),
		Category: category.NewHandler(categorySvc, log),
		Order:    order.NewHandler(orderSvc, log),
	}

	// 4. Roteador e Servidor
	var limiter func(http.Handler) http.Handler
	if cacheClient != nil {
		limiter = middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod, log)
	}
	r := router.NewRouter(handlers, tokenSvc, limiter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor storefront ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
