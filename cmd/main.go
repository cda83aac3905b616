package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelOrderHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/cancel_order"
	createOrderHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/create_order"
	getOrderHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/get_order"
	getOutletConfigHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/get_outlet_config"
	getOutletOrdersHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/get_outlet_orders"
	getOutletSlotsHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/get_outlet_slots"
	getUserOrdersHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/get_user_orders"
	updateOrderStatusHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/update_order_status"
	updateOutletConfigHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/update_outlet_config"
	updateOutletStatusHandler "github.com/krtkm27/ZEats-OrderService/internal/api/handlers/update_outlet_status"
	"github.com/krtkm27/ZEats-OrderService/internal/api/middleware"
	"github.com/krtkm27/ZEats-OrderService/internal/config"
	"github.com/krtkm27/ZEats-OrderService/internal/infra/slotcounter"
	cartRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/cart"
	menuItemRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/menuitem"
	notificationRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/notification"
	orderRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/order"
	outletRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/outlet"
	userRepo "github.com/krtkm27/ZEats-OrderService/internal/infra/storage/user"
	"github.com/krtkm27/ZEats-OrderService/internal/integrations/pushservice"
	ordersService "github.com/krtkm27/ZEats-OrderService/internal/service/orders"
	outletConfigService "github.com/krtkm27/ZEats-OrderService/internal/service/outletconfig"
	createOrderUC "github.com/krtkm27/ZEats-OrderService/internal/usecase/create_order"
	generateSlotsUC "github.com/krtkm27/ZEats-OrderService/internal/usecase/generate_slots"
	updateOrderStatusUC "github.com/krtkm27/ZEats-OrderService/internal/usecase/update_order_status"
	"github.com/krtkm27/ZEats-OrderService/pkg/dbmetrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/logger"
	"github.com/krtkm27/ZEats-OrderService/pkg/metrics"
	"github.com/krtkm27/ZEats-OrderService/pkg/simpletxmanager"
	"github.com/krtkm27/ZEats-OrderService/pkg/txmanager"
	"github.com/krtkm27/ZEats-OrderService/pkg/types"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ZEats-OrderService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Счетчики занятости слотов поверх Redis (если включены)
	type SlotCounter interface {
		Reserve(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString, max int) error
		Release(ctx context.Context, outletID int64, serviceDate time.Time, slot types.TimeString) error
	}
	var slotCounter SlotCounter = slotcounter.Noop{}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Недоступный Redis не валит сервис, лимиты слотов деградируют мягко
			log.Warn("Failed to ping redis, slot capacity checks degraded: %v", err)
		}
		defer redisClient.Close()

		slotCounter = slotcounter.New(redisClient, log)
		log.Info("Slot counters enabled (redis=%s, db=%d)", cfg.Redis.Address, cfg.Redis.DB)
	} else {
		log.Info("Slot counters disabled, pickup slots are uncapped")
	}

	// Push-шлюз (если включен)
	type PushSender interface {
		SendPush(ctx context.Context, token, title, body string, data map[string]any) error
	}
	var pushSender PushSender = pushservice.NoopClient{}

	if cfg.Push.Enabled {
		pushSender = pushservice.NewClient(
			cfg.Push.URL,
			time.Duration(cfg.Push.Timeout)*time.Second,
			log,
		)
		log.Info("Push client initialized (url=%s, timeout=%ds)", cfg.Push.URL, cfg.Push.Timeout)
	} else {
		log.Info("Push notifications disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		orderRepository        *orderRepo.Repository
		outletRepository       *outletRepo.Repository
		menuItemRepository     *menuItemRepo.Repository
		userRepository         *userRepo.Repository
		cartRepository         *cartRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		orderRepository = orderRepo.NewRepository(wrappedDB)
		outletRepository = outletRepo.NewRepository(wrappedDB)
		menuItemRepository = menuItemRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		cartRepository = cartRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		orderRepository = orderRepo.NewRepository(db)
		outletRepository = outletRepo.NewRepository(db)
		menuItemRepository = menuItemRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		cartRepository = cartRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	orderSvc := ordersService.NewService(
		orderRepository,
		outletRepository,
		slotCounter,
		log,
	)
	outletConfigSvc := outletConfigService.NewService(
		outletRepository,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		outletRepository,
		orderRepository,
		log,
	)

	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		outletRepository,
		menuItemRepository,
		userRepository,
		cartRepository,
		notificationRepository,
		slotCounter,
		pushSender,
		txMgr,
		log,
	)

	updateOrderStatusUseCase := updateOrderStatusUC.NewUseCase(
		orderRepository,
		userRepository,
		notificationRepository,
		pushSender,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getOutletSlots := getOutletSlotsHandler.NewHandler(generateSlotsUseCase, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	updateOrderStatus := updateOrderStatusHandler.NewHandler(updateOrderStatusUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(orderSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(orderSvc, log)
	getOutletOrders := getOutletOrdersHandler.NewHandler(orderSvc, log)
	getOutletConfig := getOutletConfigHandler.NewHandler(outletConfigSvc, log)
	updateOutletConfig := updateOutletConfigHandler.NewHandler(outletConfigSvc, log)
	updateOutletStatus := updateOutletStatusHandler.NewHandler(outletConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов самовывоза заведения
	api.HandleFunc("/outlets/{outletId}/slots", getOutletSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Заказы ---
	// Создание заказа
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// Получение заказа по номеру
	protected.HandleFunc("/orders/{orderNumber}", getOrder.Handle).Methods(http.MethodGet)

	// Смена статуса заказа (для операторов заведения)
	protected.HandleFunc("/orders/{orderNumber}/status", updateOrderStatus.Handle).Methods(http.MethodPatch)

	// Отмена заказа покупателем
	protected.HandleFunc("/orders/{orderNumber}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)

	// История заказов пользователя
	protected.HandleFunc("/users/{userId}/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// --- Управление заведением (для операторов) ---
	// Лента заказов заведения
	protected.HandleFunc("/outlets/{outletId}/orders", getOutletOrders.Handle).Methods(http.MethodGet)

	// Настройки слотов и расписания заведения
	protected.HandleFunc("/outlets/{outletId}/config", getOutletConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/outlets/{outletId}/config", updateOutletConfig.Handle).Methods(http.MethodPut)

	// Мастер-выключатель приема заказов
	protected.HandleFunc("/outlets/{outletId}/status", updateOutletStatus.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
