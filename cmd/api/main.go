package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	appbrand "github.com/xiebiao/autoparts/internal/application/brand"
	"github.com/xiebiao/autoparts/internal/application/events"
	appfile "github.com/xiebiao/autoparts/internal/application/file"
	appmerchant "github.com/xiebiao/autoparts/internal/application/merchant"
	appnotification "github.com/xiebiao/autoparts/internal/application/notification"
	apppricing "github.com/xiebiao/autoparts/internal/application/pricing"
	appproduct "github.com/xiebiao/autoparts/internal/application/product"
	apppromotion "github.com/xiebiao/autoparts/internal/application/promotion"
	appstock "github.com/xiebiao/autoparts/internal/application/stock"
	appuser "github.com/xiebiao/autoparts/internal/application/user"
	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/internal/domain/user"
	"github.com/xiebiao/autoparts/internal/infrastructure/config"
	merchantclient "github.com/xiebiao/autoparts/internal/infrastructure/merchant"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/autoparts/internal/infrastructure/storage"
	"github.com/xiebiao/autoparts/internal/interface/http/handler"
	"github.com/xiebiao/autoparts/internal/interface/http/middleware"
	"github.com/xiebiao/autoparts/pkg/jwt"
	"github.com/xiebiao/autoparts/pkg/metrics"
	"github.com/xiebiao/autoparts/pkg/mq"
	"github.com/xiebiao/autoparts/pkg/response"
	"github.com/xiebiao/autoparts/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供等价的Wire版本，运行wire gen可生成wire_gen.go）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())
	fmt.Printf("  - 缓存TTL: price=%s stock=%s info=%s\n",
		cfg.Cache.PriceTTL, cfg.Cache.StockTTL, cfg.Cache.InfoTTL)

	// 2. 初始化可观测性
	metrics.InitMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer("autoparts-api", cfg.Tracing.CollectorURL)
		if err != nil {
			log.Fatalf("初始化Tracer失败: %v", err)
		}
		defer shutdownTracer(context.Background())
	}

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 5. 初始化MQ（不可用时降级运行：发布方为nil，通知消费者不启动）
	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		log.Printf("⚠ MQ不可用，事件发布降级关闭: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// 6. 依赖注入（手动组装）
	// Repository ← Service/Resolver ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	priceRepo := mysql.NewPriceRepository(db)
	stockRepo := mysql.NewStockRepository(db)
	brandRepo := mysql.NewBrandRepository(db)
	promotionRepo := mysql.NewPromotionRepository(db)
	fileRepo := mysql.NewFileRepository(db)
	notificationRepo := mysql.NewNotificationRepository(db)
	txManager := mysql.NewTxManager(db)

	cacheStore := redis.NewCacheStore(redisClient)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	merchantAPI := merchantclient.NewClient(cfg)
	blobStore, err := storage.NewLocalStore(cfg)
	if err != nil {
		log.Fatalf("初始化文件存储失败: %v", err)
	}

	// 领域层
	userService := user.NewService(userRepo)
	productService := product.NewService(productRepo)
	priceService := pricing.NewService(priceRepo)

	resolver := catalog.NewResolver(cacheStore, priceRepo, stockRepo, cfg.Cache.PriceTTL, cfg.Cache.StockTTL)
	invalidator := catalog.NewInvalidator(cacheStore)
	assembler := catalog.NewAssembler(cacheStore, productRepo, resolver, cfg.Cache.InfoTTL)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)

	createProductUseCase := appproduct.NewCreateProductUseCase(productService, brandRepo)
	updateProductUseCase := appproduct.NewUpdateProductUseCase(productService, invalidator)
	listProductsUseCase := appproduct.NewListProductsUseCase(productService)
	productInfoUseCase := appproduct.NewGetProductInfoUseCase(assembler)
	bulkStatusUseCase := appproduct.NewBulkUpdateStatusUseCase(productRepo, invalidator, merchantAPI)

	recordPriceUseCase := apppricing.NewRecordPriceUseCase(priceService, productRepo, invalidator, publisher)
	priceHistoryUseCase := apppricing.NewPriceHistoryUseCase(priceService)

	adjustStockUseCase := appstock.NewAdjustStockUseCase(stockRepo, productRepo, txManager, invalidator, publisher)
	stockLedgerUseCase := appstock.NewStockLedgerUseCase(stockRepo)

	createPromotionUseCase := apppromotion.NewCreatePromotionUseCase(promotionRepo, brandRepo, invalidator)
	deactivatePromotionUseCase := apppromotion.NewDeactivatePromotionUseCase(promotionRepo, invalidator)

	manageBrandsUseCase := appbrand.NewManageBrandsUseCase(brandRepo)
	uploadFileUseCase := appfile.NewUploadFileUseCase(fileRepo, productRepo, blobStore, txManager, invalidator)
	syncProductsUseCase := appmerchant.NewSyncProductsUseCase(
		productRepo, assembler, merchantAPI, cfg.Merchant.Currency, cfg.Merchant.SiteURL)
	listNotificationsUseCase := appnotification.NewListNotificationsUseCase(notificationRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	productHandler := handler.NewProductHandler(
		createProductUseCase, updateProductUseCase, listProductsUseCase, productInfoUseCase, bulkStatusUseCase)
	pricingHandler := handler.NewPricingHandler(recordPriceUseCase, priceHistoryUseCase)
	stockHandler := handler.NewStockHandler(adjustStockUseCase, stockLedgerUseCase)
	promotionHandler := handler.NewPromotionHandler(createPromotionUseCase, deactivatePromotionUseCase)
	brandHandler := handler.NewBrandHandler(manageBrandsUseCase)
	fileHandler := handler.NewFileHandler(uploadFileUseCase)
	notificationHandler := handler.NewNotificationHandler(listNotificationsUseCase)
	merchantHandler := handler.NewMerchantHandler(syncProductsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 启动MQ通知消费者
	// pkg/mq的handler签名只有消息体，拿不到routing key，
	// 所以每类事件绑定独立队列，各自一个消费者goroutine
	if publisher != nil {
		notificationConsumer := appnotification.NewConsumer(notificationRepo)
		startConsumer(ctx, cfg, "autoparts.notifications.price",
			events.RoutingPriceChanged, notificationConsumer.HandlePriceChanged)
		startConsumer(ctx, cfg, "autoparts.notifications.stock",
			events.RoutingStockAdjusted, notificationConsumer.HandleStockAdjusted)
		startConsumer(ctx, cfg, "autoparts.notifications.low",
			events.RoutingStockLow, notificationConsumer.HandleStockLow)
	}

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, routeHandlers{
		user:         userHandler,
		product:      productHandler,
		pricing:      pricingHandler,
		stock:        stockHandler,
		promotion:    promotionHandler,
		brand:        brandHandler,
		file:         fileHandler,
		notification: notificationHandler,
		merchant:     merchantHandler,
		auth:         authMiddleware,
	})

	// 10. 启动服务（监听SIGINT/SIGTERM优雅退出）
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
		fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("收到退出信号，正在关闭...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("服务关闭异常: %v", err)
	}
}

// startConsumer 为单个routing key启动通知消费者goroutine
func startConsumer(ctx context.Context, cfg *config.Config, queue, routingKey string, h func([]byte) error) {
	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, "topic", queue, []string{routingKey})
	if err != nil {
		log.Printf("⚠ 消费者启动失败 queue=%s: %v", queue, err)
		return
	}

	go func() {
		defer consumer.Close()
		if err := consumer.Consume(ctx, h); err != nil {
			log.Printf("⚠ 消费者退出 queue=%s: %v", queue, err)
		}
	}()
}

// routeHandlers 路由注册所需的全部处理器
type routeHandlers struct {
	user         *handler.UserHandler
	product      *handler.ProductHandler
	pricing      *handler.PricingHandler
	stock        *handler.StockHandler
	promotion    *handler.PromotionHandler
	brand        *handler.BrandHandler
	file         *handler.FileHandler
	notification *handler.NotificationHandler
	merchant     *handler.MerchantHandler
	auth         *middleware.AuthMiddleware
}

// registerRoutes 注册路由
// 约定：读接口公开，写接口需要登录
func registerRoutes(r *gin.Engine, h routeHandlers) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 账号模块（公开接口）
		users := v1.Group("/users")
		{
			users.POST("/register", h.user.Register)
			users.POST("/login", h.user.Login)
			users.POST("/logout", h.auth.RequireAuth(), h.user.Logout)
		}

		// 品牌/产品线模块
		brands := v1.Group("/brands")
		{
			brands.GET("", h.brand.ListBrands)
			brands.GET("/:id/lines", h.brand.ListLines)
			brands.POST("", h.auth.RequireAuth(), h.brand.CreateBrand)
			brands.POST("/:id/lines", h.auth.RequireAuth(), h.brand.CreateLine)
		}

		// 商品模块
		products := v1.Group("/products")
		{
			// 读接口公开
			products.GET("", h.product.ListProducts)
			products.GET("/:id/info", h.product.GetProductInfo)

			// 写接口需要登录
			authed := products.Group("", h.auth.RequireAuth())
			{
				authed.POST("", h.product.CreateProduct)
				authed.PUT("/:id", h.product.UpdateProduct)
				authed.POST("/bulk-status", h.product.BulkUpdateStatus)

				// 价格（调价+历史）
				authed.POST("/:id/price", h.pricing.RecordPrice)
				authed.GET("/:id/price-history", h.pricing.PriceHistory)

				// 库存（变动+台账）
				authed.POST("/:id/stock", h.stock.AdjustStock)
				authed.GET("/:id/stock-ledger", h.stock.StockLedger)

				// 图片
				authed.POST("/:id/files", h.file.UploadFile)
			}
		}

		// 促销模块（需要登录）
		promotions := v1.Group("/promotions")
		promotions.Use(h.auth.RequireAuth())
		{
			promotions.POST("", h.promotion.CreatePromotion)
			promotions.DELETE("/:id", h.promotion.DeactivatePromotion)
		}

		// 通知模块（需要登录）
		notifications := v1.Group("/notifications")
		notifications.Use(h.auth.RequireAuth())
		{
			notifications.GET("", h.notification.ListNotifications)
			notifications.POST("/:id/read", h.notification.MarkRead)
		}

		// Merchant同步（需要登录）
		v1.POST("/merchant/sync", h.auth.RequireAuth(), h.merchant.SyncProducts)
	}
}
