//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire在编译期生成依赖组装代码，零运行时开销、类型安全
// 2. 运行 `wire gen ./cmd/api` 生成wire_gen.go
// 3. main.go当前使用手动注入，两者组装的依赖链完全一致
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewProductRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Build(): 告诉Wire如何组装依赖链

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbrand "github.com/xiebiao/autoparts/internal/application/brand"
	appfile "github.com/xiebiao/autoparts/internal/application/file"
	appmerchant "github.com/xiebiao/autoparts/internal/application/merchant"
	appnotification "github.com/xiebiao/autoparts/internal/application/notification"
	apppricing "github.com/xiebiao/autoparts/internal/application/pricing"
	appproduct "github.com/xiebiao/autoparts/internal/application/product"
	apppromotion "github.com/xiebiao/autoparts/internal/application/promotion"
	appstock "github.com/xiebiao/autoparts/internal/application/stock"
	appuser "github.com/xiebiao/autoparts/internal/application/user"
	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/merchant"
	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/internal/domain/stock"
	"github.com/xiebiao/autoparts/internal/domain/user"
	"github.com/xiebiao/autoparts/internal/infrastructure/config"
	merchantclient "github.com/xiebiao/autoparts/internal/infrastructure/merchant"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/autoparts/internal/infrastructure/storage"
	"github.com/xiebiao/autoparts/internal/interface/http/handler"
	"github.com/xiebiao/autoparts/internal/interface/http/middleware"
	"github.com/xiebiao/autoparts/pkg/jwt"
	"github.com/xiebiao/autoparts/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,          // 加载配置文件
	mysql.NewDB,          // 创建MySQL连接
	redis.NewClient,      // 创建Redis连接
	merchantclient.NewClient,
	storage.NewLocalStore,
	providePublisher,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewProductRepository,
	mysql.NewPriceRepository,
	mysql.NewStockRepository,
	mysql.NewBrandRepository,
	mysql.NewPromotionRepository,
	mysql.NewFileRepository,
	mysql.NewNotificationRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
// catalog组件的TTL参数来自Config，需要自定义Provider
var domainSet = wire.NewSet(
	user.NewService,
	product.NewService,
	pricing.NewService,
	provideResolver,
	provideAssembler,
	catalog.NewInvalidator,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appproduct.NewCreateProductUseCase,
	appproduct.NewUpdateProductUseCase,
	appproduct.NewListProductsUseCase,
	appproduct.NewGetProductInfoUseCase,
	appproduct.NewBulkUpdateStatusUseCase,
	apppricing.NewRecordPriceUseCase,
	apppricing.NewPriceHistoryUseCase,
	appstock.NewAdjustStockUseCase,
	appstock.NewStockLedgerUseCase,
	apppromotion.NewCreatePromotionUseCase,
	apppromotion.NewDeactivatePromotionUseCase,
	appbrand.NewManageBrandsUseCase,
	appfile.NewUploadFileUseCase,
	provideSyncProductsUseCase,
	appnotification.NewListNotificationsUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideCacheStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewProductHandler,
	handler.NewPricingHandler,
	handler.NewStockHandler,
	handler.NewPromotionHandler,
	handler.NewBrandHandler,
	handler.NewFileHandler,
	handler.NewNotificationHandler,
	handler.NewMerchantHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideCacheStore 从Redis客户端创建派生值缓存
func provideCacheStore(client *goredis.Client) catalog.Cache {
	return redis.NewCacheStore(client)
}

// providePublisher 创建MQ发布方
// 注意：这里与main.go的降级策略不同，Wire版本连不上MQ直接失败
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideResolver 从配置提取TTL创建派生值解析器
func provideResolver(
	cache catalog.Cache,
	priceRepo pricing.Repository,
	stockRepo stock.Repository,
	cfg *config.Config,
) *catalog.Resolver {
	return catalog.NewResolver(cache, priceRepo, stockRepo, cfg.Cache.PriceTTL, cfg.Cache.StockTTL)
}

// provideAssembler 从配置提取TTL创建聚合信息组装器
func provideAssembler(
	cache catalog.Cache,
	productRepo product.Repository,
	resolver *catalog.Resolver,
	cfg *config.Config,
) *catalog.Assembler {
	return catalog.NewAssembler(cache, productRepo, resolver, cfg.Cache.InfoTTL)
}

// provideSyncProductsUseCase 从配置提取currency/siteURL创建同步用例
func provideSyncProductsUseCase(
	productRepo product.Repository,
	assembler *catalog.Assembler,
	merchantAPI merchant.CatalogAPI,
	cfg *config.Config,
) *appmerchant.SyncProductsUseCase {
	return appmerchant.NewSyncProductsUseCase(
		productRepo, assembler, merchantAPI, cfg.Merchant.Currency, cfg.Merchant.SiteURL)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	pricingHandler *handler.PricingHandler,
	stockHandler *handler.StockHandler,
	promotionHandler *handler.PromotionHandler,
	brandHandler *handler.BrandHandler,
	fileHandler *handler.FileHandler,
	notificationHandler *handler.NotificationHandler,
	merchantHandler *handler.MerchantHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())

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

	return r
}

// InitializeApp 初始化整个应用
// Wire会按正确的顺序调用所有Provider，生成wire_gen.go
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)

	return nil, nil
}
