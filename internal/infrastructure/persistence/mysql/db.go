package mysql

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/autoparts/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 构建DSN连接字符串
	dsn := cfg.Database.DSN()

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BrandModel{},
		&ProductLineModel{},
		&ProductModel{},
		&PriceHistoryModel{},
		&AgencyStockModel{},
		&StockMovementModel{},
		&PromotionModel{},
		&FileModel{},
		&NotificationModel{},
	)
}

// UserModel GORM后台账号模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BrandModel GORM品牌模型
type BrandModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:品牌名"`
	Country   string    `gorm:"size:50;comment:国家"`
	Active    bool      `gorm:"default:true;comment:是否启用"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BrandModel) TableName() string {
	return "brands"
}

// ProductLineModel GORM产品线模型
type ProductLineModel struct {
	ID        uint      `gorm:"primaryKey"`
	BrandID   uint      `gorm:"index;not null;comment:所属品牌ID"`
	Name      string    `gorm:"size:100;not null;comment:产品线名"`
	Active    bool      `gorm:"default:true;comment:是否启用"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductLineModel) TableName() string {
	return "product_lines"
}

// ProductModel GORM商品模型
// 设计说明:
// 1. 商品行上没有价格和库存字段——价格从price_histories最新记录解析，
//    库存从agency_stocks求和解析，结果走Redis缓存
// 2. SKU有唯一索引，防止重复
// 3. 复合索引优化按品牌/产品线的列表查询
type ProductModel struct {
	ID          uint           `gorm:"primaryKey"`
	SKU         string         `gorm:"uniqueIndex;size:30;not null;comment:SKU编码"`
	Name        string         `gorm:"index:idx_search;size:200;not null;comment:商品名"` // 搜索索引
	Description string         `gorm:"type:text;comment:商品描述"`
	BrandID     uint           `gorm:"index:idx_list;not null;comment:品牌ID"` // 列表索引
	LineID      uint           `gorm:"index:idx_list;not null;comment:产品线ID"`
	OEMCode     string         `gorm:"index;size:50;comment:OEM原厂编码"`
	Active      bool           `gorm:"index;default:true;comment:是否上架"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// PriceHistoryModel GORM价格历史模型
// 设计说明:
// 1. 价格只追加不修改——当前价=最新一条记录
// 2. 金额使用decimal(12,2)，避免浮点数精度问题
// 3. (product_id, created_at DESC)复合索引支撑"最新一条"查询
type PriceHistoryModel struct {
	ID            uint            `gorm:"primaryKey"`
	ProductID     uint            `gorm:"index:idx_latest,priority:1;not null;comment:商品ID"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:售价"`
	MinFinalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:最低成交价"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(12,2);not null;comment:单位成本"`
	CreatedAt     time.Time       `gorm:"index:idx_latest,priority:2,sort:desc;comment:创建时间"`
}

// TableName 指定表名
func (PriceHistoryModel) TableName() string {
	return "price_histories"
}

// AgencyStockModel GORM门店库存模型
// 设计说明:
// 1. (product_id, agency_id)联合主键，一个商品在一个门店只有一行
// 2. Active标记门店是否参与可售库存汇总
type AgencyStockModel struct {
	ProductID uint      `gorm:"primaryKey;autoIncrement:false;comment:商品ID"`
	AgencyID  uint      `gorm:"primaryKey;autoIncrement:false;comment:门店ID"`
	Current   int       `gorm:"not null;default:0;comment:当前库存"`
	Active    bool      `gorm:"index;default:true;comment:门店是否参与汇总"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AgencyStockModel) TableName() string {
	return "agency_stocks"
}

// StockMovementModel GORM库存变动模型
// 每次变动记录变动前后的快照，形成可审计的台账
type StockMovementModel struct {
	ID            uint      `gorm:"primaryKey"`
	ProductID     uint      `gorm:"index:idx_ledger,priority:1;not null;comment:商品ID"`
	AgencyID      uint      `gorm:"index;not null;comment:门店ID"`
	Quantity      int       `gorm:"not null;comment:变动数量"`
	PreviousStock int       `gorm:"not null;comment:变动前库存"`
	CurrentStock  int       `gorm:"not null;comment:变动后库存"`
	Type          string    `gorm:"size:10;not null;comment:变动类型(IN/OUT/ADJUST)"`
	Reference     string    `gorm:"size:100;comment:业务参考号"`
	CreatedAt     time.Time `gorm:"index:idx_ledger,priority:2,sort:desc;comment:创建时间"`
}

// TableName 指定表名
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// PromotionModel GORM促销模型
type PromotionModel struct {
	ID          uint            `gorm:"primaryKey"`
	LineID      uint            `gorm:"index;not null;comment:产品线ID"`
	Name        string          `gorm:"size:100;not null;comment:活动名称"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2);not null;comment:折扣比例(0-100)"`
	StartsAt    time.Time       `gorm:"index;not null;comment:开始时间"`
	EndsAt      time.Time       `gorm:"index;not null;comment:结束时间"`
	Active      bool            `gorm:"index;default:true;comment:是否启用"`
	CreatedAt   time.Time       `gorm:"comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PromotionModel) TableName() string {
	return "promotions"
}

// FileModel GORM文件记录模型
type FileModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"index;not null;comment:商品ID"`
	ObjectKey string    `gorm:"uniqueIndex;size:100;not null;comment:存储对象键"`
	Name      string    `gorm:"size:255;not null;comment:原始文件名"`
	URL       string    `gorm:"size:500;not null;comment:访问地址"`
	Size      int64     `gorm:"not null;comment:文件大小(字节)"`
	Principal bool      `gorm:"index;default:false;comment:是否主图"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (FileModel) TableName() string {
	return "files"
}

// NotificationModel GORM通知模型
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	Kind      string    `gorm:"size:30;not null;comment:通知类型"`
	ProductID uint      `gorm:"index;not null;comment:商品ID"`
	Title     string    `gorm:"size:200;not null;comment:标题"`
	Body      string    `gorm:"type:text;comment:正文"`
	Read      bool      `gorm:"index;default:false;comment:是否已读"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}
