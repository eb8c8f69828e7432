package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/autoparts/internal/domain/product"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// productRepository 商品仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/product/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如SKU重复),转换为业务错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) product.Repository {
	return &productRepository{db: db}
}

// Create 创建商品
func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	// 1. 领域实体 → GORM模型
	model := &ProductModel{
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		BrandID:     p.BrandID,
		LineID:      p.LineID,
		OEMCode:     p.OEMCode,
		Active:      p.Active,
	}

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		// 检查是否为SKU重复错误
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "创建商品失败")
	}

	// 3. 回填自增ID
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找商品
func (r *productRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// FindBySKU 根据SKU查找商品
func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	var model ProductModel
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// Update 更新商品信息
func (r *productRepository) Update(ctx context.Context, p *product.Product) error {
	model := &ProductModel{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		BrandID:     p.BrandID,
		LineID:      p.LineID,
		OEMCode:     p.OEMCode,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}

	// 使用Save更新所有字段
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return product.ErrSKUDuplicate
		}
		return apperrors.Wrap(err, "更新商品失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除商品(软删除)
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ProductModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除商品失败")
	}

	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}

	return nil
}

// List 分页查询商品列表
func (r *productRepository) List(ctx context.Context, params product.ListParams) ([]*product.Product, int64, error) {
	var models []ProductModel
	var total int64

	// 构建查询
	query := r.db.WithContext(ctx).Model(&ProductModel{})

	// 关键词搜索(搜索名称、SKU、原厂件号)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR sku LIKE ? OR oem_code LIKE ?", keyword, keyword, keyword)
	}

	// 按品牌/产品线过滤
	if params.BrandID > 0 {
		query = query.Where("brand_id = ?", params.BrandID)
	}
	if params.LineID > 0 {
		query = query.Where("line_id = ?", params.LineID)
	}

	// 查询总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品总数失败")
	}

	// 排序
	switch params.SortBy {
	case "name_asc":
		query = query.Order("name ASC")
	case "created_at_desc":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("created_at DESC") // 默认按创建时间降序
	}

	// 分页
	offset := (params.Page - 1) * params.PageSize
	query = query.Limit(params.PageSize).Offset(offset)

	// 查询数据
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询商品列表失败")
	}

	// 转换为领域实体
	products := make([]*product.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}

	return products, total, nil
}

// productLookupRow 关联查询的扫描目标
type productLookupRow struct {
	Brand          string
	Line           string
	PrincipalImage string
}

// FindLookups 一次join查出商品的品牌、产品线、主图
// 设计说明:
// 1. LEFT JOIN保证无主图时仍返回一行（PrincipalImage为空串）
// 2. 先确认商品存在，避免join结果为空时误报
func (r *productRepository) FindLookups(ctx context.Context, id uint) (*product.Lookups, error) {
	var row productLookupRow
	err := r.db.WithContext(ctx).
		Table("products p").
		Select("b.name AS brand, l.name AS line, COALESCE(f.url, '') AS principal_image").
		Joins("JOIN brands b ON b.id = p.brand_id").
		Joins("JOIN product_lines l ON l.id = p.line_id").
		Joins("LEFT JOIN files f ON f.product_id = p.id AND f.principal = ?", true).
		Where("p.id = ? AND p.deleted_at IS NULL", id).
		Take(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrProductNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品关联信息失败")
	}

	return &product.Lookups{
		Brand:          row.Brand,
		Line:           row.Line,
		PrincipalImage: row.PrincipalImage,
	}, nil
}

// ListStatusByIDs 查询一组商品当前的上架状态
// 批量更新前记录原状态，用于失败补偿
func (r *productRepository) ListStatusByIDs(ctx context.Context, ids []uint) (map[uint]bool, error) {
	if len(ids) == 0 {
		return map[uint]bool{}, nil
	}

	var rows []struct {
		ID     uint
		Active bool
	}

	db := r.getDB(ctx)
	err := db.Model(&ProductModel{}).
		Select("id, active").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品状态失败")
	}

	status := make(map[uint]bool, len(rows))
	for _, row := range rows {
		status[row.ID] = row.Active
	}
	return status, nil
}

// UpdateStatusByIDs 批量更新上架状态，返回受影响行数
// 注意:必须使用getDB(ctx)参与事务（批量操作走Saga补偿）
func (r *productRepository) UpdateStatusByIDs(ctx context.Context, ids []uint, active bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	db := r.getDB(ctx)
	result := db.Model(&ProductModel{}).
		Where("id IN ?", ids).
		Update("active", active)

	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "批量更新商品状态失败")
	}

	return result.RowsAffected, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *product.Product {
	return &product.Product{
		ID:          model.ID,
		SKU:         model.SKU,
		Name:        model.Name,
		Description: model.Description,
		BrandID:     model.BrandID,
		LineID:      model.LineID,
		OEMCode:     model.OEMCode,
		Active:      model.Active,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db
}
