package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/autoparts/internal/domain/brand"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// brandRepository 品牌/产品线仓储实现(MySQL)
type brandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌仓储
func NewBrandRepository(db *gorm.DB) brand.Repository {
	return &brandRepository{db: db}
}

// CreateBrand 创建品牌
func (r *brandRepository) CreateBrand(ctx context.Context, b *brand.Brand) error {
	model := &BrandModel{
		Name:    b.Name,
		Country: b.Country,
		Active:  b.Active,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "品牌已存在")
		}
		return apperrors.Wrap(err, "创建品牌失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindBrandByID 根据ID查找品牌
func (r *brandRepository) FindBrandByID(ctx context.Context, id uint) (*brand.Brand, error) {
	var model BrandModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, brand.ErrBrandNotFound
		}
		return nil, apperrors.Wrap(err, "查询品牌失败")
	}

	return toBrandEntity(&model), nil
}

// ListBrands 查询全部品牌
func (r *brandRepository) ListBrands(ctx context.Context, onlyActive bool) ([]*brand.Brand, error) {
	var models []BrandModel
	query := r.db.WithContext(ctx).Order("name ASC")
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询品牌列表失败")
	}

	brands := make([]*brand.Brand, len(models))
	for i := range models {
		brands[i] = toBrandEntity(&models[i])
	}
	return brands, nil
}

// CreateLine 创建产品线
func (r *brandRepository) CreateLine(ctx context.Context, l *brand.ProductLine) error {
	model := &ProductLineModel{
		BrandID: l.BrandID,
		Name:    l.Name,
		Active:  l.Active,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建产品线失败")
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

// FindLineByID 根据ID查找产品线
func (r *brandRepository) FindLineByID(ctx context.Context, id uint) (*brand.ProductLine, error) {
	var model ProductLineModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, brand.ErrLineNotFound
		}
		return nil, apperrors.Wrap(err, "查询产品线失败")
	}

	return toLineEntity(&model), nil
}

// ListLinesByBrandID 查询某品牌下的产品线
func (r *brandRepository) ListLinesByBrandID(ctx context.Context, brandID uint) ([]*brand.ProductLine, error) {
	var models []ProductLineModel
	err := r.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询产品线列表失败")
	}

	lines := make([]*brand.ProductLine, len(models))
	for i := range models {
		lines[i] = toLineEntity(&models[i])
	}
	return lines, nil
}

// toBrandEntity GORM模型 → 领域实体
func toBrandEntity(model *BrandModel) *brand.Brand {
	return &brand.Brand{
		ID:        model.ID,
		Name:      model.Name,
		Country:   model.Country,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toLineEntity GORM模型 → 领域实体
func toLineEntity(model *ProductLineModel) *brand.ProductLine {
	return &brand.ProductLine{
		ID:        model.ID,
		BrandID:   model.BrandID,
		Name:      model.Name,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
