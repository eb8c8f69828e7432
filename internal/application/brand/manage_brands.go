package brand

import (
	"context"
	"strings"

	"github.com/xiebiao/autoparts/internal/domain/brand"
)

// ManageBrandsUseCase 品牌/产品线管理用例
// 基础数据维护，低频写、无缓存依赖，直接落库
type ManageBrandsUseCase struct {
	brandRepo brand.Repository
}

// NewManageBrandsUseCase 创建品牌管理用例
func NewManageBrandsUseCase(brandRepo brand.Repository) *ManageBrandsUseCase {
	return &ManageBrandsUseCase{brandRepo: brandRepo}
}

// BrandItem 品牌DTO
type BrandItem struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Active  bool   `json:"active"`
}

// LineItem 产品线DTO
type LineItem struct {
	ID      uint   `json:"id"`
	BrandID uint   `json:"brand_id"`
	Name    string `json:"name"`
	Active  bool   `json:"active"`
}

// CreateBrand 创建品牌
func (uc *ManageBrandsUseCase) CreateBrand(ctx context.Context, name, country string) (*BrandItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, brand.ErrInvalidName
	}

	b := brand.NewBrand(strings.TrimSpace(name), strings.TrimSpace(country))
	if err := uc.brandRepo.CreateBrand(ctx, b); err != nil {
		return nil, err
	}

	return &BrandItem{ID: b.ID, Name: b.Name, Country: b.Country, Active: b.Active}, nil
}

// ListBrands 查询品牌列表
func (uc *ManageBrandsUseCase) ListBrands(ctx context.Context, onlyActive bool) ([]*BrandItem, error) {
	brands, err := uc.brandRepo.ListBrands(ctx, onlyActive)
	if err != nil {
		return nil, err
	}

	items := make([]*BrandItem, len(brands))
	for i, b := range brands {
		items[i] = &BrandItem{ID: b.ID, Name: b.Name, Country: b.Country, Active: b.Active}
	}
	return items, nil
}

// CreateLine 在品牌下创建产品线
func (uc *ManageBrandsUseCase) CreateLine(ctx context.Context, brandID uint, name string) (*LineItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, brand.ErrInvalidName
	}

	// 父品牌必须存在
	if _, err := uc.brandRepo.FindBrandByID(ctx, brandID); err != nil {
		return nil, err
	}

	l := brand.NewProductLine(brandID, strings.TrimSpace(name))
	if err := uc.brandRepo.CreateLine(ctx, l); err != nil {
		return nil, err
	}

	return &LineItem{ID: l.ID, BrandID: l.BrandID, Name: l.Name, Active: l.Active}, nil
}

// ListLines 查询某品牌下的产品线
func (uc *ManageBrandsUseCase) ListLines(ctx context.Context, brandID uint) ([]*LineItem, error) {
	lines, err := uc.brandRepo.ListLinesByBrandID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	items := make([]*LineItem, len(lines))
	for i, l := range lines {
		items[i] = &LineItem{ID: l.ID, BrandID: l.BrandID, Name: l.Name, Active: l.Active}
	}
	return items, nil
}
