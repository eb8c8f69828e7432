package promotion

import (
	"context"
)

// Repository 促销仓储接口
type Repository interface {
	// Create 创建促销
	Create(ctx context.Context, p *Promotion) error

	// FindByID 根据ID查找促销
	FindByID(ctx context.Context, id uint) (*Promotion, error)

	// ListCurrentByLineID 查询某产品线当前生效的促销
	ListCurrentByLineID(ctx context.Context, lineID uint) ([]*Promotion, error)

	// Deactivate 停用促销
	Deactivate(ctx context.Context, id uint) error
}
