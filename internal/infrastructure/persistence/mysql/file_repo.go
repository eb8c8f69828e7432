package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/autoparts/internal/domain/file"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// fileRepository 文件记录仓储实现(MySQL)
type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建文件记录仓储
func NewFileRepository(db *gorm.DB) file.Repository {
	return &fileRepository{db: db}
}

// Create 创建文件记录
func (r *fileRepository) Create(ctx context.Context, rec *file.Record) error {
	model := &FileModel{
		ProductID: rec.ProductID,
		ObjectKey: rec.ObjectKey,
		Name:      rec.Name,
		URL:       rec.URL,
		Size:      rec.Size,
		Principal: rec.Principal,
	}

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建文件记录失败")
	}

	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找文件记录
func (r *fileRepository) FindByID(ctx context.Context, id uint) (*file.Record, error) {
	var model FileModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, file.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "查询文件记录失败")
	}

	return toFileEntity(&model), nil
}

// ListByProductID 查询商品的全部图片
func (r *fileRepository) ListByProductID(ctx context.Context, productID uint) ([]*file.Record, error) {
	var models []FileModel
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("principal DESC, created_at ASC"). // 主图排最前
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询商品图片失败")
	}

	records := make([]*file.Record, len(models))
	for i := range models {
		records[i] = toFileEntity(&models[i])
	}
	return records, nil
}

// FindPrincipalByProductID 查询商品主图
func (r *fileRepository) FindPrincipalByProductID(ctx context.Context, productID uint) (*file.Record, error) {
	var model FileModel
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND principal = ?", productID, true).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, file.ErrFileNotFound
		}
		return nil, apperrors.Wrap(err, "查询商品主图失败")
	}

	return toFileEntity(&model), nil
}

// ClearPrincipal 清除商品当前主图标记
// 设置新主图前调用，保证一个商品最多一张主图
func (r *fileRepository) ClearPrincipal(ctx context.Context, productID uint) error {
	db := r.getDB(ctx)
	err := db.Model(&FileModel{}).
		Where("product_id = ? AND principal = ?", productID, true).
		Update("principal", false).Error
	if err != nil {
		return apperrors.Wrap(err, "清除主图标记失败")
	}
	return nil
}

// Delete 删除文件记录
func (r *fileRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&FileModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除文件记录失败")
	}

	if result.RowsAffected == 0 {
		return file.ErrFileNotFound
	}

	return nil
}

// toFileEntity GORM模型 → 领域实体
func toFileEntity(model *FileModel) *file.Record {
	return &file.Record{
		ID:        model.ID,
		ProductID: model.ProductID,
		ObjectKey: model.ObjectKey,
		Name:      model.Name,
		URL:       model.URL,
		Size:      model.Size,
		Principal: model.Principal,
		CreatedAt: model.CreatedAt,
	}
}

// getDB 从context获取事务DB,如果没有则使用默认DB
func (r *fileRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return r.db.WithContext(ctx)
}
