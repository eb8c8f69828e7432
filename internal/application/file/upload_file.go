package file

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/xiebiao/autoparts/internal/domain/catalog"
	"github.com/xiebiao/autoparts/internal/domain/file"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/internal/infrastructure/persistence/mysql"
)

// UploadFileUseCase 商品图片上传用例
// 设计说明:
// 1. 对象键用uuid生成，和原始文件名解耦（防止路径注入和重名覆盖）
// 2. 主图切换在事务内:清除旧主图标记+插入新记录，保证最多一张主图
// 3. 主图变更失效商品派生缓存（聚合信息嵌入了主图URL）
type UploadFileUseCase struct {
	fileRepo    file.Repository
	productRepo product.Repository
	blobStore   file.BlobStore
	txManager   *mysql.TxManager
	invalidator *catalog.Invalidator
}

// NewUploadFileUseCase 创建图片上传用例
func NewUploadFileUseCase(
	fileRepo file.Repository,
	productRepo product.Repository,
	blobStore file.BlobStore,
	txManager *mysql.TxManager,
	invalidator *catalog.Invalidator,
) *UploadFileUseCase {
	return &UploadFileUseCase{
		fileRepo:    fileRepo,
		productRepo: productRepo,
		blobStore:   blobStore,
		txManager:   txManager,
		invalidator: invalidator,
	}
}

// UploadFileRequest 上传请求DTO
type UploadFileRequest struct {
	ProductID uint
	Name      string // 原始文件名
	Size      int64
	Principal bool // 是否设为主图
	Content   io.Reader
}

// UploadFileResponse 上传响应DTO
type UploadFileResponse struct {
	ID        uint   `json:"id"`
	URL       string `json:"url"`
	Principal bool   `json:"principal"`
}

// Execute 执行上传
func (uc *UploadFileUseCase) Execute(ctx context.Context, req UploadFileRequest) (*UploadFileResponse, error) {
	// 1. 校验
	if req.Size <= 0 {
		return nil, file.ErrEmptyFile
	}
	ext := strings.ToLower(filepath.Ext(req.Name))
	if !file.IsAllowedExtension(ext) {
		return nil, file.ErrUnsupportedExt
	}
	if _, err := uc.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	// 2. 先写字节（存储失败不留脏记录）
	objectKey := uuid.NewString() + ext
	url, err := uc.blobStore.Save(ctx, objectKey, req.Content, req.Size)
	if err != nil {
		return nil, err
	}

	// 3. 事务内落记录（主图切换需要两步）
	rec := &file.Record{
		ProductID: req.ProductID,
		ObjectKey: objectKey,
		Name:      req.Name,
		URL:       url,
		Size:      req.Size,
		Principal: req.Principal,
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if req.Principal {
			if err := uc.fileRepo.ClearPrincipal(txCtx, req.ProductID); err != nil {
				return err
			}
		}
		return uc.fileRepo.Create(txCtx, rec)
	})
	if err != nil {
		// 落库失败时清理已写入的字节（尽力而为）
		_ = uc.blobStore.Remove(ctx, objectKey)
		return nil, err
	}

	// 4. 主图变更影响聚合信息，失效派生缓存
	if req.Principal {
		uc.invalidator.Invalidate(ctx, req.ProductID)
	}

	return &UploadFileResponse{
		ID:        rec.ID,
		URL:       rec.URL,
		Principal: rec.Principal,
	}, nil
}
