package file

import (
	"context"
	"io"
	"time"

	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// 文件领域错误定义
var (
	ErrFileNotFound   = apperrors.New(apperrors.ErrCodeFileNotFound, "文件不存在")
	ErrEmptyFile      = apperrors.New(apperrors.ErrCodeInvalidParams, "文件内容为空")
	ErrUnsupportedExt = apperrors.New(apperrors.ErrCodeInvalidParams, "不支持的文件类型")
)

// 商品图片只接受的扩展名
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// IsAllowedExtension 校验扩展名（小写，带点）
func IsAllowedExtension(ext string) bool {
	return allowedExtensions[ext]
}

// Record 文件记录实体
// 记录商品图片的元数据；实际字节由BlobStore保存
type Record struct {
	ID        uint
	ProductID uint
	ObjectKey string // 存储层对象键（uuid+扩展名）
	Name      string // 原始文件名
	URL       string // 对外访问地址
	Size      int64
	Principal bool // 是否为商品主图
	CreatedAt time.Time
}

// BlobStore 文件字节存储接口
// 由infrastructure/storage实现（本地磁盘，可替换为对象存储）
type BlobStore interface {
	// Save 保存文件内容，返回对外访问URL
	Save(ctx context.Context, objectKey string, r io.Reader, size int64) (string, error)

	// Remove 删除文件内容
	Remove(ctx context.Context, objectKey string) error
}

// Repository 文件记录仓储接口
type Repository interface {
	// Create 创建文件记录
	Create(ctx context.Context, rec *Record) error

	// FindByID 根据ID查找文件记录
	FindByID(ctx context.Context, id uint) (*Record, error)

	// ListByProductID 查询商品的全部图片
	ListByProductID(ctx context.Context, productID uint) ([]*Record, error)

	// FindPrincipalByProductID 查询商品主图（无主图返回ErrFileNotFound）
	FindPrincipalByProductID(ctx context.Context, productID uint) (*Record, error)

	// ClearPrincipal 清除商品当前主图标记（设置新主图前调用）
	ClearPrincipal(ctx context.Context, productID uint) error

	// Delete 删除文件记录
	Delete(ctx context.Context, id uint) error
}
