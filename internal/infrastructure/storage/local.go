package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xiebiao/autoparts/internal/domain/file"
	"github.com/xiebiao/autoparts/internal/infrastructure/config"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// LocalStore 本地磁盘文件存储
// 设计说明:
// 1. 实现domain/file.BlobStore接口
// 2. 对象键由上传用例用uuid生成，存储层只负责读写字节
// 3. 生产环境可替换为对象存储实现（接口不变）
type LocalStore struct {
	basePath  string
	publicURL string
}

// NewLocalStore 创建本地存储
func NewLocalStore(cfg *config.Config) (file.BlobStore, error) {
	basePath := cfg.Storage.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}

	// 确保存储根目录存在
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("创建存储目录失败: %w", err)
	}

	return &LocalStore{
		basePath:  basePath,
		publicURL: strings.TrimRight(cfg.Storage.PublicURL, "/"),
	}, nil
}

// Save 保存文件内容，返回对外访问URL
func (s *LocalStore) Save(ctx context.Context, objectKey string, r io.Reader, size int64) (string, error) {
	path := filepath.Join(s.basePath, objectKey)

	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.Wrap(err, "创建文件失败")
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		// 写失败时清理半成品文件
		os.Remove(path)
		return "", apperrors.Wrap(err, "写入文件失败")
	}
	if size > 0 && written != size {
		os.Remove(path)
		return "", apperrors.Wrap(fmt.Errorf("期望%d字节，实际写入%d字节", size, written), "文件写入不完整")
	}

	return fmt.Sprintf("%s/%s", s.publicURL, objectKey), nil
}

// Remove 删除文件内容
// 文件不存在视为已删除（幂等）
func (s *LocalStore) Remove(ctx context.Context, objectKey string) error {
	path := filepath.Join(s.basePath, objectKey)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, "删除文件失败")
	}
	return nil
}
