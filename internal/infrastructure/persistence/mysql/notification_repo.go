package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/autoparts/internal/domain/notification"
	apperrors "github.com/xiebiao/autoparts/pkg/errors"
)

// notificationRepository 通知仓储实现(MySQL)
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := &NotificationModel{
		Kind:      string(n.Kind),
		ProductID: n.ProductID,
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建通知失败")
	}

	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	return nil
}

// ListUnread 查询未读通知（按时间倒序，最多limit条）
func (r *notificationRepository) ListUnread(ctx context.Context, limit int) ([]*notification.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []NotificationModel
	err := r.db.WithContext(ctx).
		Where("`read` = ?", false). // read是MySQL保留字，需要反引号
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询未读通知失败")
	}

	notifications := make([]*notification.Notification, len(models))
	for i := range models {
		notifications[i] = toNotificationEntity(&models[i])
	}
	return notifications, nil
}

// MarkRead 标记已读
func (r *notificationRepository) MarkRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("id = ?", id).
		Update("read", true)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "标记通知已读失败")
	}

	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrCodeNotFound, "通知不存在")
	}

	return nil
}

// toNotificationEntity GORM模型 → 领域实体
func toNotificationEntity(model *NotificationModel) *notification.Notification {
	return &notification.Notification{
		ID:        model.ID,
		Kind:      notification.Kind(model.Kind),
		ProductID: model.ProductID,
		Title:     model.Title,
		Body:      model.Body,
		Read:      model.Read,
		CreatedAt: model.CreatedAt,
	}
}
