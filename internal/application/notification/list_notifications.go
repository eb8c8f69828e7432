package notification

import (
	"context"

	"github.com/xiebiao/autoparts/internal/domain/notification"
)

// ListNotificationsUseCase 未读通知查询用例
type ListNotificationsUseCase struct {
	repo notification.Repository
}

// NewListNotificationsUseCase 创建通知查询用例
func NewListNotificationsUseCase(repo notification.Repository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo}
}

// NotificationItem 通知条目DTO
type NotificationItem struct {
	ID        uint   `json:"id"`
	Kind      string `json:"kind"`
	ProductID uint   `json:"product_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Execute 查询未读通知
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, limit int) ([]*NotificationItem, error) {
	list, err := uc.repo.ListUnread(ctx, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*NotificationItem, len(list))
	for i, n := range list {
		items[i] = &NotificationItem{
			ID:        n.ID,
			Kind:      string(n.Kind),
			ProductID: n.ProductID,
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return items, nil
}

// MarkRead 标记通知已读
func (uc *ListNotificationsUseCase) MarkRead(ctx context.Context, id uint) error {
	return uc.repo.MarkRead(ctx, id)
}
