package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/autoparts/internal/application/notification"
	"github.com/xiebiao/autoparts/pkg/response"
)

// NotificationHandler 运营通知HTTP处理器
type NotificationHandler struct {
	listUseCase *appnotification.ListNotificationsUseCase
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(listUseCase *appnotification.ListNotificationsUseCase) *NotificationHandler {
	return &NotificationHandler{listUseCase: listUseCase}
}

// ListNotifications 未读通知列表
// @Summary      未读通知列表
// @Description  返回消费MQ事件产生的运营通知（调价/低库存/库存变动）
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "返回条数，默认20"
// @Success      200 {object} response.Response
// @Router       /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.listUseCase.Execute(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

// MarkRead 标记通知已读
// @Summary      标记通知已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "通知ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的通知ID")
		return
	}

	if err := h.listUseCase.MarkRead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
