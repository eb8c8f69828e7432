package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apppromotion "github.com/xiebiao/autoparts/internal/application/promotion"
	"github.com/xiebiao/autoparts/internal/interface/http/dto"
	"github.com/xiebiao/autoparts/pkg/response"
)

// PromotionHandler 促销HTTP处理器
type PromotionHandler struct {
	createUseCase     *apppromotion.CreatePromotionUseCase
	deactivateUseCase *apppromotion.DeactivatePromotionUseCase
}

// NewPromotionHandler 创建促销处理器
func NewPromotionHandler(
	createUseCase *apppromotion.CreatePromotionUseCase,
	deactivateUseCase *apppromotion.DeactivatePromotionUseCase,
) *PromotionHandler {
	return &PromotionHandler{
		createUseCase:     createUseCase,
		deactivateUseCase: deactivateUseCase,
	}
}

// CreatePromotion 创建促销
// @Summary      创建产品线促销
// @Description  按产品线维度创建限时折扣，成功后失效该产品线筛选项缓存
// @Tags         促销
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreatePromotionRequest true "促销信息"
// @Success      200 {object} response.Response{data=dto.PromotionResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "产品线不存在"
// @Router       /api/v1/promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	pct, err := decimal.NewFromString(req.DiscountPct)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的折扣百分比: "+req.DiscountPct)
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的开始时间(需RFC3339格式)")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的结束时间(需RFC3339格式)")
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), apppromotion.CreatePromotionRequest{
		LineID:      req.LineID,
		Name:        req.Name,
		DiscountPct: pct,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeactivatePromotion 下线促销
// @Summary      下线促销
// @Tags         促销
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "促销ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "促销不存在"
// @Router       /api/v1/promotions/{id} [delete]
func (h *PromotionHandler) DeactivatePromotion(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的促销ID")
		return
	}

	if err := h.deactivateUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
