package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apppricing "github.com/xiebiao/autoparts/internal/application/pricing"
	"github.com/xiebiao/autoparts/internal/domain/pricing"
	"github.com/xiebiao/autoparts/internal/interface/http/dto"
	"github.com/xiebiao/autoparts/pkg/response"
)

// PricingHandler 价格HTTP处理器
type PricingHandler struct {
	recordUseCase  *apppricing.RecordPriceUseCase
	historyUseCase *apppricing.PriceHistoryUseCase
}

// NewPricingHandler 创建价格处理器
func NewPricingHandler(
	recordUseCase *apppricing.RecordPriceUseCase,
	historyUseCase *apppricing.PriceHistoryUseCase,
) *PricingHandler {
	return &PricingHandler{
		recordUseCase:  recordUseCase,
		historyUseCase: historyUseCase,
	}
}

// RecordPrice 调价
// @Summary      调价
// @Description  追加一条价格记录（价格历史只增不改），成功后精确失效该商品缓存
// @Tags         价格
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.RecordPriceRequest true "价格信息（金额为字符串）"
// @Success      200 {object} response.Response{data=dto.PriceRecordResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id}/price [post]
func (h *PricingHandler) RecordPrice(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.RecordPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	// 金额解析：JSON number走浮点会丢精度，入口统一用字符串转decimal
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的价格: "+req.Price)
		return
	}
	minFinal, err := decimal.NewFromString(req.MinFinalPrice)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的最低成交价: "+req.MinFinalPrice)
		return
	}
	unitCost, err := decimal.NewFromString(req.UnitCost)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的单位成本: "+req.UnitCost)
		return
	}

	result, err := h.recordUseCase.Execute(c.Request.Context(), pricing.CreatePriceRecord{
		ProductID:     productID,
		Price:         price,
		MinFinalPrice: minFinal,
		UnitCost:      unitCost,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PriceHistory 价格历史
// @Summary      价格历史
// @Description  按时间倒序返回价格记录（审计/排障用，直接读库）
// @Tags         价格
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        limit query int false "返回条数，默认20"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{id}/price-history [get]
func (h *PricingHandler) PriceHistory(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.historyUseCase.Execute(c.Request.Context(), productID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}
