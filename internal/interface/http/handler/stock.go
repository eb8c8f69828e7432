package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appstock "github.com/xiebiao/autoparts/internal/application/stock"
	"github.com/xiebiao/autoparts/internal/domain/stock"
	"github.com/xiebiao/autoparts/internal/interface/http/dto"
	"github.com/xiebiao/autoparts/pkg/response"
)

// StockHandler 库存HTTP处理器
type StockHandler struct {
	adjustUseCase *appstock.AdjustStockUseCase
	ledgerUseCase *appstock.StockLedgerUseCase
}

// NewStockHandler 创建库存处理器
func NewStockHandler(
	adjustUseCase *appstock.AdjustStockUseCase,
	ledgerUseCase *appstock.StockLedgerUseCase,
) *StockHandler {
	return &StockHandler{
		adjustUseCase: adjustUseCase,
		ledgerUseCase: ledgerUseCase,
	}
}

// AdjustStock 库存变动
// @Summary      库存变动
// @Description  以台账方式记录IN/OUT/ADJUST变动（行锁保证并发安全），成功后精确失效缓存
// @Tags         库存
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.AdjustStockRequest true "变动信息"
// @Success      200 {object} response.Response{data=dto.AdjustStockResponse}
// @Failure      400 {object} response.Response "参数错误/库存不足"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id}/stock [post]
func (h *StockHandler) AdjustStock(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.adjustUseCase.Execute(c.Request.Context(), stock.AdjustStock{
		ProductID: productID,
		AgencyID:  req.AgencyID,
		Quantity:  req.Quantity,
		Type:      stock.MovementType(req.Type),
		Reference: req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// StockLedger 库存台账
// @Summary      库存台账
// @Description  按时间倒序返回某商品的库存变动记录
// @Tags         库存
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        limit query int false "返回条数，默认20"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/{id}/stock-ledger [get]
func (h *StockHandler) StockLedger(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.ledgerUseCase.Execute(c.Request.Context(), productID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}
