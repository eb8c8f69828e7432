package handler

import (
	"github.com/gin-gonic/gin"

	appmerchant "github.com/xiebiao/autoparts/internal/application/merchant"
	"github.com/xiebiao/autoparts/internal/interface/http/dto"
	"github.com/xiebiao/autoparts/pkg/response"
)

// MerchantHandler Google Merchant同步HTTP处理器
type MerchantHandler struct {
	syncUseCase *appmerchant.SyncProductsUseCase
}

// NewMerchantHandler 创建Merchant同步处理器
func NewMerchantHandler(syncUseCase *appmerchant.SyncProductsUseCase) *MerchantHandler {
	return &MerchantHandler{syncUseCase: syncUseCase}
}

// SyncProducts 同步商品到Merchant目录
// @Summary      Merchant目录同步
// @Description  按ID集合同步商品到Google Merchant（单个失败不中断，返回摘要）
// @Tags         Merchant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SyncProductsRequest true "商品ID集合"
// @Success      200 {object} response.Response
// @Router       /api/v1/merchant/sync [post]
func (h *MerchantHandler) SyncProducts(c *gin.Context) {
	var req dto.SyncProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.syncUseCase.Execute(c.Request.Context(), req.ProductIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
