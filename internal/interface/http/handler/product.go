package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appproduct "github.com/xiebiao/autoparts/internal/application/product"
	"github.com/xiebiao/autoparts/internal/domain/product"
	"github.com/xiebiao/autoparts/internal/interface/http/dto"
	"github.com/xiebiao/autoparts/pkg/response"
)

// ProductHandler 商品HTTP处理器
type ProductHandler struct {
	createUseCase     *appproduct.CreateProductUseCase
	updateUseCase     *appproduct.UpdateProductUseCase
	listUseCase       *appproduct.ListProductsUseCase
	infoUseCase       *appproduct.GetProductInfoUseCase
	bulkStatusUseCase *appproduct.BulkUpdateStatusUseCase
}

// NewProductHandler 创建商品处理器
func NewProductHandler(
	createUseCase *appproduct.CreateProductUseCase,
	updateUseCase *appproduct.UpdateProductUseCase,
	listUseCase *appproduct.ListProductsUseCase,
	infoUseCase *appproduct.GetProductInfoUseCase,
	bulkStatusUseCase *appproduct.BulkUpdateStatusUseCase,
) *ProductHandler {
	return &ProductHandler{
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		listUseCase:       listUseCase,
		infoUseCase:       infoUseCase,
		bulkStatusUseCase: bulkStatusUseCase,
	}
}

// CreateProduct 商品建档
// @Summary      商品建档
// @Description  创建商品身份行（价格走调价接口，库存走库存变动接口）
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateProductRequest true "商品信息"
// @Success      200 {object} response.Response{data=dto.ProductResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "SKU已存在"
// @Router       /api/v1/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appproduct.CreateProductRequest{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		OEMCode:     req.OEMCode,
		BrandID:     req.BrandID,
		LineID:      req.LineID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ProductResponse{
		ID:        result.ID,
		SKU:       result.SKU,
		Name:      result.Name,
		Active:    result.Active,
		CreatedAt: result.CreatedAt,
	})
}

// UpdateProduct 更新商品基本信息
// @Summary      更新商品
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        request body dto.UpdateProductRequest true "更新字段"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	err = h.updateUseCase.Execute(c.Request.Context(), appproduct.UpdateProductRequest{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		OEMCode:     req.OEMCode,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// GetProductInfo 查询商品聚合信息
// @Summary      商品聚合信息
// @Description  身份字段+当前价格+当前库存+品牌/产品线/主图，一次返回（走缓存）
// @Tags         商品
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200 {object} response.Response{data=dto.ProductInfoResponse}
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id}/info [get]
func (h *ProductHandler) GetProductInfo(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	info, err := h.infoUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ProductInfoResponse{
		ID:             info.ID,
		SKU:            info.SKU,
		Name:           info.Name,
		Description:    info.Description,
		OEMCode:        info.OEMCode,
		Brand:          info.Brand,
		Line:           info.Line,
		PrincipalImage: info.PrincipalImage,
		Price:          info.Price.StringFixed(2),
		Stock:          info.Stock,
		Active:         info.Active,
	})
}

// ListProducts 商品列表
// @Summary      商品列表
// @Tags         商品
// @Produce      json
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Param        keyword query string false "搜索关键词(名称/SKU/原厂件号)"
// @Param        brand_id query int false "品牌过滤"
// @Param        line_id query int false "产品线过滤"
// @Success      200 {object} response.Response
// @Router       /api/v1/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query dto.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), product.ListParams{
		Page:     query.Page,
		PageSize: query.PageSize,
		Keyword:  query.Keyword,
		BrandID:  query.BrandID,
		LineID:   query.LineID,
		SortBy:   query.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, result.Items, result.Total, query.Page, query.PageSize)
}

// BulkUpdateStatus 批量上下架
// @Summary      批量上下架
// @Description  批量更新商品状态，精确失效缓存并同步Merchant（Saga编排）
// @Tags         商品
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BulkUpdateStatusRequest true "商品ID集合与目标状态"
// @Success      200 {object} response.Response
// @Router       /api/v1/products/bulk-status [post]
func (h *ProductHandler) BulkUpdateStatus(c *gin.Context) {
	var req dto.BulkUpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.bulkStatusUseCase.Execute(c.Request.Context(), appproduct.BulkUpdateStatusRequest{
		ProductIDs: req.ProductIDs,
		LineIDs:    req.LineIDs,
		Active:     *req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parseUintParam 解析路径中的uint参数
func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(v), nil
}
