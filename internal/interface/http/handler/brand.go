package handler

import (
	"github.com/gin-gonic/gin"

	appbrand "github.com/xiebiao/autoparts/internal/application/brand"
	"github.com/xiebiao/autoparts/internal/interface/http/dto"
	"github.com/xiebiao/autoparts/pkg/response"
)

// BrandHandler 品牌/产品线HTTP处理器
type BrandHandler struct {
	manageUseCase *appbrand.ManageBrandsUseCase
}

// NewBrandHandler 创建品牌处理器
func NewBrandHandler(manageUseCase *appbrand.ManageBrandsUseCase) *BrandHandler {
	return &BrandHandler{manageUseCase: manageUseCase}
}

// CreateBrand 创建品牌
// @Summary      创建品牌
// @Tags         品牌
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBrandRequest true "品牌信息"
// @Success      200 {object} response.Response
// @Router       /api/v1/brands [post]
func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req dto.CreateBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.CreateBrand(c.Request.Context(), req.Name, req.Country)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBrands 品牌列表
// @Summary      品牌列表
// @Tags         品牌
// @Produce      json
// @Param        only_active query bool false "仅返回启用品牌"
// @Success      200 {object} response.Response
// @Router       /api/v1/brands [get]
func (h *BrandHandler) ListBrands(c *gin.Context) {
	onlyActive := c.Query("only_active") == "true"

	items, err := h.manageUseCase.ListBrands(c.Request.Context(), onlyActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

// CreateLine 创建产品线
// @Summary      创建产品线
// @Tags         品牌
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "品牌ID"
// @Param        request body dto.CreateLineRequest true "产品线信息"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "品牌不存在"
// @Router       /api/v1/brands/{id}/lines [post]
func (h *BrandHandler) CreateLine(c *gin.Context) {
	brandID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的品牌ID")
		return
	}

	var req dto.CreateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageUseCase.CreateLine(c.Request.Context(), brandID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListLines 产品线列表
// @Summary      某品牌下的产品线列表
// @Tags         品牌
// @Produce      json
// @Param        id path int true "品牌ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/brands/{id}/lines [get]
func (h *BrandHandler) ListLines(c *gin.Context) {
	brandID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的品牌ID")
		return
	}

	items, err := h.manageUseCase.ListLines(c.Request.Context(), brandID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}
