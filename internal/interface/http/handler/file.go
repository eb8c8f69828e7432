package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appfile "github.com/xiebiao/autoparts/internal/application/file"
	"github.com/xiebiao/autoparts/pkg/response"
)

// FileHandler 商品图片HTTP处理器
type FileHandler struct {
	uploadUseCase *appfile.UploadFileUseCase
}

// NewFileHandler 创建图片处理器
func NewFileHandler(uploadUseCase *appfile.UploadFileUseCase) *FileHandler {
	return &FileHandler{uploadUseCase: uploadUseCase}
}

// UploadFile 上传商品图片
// @Summary      上传商品图片
// @Description  multipart上传（jpg/jpeg/png/webp），principal=true时替换主图并失效商品缓存
// @Tags         图片
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "商品ID"
// @Param        file formData file true "图片文件"
// @Param        principal formData bool false "是否设为主图"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "文件为空/格式不支持"
// @Failure      404 {object} response.Response "商品不存在"
// @Router       /api/v1/products/{id}/files [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的商品ID")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithCode(c, 40900, "缺少file字段: "+err.Error())
		return
	}
	principal, _ := strconv.ParseBool(c.DefaultPostForm("principal", "false"))

	src, err := fh.Open()
	if err != nil {
		response.ErrorWithCode(c, 40900, "文件读取失败: "+err.Error())
		return
	}
	defer src.Close()

	result, err := h.uploadUseCase.Execute(c.Request.Context(), appfile.UploadFileRequest{
		ProductID: productID,
		Name:      fh.Filename,
		Size:      fh.Size,
		Principal: principal,
		Content:   src,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
