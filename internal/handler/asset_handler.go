package handler

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/response"
	"github.com/weiwangfds/studyhub/internal/service/asset"
)

// AssetHandler 文件上传处理器
type AssetHandler struct {
	assets asset.AssetService
}

// NewAssetHandler 创建文件上传处理器实例
func NewAssetHandler(assets asset.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// Upload 上传文件，表单字段为 file
// @Summary 上传文件
// @Tags 文件
// @Accept multipart/form-data
// @Param endpoint path string true "courseImage、chapterVideo、noteAttachment、profileImage、messageFile"
// @Param file formData file true "文件"
// @Router /api/uploadthing/{endpoint} [post]
func (h *AssetHandler) Upload(c *gin.Context) {
	endpoint := c.Param("endpoint")
	if _, ok := asset.Lookup(endpoint); !ok {
		response.Fail(c, apperrors.ErrInvalidUploadEndpointError.WithDetails(endpoint))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	f, err := header.Open()
	if err != nil {
		response.Fail(c, err)
		return
	}
	defer f.Close()

	res, err := h.assets.Upload(c.Request.Context(), currentUser(c), endpoint, &asset.File{
		Name: header.Filename,
		Size: header.Size,
		Body: f,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, res)
}

// List 我上传的文件，可按 endpoint 过滤
// @Summary 我上传的文件
// @Tags 文件
// @Router /api/assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	list, err := h.assets.List(c.Request.Context(), currentUser(c), c.Query("endpoint"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, list)
}

// Delete 删除文件
// @Summary 删除文件
// @Tags 文件
// @Router /api/assets/{assetId} [delete]
func (h *AssetHandler) Delete(c *gin.Context) {
	if err := h.assets.Delete(c.Request.Context(), currentUser(c), c.Param("assetId")); err != nil {
		response.Fail(c, err)
		return
	}
	response.NoContent(c)
}
