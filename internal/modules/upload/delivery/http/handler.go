package handler

import (
	"net/http"

	"clabs.com/website/internal/modules/upload/dto"
	upload "clabs.com/website/internal/modules/upload/service"
	"clabs.com/website/pkg/response"
	"github.com/gin-gonic/gin"
)

const FormField = "image"

type UploadHandler struct {
	service upload.UploadService
}

func NewUploadHandler(service upload.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile(FormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "no file selected"})
		return
	}

	res, err := h.service.UploadImage(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "image uploaded", res)
}

func (h *UploadHandler) ServeImage(c *gin.Context) {
	obj, err := h.service.FetchImage(c.Request.Context(), c.Param("filename"))
	if err != nil {
		c.String(http.StatusNotFound, "Image not found")
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	if obj.RemoteURL != "" {
		c.Redirect(http.StatusFound, obj.RemoteURL)
		return
	}
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}

func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	var req dto.DeleteUploadRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.DeleteUpload(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, "image deleted", nil)
}
