package handler

import (
	"net/http"

	"clabs.com/website/internal/modules/contact/dto"
	contact "clabs.com/website/internal/modules/contact/service"
	"clabs.com/website/pkg/response"
	"github.com/gin-gonic/gin"
)

const successMessage = "消息已发送，我们会尽快回复您！"

type ContactHandler struct {
	service contact.ContactService
}

func NewContactHandler(service contact.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.Submit(c.Request.Context(), req, c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": successMessage})
}
