package handler

import (
	"net/http"

	"clabs.com/website/internal/modules/tutorial/dto"
	tutorial "clabs.com/website/internal/modules/tutorial/service"
	commonDto "clabs.com/website/pkg/dto"
	"clabs.com/website/pkg/response"
	"github.com/gin-gonic/gin"
)

type TutorialHandler struct {
	service tutorial.TutorialService
}

func NewTutorialHandler(service tutorial.TutorialService) *TutorialHandler {
	return &TutorialHandler{service: service}
}

func (h *TutorialHandler) CreateTutorial(c *gin.Context) {
	var req dto.CreateTutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.service.CreateTutorial(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id, "message": "tutorial created"})
}

func (h *TutorialHandler) UpdateTutorial(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateTutorialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.UpdateTutorial(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "tutorial updated", nil)
}

func (h *TutorialHandler) DeleteTutorial(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTutorial(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "tutorial deleted", nil)
}

func (h *TutorialHandler) GetTutorial(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	t, err := h.service.GetTutorial(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ok", t)
}

func (h *TutorialHandler) ListTutorials(c *gin.Context) {
	var filter dto.TutorialFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ListTutorials(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res.Data, "pagination": res.Meta})
}

func (h *TutorialHandler) ListByCategory(c *gin.Context) {
	var page commonDto.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.ListByCategory(c.Request.Context(), c.Param("category"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res.Data, "pagination": res.Meta})
}

func (h *TutorialHandler) GetArticle(c *gin.Context) {
	t, err := h.service.ReadArticle(c.Request.Context(), c.Param("identifier"), c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ok", t)
}

func (h *TutorialHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": res.Data, "query": q.Q, "pagination": res.Meta})
}

func bindID(c *gin.Context) (uint, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return 0, false
	}
	return req.ID, true
}
