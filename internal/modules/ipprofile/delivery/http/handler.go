package handler

import (
	"net/http"

	"clabs.com/website/internal/modules/ipprofile/dto"
	ipprofile "clabs.com/website/internal/modules/ipprofile/service"
	"clabs.com/website/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service ipprofile.ProfileService
}

func NewProfileHandler(service ipprofile.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.service.CreateProfile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id, "message": "ip profile created"})
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ok", profiles)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ok", profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.UpdateProfile(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ip profile updated", nil)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ip profile deleted", nil)
}

func (h *ProfileHandler) SavePlatform(c *gin.Context) {
	var req dto.SavePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.SavePlatform(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "platform stats saved", nil)
}

func (h *ProfileHandler) UpdatePlatform(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.UpdatePlatform(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "platform stats updated", nil)
}

func (h *ProfileHandler) DeletePlatform(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeletePlatform(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "platform stats deleted", nil)
}

func (h *ProfileHandler) CreateWork(c *gin.Context) {
	var req dto.CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	id, err := h.service.CreateWork(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "workId": id, "message": "work added"})
}

func (h *ProfileHandler) UpdateWork(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.UpdateWork(c.Request.Context(), id, req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "work updated", nil)
}

func (h *ProfileHandler) DeleteWork(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteWork(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "work deleted", nil)
}

func (h *ProfileHandler) ListWorks(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	works, err := h.service.ListWorks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "ok", works)
}

func bindID(c *gin.Context) (uint, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid id"})
		return 0, false
	}
	return req.ID, true
}
