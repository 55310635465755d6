package combo

import (
	"net/http"

	"recipe-generator-backend/internal/api/middleware"
	comboService "recipe-generator-backend/internal/core/combo"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// SaveComboRequest 保存食材組合
type SaveComboRequest struct {
	Name        string `json:"name" binding:"required"`
	Ingredients string `json:"ingredients" binding:"required"`
}

// Handler 食材組合路由
type Handler struct {
	service *comboService.Service
}

// NewHandler 創建組合處理器
func NewHandler(service *comboService.Service) *Handler {
	return &Handler{service: service}
}

func bind(c *gin.Context) (SaveComboRequest, bool) {
	var req SaveComboRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.ErrInvalidRequest.Message+": "+err.Error())
		return req, false
	}
	return req, true
}

// Save 保存組合
func (h *Handler) Save(c *gin.Context) {
	req, ok := bind(c)
	if !ok {
		return
	}

	combo, err := h.service.Save(c.Request.Context(), middleware.UserID(c), req.Name, req.Ingredients)
	if err != nil {
		common.FailWithError(c, "保存失敗: ", err)
		return
	}
	common.Success(c, "保存成功", combo)
}

// List 組合列表
func (h *Handler) List(c *gin.Context) {
	combos, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		common.FailWithError(c, "獲取失敗: ", err)
		return
	}
	common.Success(c, "獲取成功", combos)
}

// Update 更新組合
func (h *Handler) Update(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := bind(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, req.Name, req.Ingredients)
	if err != nil {
		common.FailWithError(c, "更新失敗: ", err)
		return
	}
	if !updated {
		common.Fail(c, http.StatusNotFound, "組合不存在")
		return
	}
	common.Success(c, "更新成功", nil)
}

// Delete 刪除組合
func (h *Handler) Delete(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		common.FailWithError(c, "刪除失敗: ", err)
		return
	}
	if !deleted {
		common.Fail(c, http.StatusNotFound, "組合不存在")
		return
	}
	common.Success(c, "刪除成功", nil)
}
