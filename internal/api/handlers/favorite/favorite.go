package favorite

import (
	"errors"
	"net/http"

	"recipe-generator-backend/internal/api/middleware"
	favoriteService "recipe-generator-backend/internal/core/favorite"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// Handler 收藏路由
type Handler struct {
	service *favoriteService.Service
}

// NewHandler 創建收藏處理器
func NewHandler(service *favoriteService.Service) *Handler {
	return &Handler{service: service}
}

// Add 收藏食譜
func (h *Handler) Add(c *gin.Context) {
	recipeID, ok := common.ParseIDParam(c, "recipeId")
	if !ok {
		return
	}

	fav, err := h.service.Add(c.Request.Context(), middleware.UserID(c), recipeID)
	if errors.Is(err, common.ErrNotFound) {
		common.Fail(c, http.StatusNotFound, "食譜不存在")
		return
	}
	if err != nil {
		common.FailWithError(c, "收藏失敗: ", err)
		return
	}
	common.Success(c, "收藏成功", fav)
}

// Remove 取消收藏
func (h *Handler) Remove(c *gin.Context) {
	recipeID, ok := common.ParseIDParam(c, "recipeId")
	if !ok {
		return
	}

	removed, err := h.service.Remove(c.Request.Context(), middleware.UserID(c), recipeID)
	if err != nil {
		common.FailWithError(c, "取消收藏失敗: ", err)
		return
	}
	if !removed {
		common.Fail(c, http.StatusNotFound, "未收藏該食譜")
		return
	}
	common.Success(c, "取消收藏成功", nil)
}

// List 收藏列表
func (h *Handler) List(c *gin.Context) {
	favs, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		common.FailWithError(c, "獲取失敗: ", err)
		return
	}
	common.Success(c, "獲取成功", favs)
}

// Status 是否已收藏
func (h *Handler) Status(c *gin.Context) {
	recipeID, ok := common.ParseIDParam(c, "recipeId")
	if !ok {
		return
	}

	favorited, err := h.service.IsFavorited(c.Request.Context(), middleware.UserID(c), recipeID)
	if err != nil {
		common.FailWithError(c, "查詢失敗: ", err)
		return
	}
	common.Success(c, "查詢成功", favorited)
}
