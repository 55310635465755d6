package shopping

import (
	"errors"
	"net/http"

	"recipe-generator-backend/internal/api/middleware"
	shoppingService "recipe-generator-backend/internal/core/shopping"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// AddItemRequest 加入購物清單
type AddItemRequest struct {
	IngredientID uint   `json:"ingredientId" binding:"required"`
	Quantity     string `json:"quantity"`
	Note         string `json:"note"`
}

// PurchasedRequest 更新購買狀態
type PurchasedRequest struct {
	IsPurchased *bool `json:"isPurchased" binding:"required"`
}

// Handler 購物清單路由
type Handler struct {
	service *shoppingService.Service
}

// NewHandler 創建購物清單處理器
func NewHandler(service *shoppingService.Service) *Handler {
	return &Handler{service: service}
}

// Add 加入或合併項目
func (h *Handler) Add(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.ErrInvalidRequest.Message+": "+err.Error())
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), middleware.UserID(c), req.IngredientID, req.Quantity, req.Note)
	if errors.Is(err, common.ErrNotFound) {
		common.Fail(c, http.StatusNotFound, "食材不存在")
		return
	}
	if err != nil {
		common.FailWithError(c, "添加失敗: ", err)
		return
	}
	common.Success(c, "添加成功", item)
}

// List 目前使用者的購物清單
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		common.FailWithError(c, "獲取失敗: ", err)
		return
	}
	common.Success(c, "獲取成功", items)
}

// SetPurchased 更新購買狀態
func (h *Handler) SetPurchased(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}
	var req PurchasedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.ErrInvalidRequest.Message+": "+err.Error())
		return
	}

	updated, err := h.service.SetPurchased(c.Request.Context(), middleware.UserID(c), id, *req.IsPurchased)
	if err != nil {
		common.FailWithError(c, "更新失敗: ", err)
		return
	}
	if !updated {
		common.Fail(c, http.StatusNotFound, "購物清單項目不存在")
		return
	}
	common.Success(c, "更新成功", nil)
}

// Delete 刪除單一項目
func (h *Handler) Delete(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.DeleteItem(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		common.FailWithError(c, "刪除失敗: ", err)
		return
	}
	if !deleted {
		common.Fail(c, http.StatusNotFound, "購物清單項目不存在")
		return
	}
	common.Success(c, "刪除成功", nil)
}

// Clear 清空購物清單，清單原本為空也視為成功
func (h *Handler) Clear(c *gin.Context) {
	if _, err := h.service.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		common.FailWithError(c, "清空失敗: ", err)
		return
	}
	common.Success(c, "清空成功", nil)
}
