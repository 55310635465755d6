package recipe

import (
	"errors"
	"net/http"

	recipeService "recipe-generator-backend/internal/core/recipe"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜相關路由
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食譜處理器
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// Generate 依食材與條件生成一份食譜
func (h *Handler) Generate(c *gin.Context) {
	var req recipeService.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, common.ErrInvalidRequest.Message+": "+err.Error())
		return
	}

	common.LogInfo("收到生成食譜請求",
		zap.String("request_id", requestid.Get(c)),
		zap.Int("ingredients", len(req.Ingredients)),
		zap.String("cuisine", string(req.CuisineType)),
		zap.Int("cooking_time", req.CookingTime),
	)

	recipe, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		common.FailWithError(c, "生成失敗: ", err)
		return
	}

	common.Success(c, "生成成功", recipe)
}

// Get 取得食譜詳情
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.service.GetRecipe(c.Request.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		common.Fail(c, http.StatusNotFound, "食譜不存在")
		return
	}
	if err != nil {
		common.FailWithError(c, "獲取失敗: ", err)
		return
	}

	common.Success(c, "獲取成功", recipe)
}

// Delete 刪除食譜及其食材、步驟
func (h *Handler) Delete(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.service.DeleteRecipe(c.Request.Context(), id)
	if err != nil {
		common.FailWithError(c, "刪除失敗: ", err)
		return
	}
	if !deleted {
		common.Fail(c, http.StatusNotFound, "食譜不存在")
		return
	}

	common.Success(c, "刪除成功", nil)
}
