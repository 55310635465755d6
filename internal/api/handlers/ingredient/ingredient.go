package ingredient

import (
	"errors"
	"net/http"

	"recipe-generator-backend/internal/core/catalog"
	"recipe-generator-backend/internal/models"
	"recipe-generator-backend/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// SearchResponse 搜尋結果，Match 標示精確或模糊匹配
type SearchResponse struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Data    *models.Ingredient `json:"data"`
	Match   catalog.MatchTier  `json:"match"`
}

// Handler 食材目錄路由
type Handler struct {
	catalog *catalog.Service
}

// NewHandler 創建食材處理器
func NewHandler(cat *catalog.Service) *Handler {
	return &Handler{catalog: cat}
}

// List 全部食材
func (h *Handler) List(c *gin.Context) {
	list, err := h.catalog.ListIngredients(c.Request.Context())
	if err != nil {
		common.FailWithError(c, "獲取失敗: ", err)
		return
	}
	common.Success(c, "獲取成功", list)
}

// Search 依名稱查詢，先精確再模糊，不會新增食材
func (h *Handler) Search(c *gin.Context) {
	ing, tier, err := h.catalog.Lookup(c.Request.Context(), c.Query("name"))
	if err != nil {
		common.FailWithError(c, "查詢失敗: ", err)
		return
	}

	message := "查詢成功"
	if tier == catalog.MatchFuzzy {
		message = "查詢成功（智能匹配）"
	}

	c.JSON(http.StatusOK, SearchResponse{
		Code:    http.StatusOK,
		Message: message,
		Data:    ing,
		Match:   tier,
	})
}

// Get 依 ID 取得食材
func (h *Handler) Get(c *gin.Context) {
	id, ok := common.ParseIDParam(c, "id")
	if !ok {
		return
	}

	ing, err := h.catalog.GetIngredient(c.Request.Context(), id)
	if errors.Is(err, common.ErrNotFound) {
		common.Fail(c, http.StatusNotFound, "食材不存在")
		return
	}
	if err != nil {
		common.FailWithError(c, "獲取失敗: ", err)
		return
	}
	common.Success(c, "獲取成功", ing)
}
