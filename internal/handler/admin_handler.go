package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradeflow/internal/domain"
	"tradeflow/internal/middleware"
	"tradeflow/internal/service"
)

// AdminHandler handles cache administration endpoints.
type AdminHandler struct {
	cache service.CacheAdmin
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cache service.CacheAdmin) *AdminHandler {
	return &AdminHandler{cache: cache}
}

// CacheStats handles GET /api/v1/admin/cache/stats
// @Summary      Cache statistics
// @Description  Hit counters, efficiency and entry counts for the rate data cache
// @Tags         admin
// @Produce      json
// @Success      200 {object} Response{data=service.CacheStats}
// @Failure      401 {object} ErrorResponseBody
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /admin/cache/stats [get]
func (h *AdminHandler) CacheStats(c *gin.Context) {
	RespondOK(c, h.cache.Stats())
}

// Invalidate handles POST /api/v1/admin/cache/invalidate
// @Summary      Invalidate a cache category
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body body InvalidateRequest true "Category to drop"
// @Success      200 {object} Response{data=InvalidateResponse}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /admin/cache/invalidate [post]
func (h *AdminHandler) Invalidate(c *gin.Context) {
	var req InvalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "category is required")
		return
	}
	cat, ok := domain.ParseCategory(req.Category)
	if !ok {
		HandleError(c, domain.ErrUnknownCategory)
		return
	}

	removed := h.cache.InvalidateCategory(cat)
	userID, _ := middleware.GetUserID(c)
	zap.L().Info("admin invalidated cache category",
		zap.String("category", string(cat)),
		zap.String("user_id", userID),
	)

	RespondOK(c, InvalidateResponse{Category: string(cat), Removed: removed})
}

// ReloadTreaty handles POST /api/v1/admin/treaty/reload
// @Summary      Reload treaty rates
// @Description  Records a new treaty schedule version and drops every cached treaty rate
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body body ReloadTreatyRequest true "New treaty version"
// @Success      200 {object} Response{data=ReloadTreatyResponse}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      403 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /admin/treaty/reload [post]
func (h *AdminHandler) ReloadTreaty(c *gin.Context) {
	var req ReloadTreatyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "version is required")
		return
	}

	removed := h.cache.ReloadTreaty(req.Version)
	RespondOK(c, ReloadTreatyResponse{Version: req.Version, Removed: removed})
}
