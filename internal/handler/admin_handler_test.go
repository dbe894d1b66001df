package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tradeflow/internal/domain"
	"tradeflow/internal/handler"
	"tradeflow/internal/service"
	"tradeflow/mocks"
)

func TestAdmin_CacheStats(t *testing.T) {
	admin := new(mocks.MockCacheAdmin)
	h := handler.NewAdminHandler(admin)

	admin.On("Stats").Return(service.CacheStats{StableHits: 8, LiveFetches: 2, Efficiency: 0.8, TreatyVersion: "2025-01"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/admin/cache/stats", http.NoBody)
	h.CacheStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var stats service.CacheStats
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &stats))
	assert.Equal(t, int64(8), stats.StableHits)
	assert.Equal(t, 0.8, stats.Efficiency)
	assert.Equal(t, "2025-01", stats.TreatyVersion)
}

func TestAdmin_Invalidate(t *testing.T) {
	admin := new(mocks.MockCacheAdmin)
	h := handler.NewAdminHandler(admin)

	admin.On("InvalidateCategory", domain.CategoryShippingRate).Return(3)

	c, w := jsonRequest(t, http.MethodPost, "/api/v1/admin/cache/invalidate", map[string]string{"category": "shipping_rate"})
	c.Set("user_id", "ops-1")
	h.Invalidate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var data handler.InvalidateResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, handler.InvalidateResponse{Category: "shipping_rate", Removed: 3}, data)
	admin.AssertExpectations(t)
}

func TestAdmin_InvalidateRejects(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{"missing category", map[string]string{}, "INVALID_REQUEST"},
		{"unknown category", map[string]string{"category": "weather"}, "UNKNOWN_CATEGORY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := new(mocks.MockCacheAdmin)
			h := handler.NewAdminHandler(admin)

			c, w := jsonRequest(t, http.MethodPost, "/api/v1/admin/cache/invalidate", tt.body)
			h.Invalidate(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Error.Code)
			admin.AssertNotCalled(t, "InvalidateCategory", mock.Anything)
		})
	}
}

func TestAdmin_ReloadTreaty(t *testing.T) {
	admin := new(mocks.MockCacheAdmin)
	h := handler.NewAdminHandler(admin)

	admin.On("ReloadTreaty", "2025-07").Return(42)

	c, w := jsonRequest(t, http.MethodPost, "/api/v1/admin/treaty/reload", map[string]string{"version": "2025-07"})
	h.ReloadTreaty(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var data handler.ReloadTreatyResponse
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	assert.Equal(t, 42, data.Removed)
	assert.Equal(t, "2025-07", data.Version)
}

func TestAdmin_ReloadTreatyRequiresVersion(t *testing.T) {
	admin := new(mocks.MockCacheAdmin)
	h := handler.NewAdminHandler(admin)

	c, w := jsonRequest(t, http.MethodPost, "/api/v1/admin/treaty/reload", map[string]string{"version": ""})
	h.ReloadTreaty(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	admin.AssertNotCalled(t, "ReloadTreaty", mock.Anything)
}
