package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tradeflow/internal/domain"
	"tradeflow/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unsupported destination", domain.UnsupportedDestinationError("DE"), http.StatusBadRequest, "UNSUPPORTED_DESTINATION"},
		{"validation", domain.NewValidationError("hs_code", "bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown category", fmt.Errorf("%w: x", domain.ErrUnknownCategory), http.StatusBadRequest, "UNKNOWN_CATEGORY"},
		{"not found", fmt.Errorf("repo: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"archive disabled", domain.ErrArchiveDisabled, http.StatusNotImplemented, "ARCHIVE_DISABLED"},
		{"upstream", fmt.Errorf("%w: k: timeout", domain.ErrUpstreamFetch), http.StatusInternalServerError, "UPSTREAM_FETCH_FAILED"},
		{"cache closed", domain.ErrCacheClosed, http.StatusServiceUnavailable, "SHUTTING_DOWN"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestHandleError_LogsServerErrors(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/", http.NoBody)
	c.Set("request_id", "req-1")

	handler.HandleError(c, domain.NewValidationError("hs_code", "bad"))
	assert.Equal(t, 0, logs.Len())

	handler.HandleError(c, fmt.Errorf("%w: rates", domain.ErrUpstreamFetch))
	entries := logs.FilterMessage("request failed").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "UPSTREAM_FETCH_FAILED", entries[0].ContextMap()["code"])
	}
}
