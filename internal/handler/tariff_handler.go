package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradeflow/internal/csvexport"
	"tradeflow/internal/domain"
	"tradeflow/internal/hscode"
	"tradeflow/internal/service"
)

// exportName is the base name of exported comparison files.
const exportName = "usmca_comparison"

// TariffHandler handles duty comparison and rate lookup endpoints.
type TariffHandler struct {
	comparisons service.ComparisonService
	rates       service.RateSource
	reports     service.ReportService
}

// NewTariffHandler creates a new TariffHandler.
func NewTariffHandler(comparisons service.ComparisonService, rates service.RateSource, reports service.ReportService) *TariffHandler {
	return &TariffHandler{comparisons: comparisons, rates: rates, reports: reports}
}

// Compare handles POST /api/v1/tariffs/compare
// @Summary      Compare USMCA savings across destinations
// @Description  Prices every component into each destination under MFN and USMCA rates, including policy overlays, and recommends a destination
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        body body CompareRequest true "Components and destinations"
// @Success      200 {object} Response{data=ComparisonResponse}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      500 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /tariffs/compare [post]
func (h *TariffHandler) Compare(c *gin.Context) {
	result, ok := h.compare(c)
	if !ok {
		return
	}
	RespondOK(c, NewComparisonResponse(result))
}

// Savings handles POST /api/v1/tariffs/savings
// @Summary      Compute USMCA savings for one destination
// @Tags         tariffs
// @Accept       json
// @Produce      json
// @Param        body body SavingsRequest true "Components and destination"
// @Success      200 {object} Response{data=DestinationResponse}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      500 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /tariffs/savings [post]
func (h *TariffHandler) Savings(c *gin.Context) {
	var req SavingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	components, err := ToComponents(req.Components)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.comparisons.Savings(c.Request.Context(), components, domain.Country(req.Destination))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, NewDestinationResponse(result, true))
}

// Rates handles GET /api/v1/tariffs/rates
// @Summary      Look up tariff rates for an HS code
// @Description  Resolves MFN, USMCA and policy overlay rates using the 8, 6 and 4 digit fallback chain
// @Tags         tariffs
// @Produce      json
// @Param        hs_code query string true "HS code in any common format" example(8542.31.00)
// @Param        origin query string true "Origin country (ISO alpha-2)" example(CN)
// @Param        destination query string true "Destination country" Enums(US, MX)
// @Success      200 {object} Response{data=RateLookupResponse}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      500 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /tariffs/rates [get]
func (h *TariffHandler) Rates(c *gin.Context) {
	code := hscode.Normalize(c.Query("hs_code"))
	if code == "" {
		HandleError(c, domain.NewValidationError("hs_code", "must contain at least one digit"))
		return
	}
	origin := domain.ParseCountry(c.Query("origin"))
	if origin == "" {
		HandleError(c, domain.NewValidationError("origin", "origin is required"))
		return
	}
	destination := domain.ParseCountry(c.Query("destination"))
	if !domain.IsSupportedDestination(destination) {
		HandleError(c, domain.UnsupportedDestinationError(destination))
		return
	}

	result, fresh, err := h.rates.TariffRates(c.Request.Context(), service.TariffRateQuery{
		HSCode:      code,
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, NewRateLookupResponse(result, fresh))
}

// Normalize handles GET /api/v1/hscodes/normalize
// @Summary      Normalize an HS code
// @Description  Strips punctuation and pads or truncates to 8 digits. Padded codes are not official subheadings.
// @Tags         hscodes
// @Produce      json
// @Param        code query string true "HS code" example(8542.31)
// @Success      200 {object} Response{data=NormalizeResponse}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /hscodes/normalize [get]
func (h *TariffHandler) Normalize(c *gin.Context) {
	input := c.Query("code")
	normalized := hscode.Normalize(input)
	if normalized == "" {
		HandleError(c, domain.NewValidationError("code", "must contain at least one digit"))
		return
	}

	RespondOK(c, NormalizeResponse{
		Input:      input,
		Normalized: normalized,
		Padded:     hscode.WasPadded(input),
		Chapter:    hscode.Chapter(normalized),
	})
}

// Export handles POST /api/v1/tariffs/compare/export
// @Summary      Export a comparison as CSV
// @Description  Runs a comparison and streams the component breakdown as CSV. With archive=true the file is stored and a presigned link is returned instead.
// @Tags         tariffs
// @Accept       json
// @Produce      text/csv
// @Produce      json
// @Param        body body CompareRequest true "Components and destinations"
// @Param        archive query bool false "Store the CSV and return a download link"
// @Success      200 {file} file
// @Success      201 {object} Response{data=service.ArchivedReport}
// @Failure      400 {object} ErrorResponseBody
// @Failure      401 {object} ErrorResponseBody
// @Failure      500 {object} ErrorResponseBody
// @Failure      501 {object} ErrorResponseBody
// @Security     BearerAuth
// @Router       /tariffs/compare/export [post]
func (h *TariffHandler) Export(c *gin.Context) {
	archive, _ := strconv.ParseBool(c.Query("archive"))

	result, ok := h.compare(c)
	if !ok {
		return
	}

	if archive {
		archived, err := h.reports.Archive(c.Request.Context(), result)
		if err != nil {
			HandleError(c, err)
			return
		}
		c.JSON(http.StatusCreated, APIResponse{Success: true, Data: archived})
		return
	}

	filename := csvexport.BuildFilename(exportName, result.GeneratedAt)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := h.reports.WriteCSV(c.Writer, result); err != nil {
		// Headers are already sent; the client sees a truncated file.
		zap.L().Error("csv export failed",
			zap.String("comparison_id", result.ID.String()),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
}

func (h *TariffHandler) compare(c *gin.Context) (*domain.ComparisonResult, bool) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return nil, false
	}
	input, err := req.ToComparisonInput()
	if err != nil {
		HandleError(c, err)
		return nil, false
	}

	result, err := h.comparisons.Compare(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return result, true
}
