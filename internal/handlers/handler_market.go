package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	portssvc "github.com/Finger-Lab/olgacolor-back/internal/core/ports/services"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/Finger-Lab/olgacolor-back/internal/middleware"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// marketHandler handles HTTP requests related to the product catalog.
type marketHandler struct {
	marketService portssvc.MarketSvcFacade
	uploadDir     string
}

// newMarketHandler creates a new marketHandler.
func newMarketHandler(ms portssvc.MarketSvcFacade, uploadDir string) *marketHandler {
	return &marketHandler{
		marketService: ms,
		uploadDir:     uploadDir,
	}
}

// registerMarketRoutes registers routes related to the product catalog.
// Listing is public; creation requires a bearer token.
func registerMarketRoutes(rg *gin.RouterGroup, cfg *config.Config, ms portssvc.MarketSvcFacade) {
	h := newMarketHandler(ms, cfg.UploadDir)

	markets := rg.Group("/markets")
	{
		markets.GET("", h.listMarkets)
	}

	protected := authProtected(markets, cfg)
	{
		protected.POST("", h.createMarket)
	}
}

// listMarkets godoc
// @Summary List product catalog entries
// @Tags markets
// @Produce  json
// @Success 200 {array} dto.MarketResponse
// @Failure 500 {object} map[string]string "Failed to list markets"
// @Router /markets [get]
func (h *marketHandler) listMarkets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	markets, err := h.marketService.ListMarkets(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list markets", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list markets"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListMarketResponse(markets))
}

// createMarket godoc
// @Summary Create a product catalog entry
// @Description Accepts a multipart form with the physical properties plus image files under "images"
// @Tags markets
// @Accept  mpfd
// @Produce  json
// @Param   market formData dto.CreateMarketRequest true "Market details"
// @Success 201 {object} dto.MarketResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create market"
// @Security BearerAuth
// @Router /markets [post]
func (h *marketHandler) createMarket(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateMarketRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind form for CreateMarket", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	var imagePaths []string
	for _, file := range form.File["images"] {
		// Never trust the uploaded filename; keep only its extension.
		stored := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, stored); err != nil {
			logger.Error("Failed to store uploaded image", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded image"})
			return
		}
		imagePaths = append(imagePaths, stored)
	}

	created, err := h.marketService.CreateMarket(c.Request.Context(), req, imagePaths)
	if err != nil {
		logger.Error("Failed to create market in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create market"})
		return
	}

	logger.Info("Market created successfully", slog.String("market_id", created.MarketID))
	c.JSON(http.StatusCreated, dto.ToMarketResponse(created))
}
