package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portssvc "github.com/Finger-Lab/olgacolor-back/internal/core/ports/services"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/Finger-Lab/olgacolor-back/internal/middleware"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to rate records.
type rateHandler struct {
	rateService      portssvc.RateSvcFacade
	ingestionService portssvc.IngestionSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade, is portssvc.IngestionSvcFacade) *rateHandler {
	return &rateHandler{
		rateService:      rs,
		ingestionService: is,
	}
}

// registerRateRoutes registers the rate endpoints. Raw record CRUD lives
// under /rates; the derived read views feeding the public site live under
// /quotes, which also carries the manual fetch trigger. Mutations and the
// trigger require a bearer token.
func registerRateRoutes(rg *gin.RouterGroup, cfg *config.Config, rs portssvc.RateSvcFacade, is portssvc.IngestionSvcFacade) {
	h := newRateHandler(rs, is)

	rates := authProtected(rg.Group("/rates"), cfg)
	{
		rates.POST("", h.createRate)
		rates.GET("", h.listRates)
		rates.GET("/:rateID", h.getRate)
		rates.PUT("/:rateID", h.updateRate)
		rates.DELETE("/:rateID", h.deleteRate)
	}

	quotes := rg.Group("/quotes")
	{
		quotes.GET("/current", h.currentRates)
		quotes.GET("/monthly", h.monthlyRates)
		quotes.GET("/variations", h.variations)
	}
	authProtected(quotes, cfg).POST("/fetch", h.fetchRates)
}

// createRate godoc
// @Summary Create a new rate record
// @Description Adds a rate record for an instrument and date (admin operation)
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateRateRequest true "Rate details"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Rate already exists for that instrument and date"
// @Failure 500 {object} map[string]string "Failed to create rate"
// @Security BearerAuth
// @Router /rates [post]
func (h *rateHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.rateService.CreateRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to create duplicate rate",
				slog.String("currency_type", req.CurrencyType), slog.String("rate_date", req.RateDate))
			c.JSON(http.StatusConflict, gin.H{"error": "A rate already exists for that instrument and date"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create rate in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rate"})
		}
		return
	}

	logger.Info("Rate created successfully", slog.String("rate_id", created.RateID))
	c.JSON(http.StatusCreated, dto.ToRateResponse(created))
}

// getRate godoc
// @Summary Get a rate record by ID
// @Tags rates
// @Produce  json
// @Param   rateID path string true "Rate ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve rate"
// @Security BearerAuth
// @Router /rates/{rateID} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	record, err := h.rateService.GetRateByID(c.Request.Context(), rateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		} else {
			logger.Error("Failed to get rate", slog.String("rate_id", rateID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(record))
}

// listRates godoc
// @Summary List rate records
// @Description Lists rate records with optional instrument, date and range filters
// @Tags rates
// @Produce  json
// @Param   type query string false "Instrument filter (usd, aluminum)"
// @Param   date query string false "Exact date filter (YYYY-MM-DD)"
// @Param   start_date query string false "Range start (YYYY-MM-DD)"
// @Param   end_date query string false "Range end (YYYY-MM-DD)"
// @Param   page query int false "Page number" default(1)
// @Param   per_page query int false "Page size" default(15)
// @Success 200 {object} dto.ListRatesResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 500 {object} map[string]string "Failed to list rates"
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ListRatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	records, total, err := h.rateService.ListRates(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list rates", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListRatesResponse{
		Data:    dto.ToListRateResponse(records),
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
}

// updateRate godoc
// @Summary Update a rate record
// @Tags rates
// @Accept  json
// @Produce  json
// @Param   rateID path string true "Rate ID"
// @Param   rate body dto.UpdateRateRequest true "Fields to update"
// @Success 200 {object} dto.RateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 409 {object} map[string]string "Rate already exists for that instrument and date"
// @Failure 500 {object} map[string]string "Failed to update rate"
// @Security BearerAuth
// @Router /rates/{rateID} [put]
func (h *rateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.rateService.UpdateRate(c.Request.Context(), rateID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempted to move rate onto an occupied date", slog.String("rate_id", rateID))
			c.JSON(http.StatusConflict, gin.H{"error": "A rate already exists for that instrument and date"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update rate", slog.String("rate_id", rateID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rate"})
		}
		return
	}

	logger.Info("Rate updated successfully", slog.String("rate_id", rateID))
	c.JSON(http.StatusOK, dto.ToRateResponse(updated))
}

// deleteRate godoc
// @Summary Delete a rate record
// @Tags rates
// @Param   rateID path string true "Rate ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 500 {object} map[string]string "Failed to delete rate"
// @Security BearerAuth
// @Router /rates/{rateID} [delete]
func (h *rateHandler) deleteRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("rateID")

	if err := h.rateService.DeleteRate(c.Request.Context(), rateID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		} else {
			logger.Error("Failed to delete rate", slog.String("rate_id", rateID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rate"})
		}
		return
	}

	logger.Info("Rate deleted successfully", slog.String("rate_id", rateID))
	c.Status(http.StatusNoContent)
}

// currentRates godoc
// @Summary Current rates for all instruments
// @Description Returns the most recent record per instrument; instruments with no data are null
// @Tags rates
// @Produce  json
// @Success 200 {object} map[string]dto.RateResponse
// @Failure 500 {object} map[string]string "Failed to get current rates"
// @Router /quotes/current [get]
func (h *rateHandler) currentRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	current, err := h.rateService.CurrentRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get current rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get current rates"})
		return
	}

	payload := make(map[string]*dto.RateResponse, len(current))
	for instrument, record := range current {
		if record == nil {
			payload[string(instrument)] = nil
			continue
		}
		resp := dto.ToRateResponse(record)
		payload[string(instrument)] = &resp
	}
	c.JSON(http.StatusOK, payload)
}

// monthlyRates godoc
// @Summary Rates of one instrument for a calendar month
// @Tags rates
// @Produce  json
// @Param   type query string false "Instrument (usd, aluminum), defaults to aluminum"
// @Param   month query string false "Any date inside the month (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.MonthlyRatesResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list monthly rates"
// @Router /quotes/monthly [get]
func (h *rateHandler) monthlyRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	instrument, err := domain.ParseInstrument(c.DefaultQuery("type", string(domain.InstrumentAluminum)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := time.Now()
	if monthStr := c.Query("month"); monthStr != "" {
		date, err = time.Parse(dto.DateLayout, monthStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, want YYYY-MM-DD"})
			return
		}
	}

	records, start, end, err := h.rateService.MonthlyRates(c.Request.Context(), instrument, date)
	if err != nil {
		logger.Error("Failed to list monthly rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list monthly rates"})
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyRatesResponse{
		Type:      string(instrument),
		Month:     start.Format("2006-01"),
		StartDate: start.Format(dto.DateLayout),
		EndDate:   end.Format(dto.DateLayout),
		Rates:     dto.ToListRateResponse(records),
	})
}

// variations godoc
// @Summary Daily, weekly and monthly variation for an instrument
// @Description Each window compares the latest record on or before the date against the latest on or before the lookback baseline
// @Tags rates
// @Produce  json
// @Param   type query string false "Instrument (usd, aluminum), defaults to aluminum"
// @Param   date query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.VariationsResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to compute variations"
// @Router /quotes/variations [get]
func (h *rateHandler) variations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	instrument, err := domain.ParseInstrument(c.DefaultQuery("type", string(domain.InstrumentAluminum)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	asOf := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		asOf, err = time.Parse(dto.DateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, want YYYY-MM-DD"})
			return
		}
	}

	report, err := h.rateService.ComputeVariations(c.Request.Context(), instrument, asOf)
	if err != nil {
		logger.Error("Failed to compute variations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute variations"})
		return
	}
	c.JSON(http.StatusOK, dto.ToVariationsResponse(report))
}

// fetchRates godoc
// @Summary Trigger quote acquisition now
// @Description Runs the adapter chains immediately, for one instrument or all of them
// @Tags rates
// @Produce  json
// @Param   type query string false "Instrument to fetch (usd, aluminum); all when absent"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Invalid instrument"
// @Security BearerAuth
// @Router /quotes/fetch [post]
func (h *rateHandler) fetchRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	now := time.Now()

	results := make(map[string]bool)
	if typeStr := c.Query("type"); typeStr != "" {
		instrument, err := domain.ParseInstrument(typeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		results[string(instrument)] = h.ingestionService.FetchOne(c.Request.Context(), instrument, now)
	} else {
		for instrument, ok := range h.ingestionService.FetchAll(c.Request.Context(), now) {
			results[string(instrument)] = ok
		}
	}

	logger.Info("Manual rate fetch completed", slog.Int("instruments", len(results)))
	c.JSON(http.StatusOK, results)
}
