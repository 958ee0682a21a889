package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/Finger-Lab/olgacolor-back/internal/middleware"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/mailer"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// contactHandler relays contact-form submissions by mail.
type contactHandler struct {
	mail      *mailer.Mailer
	recipient string
}

// registerContactRoutes registers the public, rate-limited contact endpoint.
func registerContactRoutes(rg *gin.RouterGroup, cfg *config.Config, contactLimiter *limiter.Limiter, mail *mailer.Mailer) {
	h := &contactHandler{
		mail:      mail,
		recipient: cfg.ContactRecipient,
	}
	rg.POST("/contact", middleware.RateLimit(contactLimiter), h.sendContact)
}

// sendContact godoc
// @Summary Send a contact-form message
// @Description Delivers the message to the configured recipient by mail
// @Tags contact
// @Accept  json
// @Produce  json
// @Param   contact body dto.ContactRequest true "Contact details"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to send message"
// @Router /contact [post]
func (h *contactHandler) sendContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	subject := fmt.Sprintf("Site contact from %s", req.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s", req.Name, req.Email, req.Phone, req.Message)

	if err := h.mail.Send(c.Request.Context(), h.recipient, subject, body); err != nil {
		logger.Error("Failed to deliver contact message", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	logger.Info("Contact message delivered", slog.String("from", req.Email))
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}
