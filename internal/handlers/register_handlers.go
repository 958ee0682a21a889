package handlers

import (
	"github.com/Finger-Lab/olgacolor-back/cmd/docs"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portssvc "github.com/Finger-Lab/olgacolor-back/internal/core/ports/services"
	"github.com/Finger-Lab/olgacolor-back/internal/middleware"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/mailer"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	contactLimiter *limiter.Limiter,
	mail *mailer.Mailer,
) {
	registerCustomValidators()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	setupAPIV1Routes(r, cfg, services, contactLimiter, mail)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. The read endpoints that feed
// the public site stay open; mutations require a bearer token.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	contactLimiter *limiter.Limiter,
	mail *mailer.Mailer,
) {
	v1 := r.Group("/api/v1")

	registerRateRoutes(v1, cfg, services.Rate, services.Ingestion)
	registerMarketRoutes(v1, cfg, services.Market)
	registerContactRoutes(v1, cfg, contactLimiter, mail)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// registerCustomValidators installs the instrument validator used by the
// rate request bindings.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("instrument", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseInstrument(fl.Field().String())
			return err == nil
		})
	}
}

// authProtected wraps a route group with JWT validation.
func authProtected(rg *gin.RouterGroup, cfg *config.Config) *gin.RouterGroup {
	return rg.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
}
