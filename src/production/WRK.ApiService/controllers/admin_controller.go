package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	service "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/auth"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/registration"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/middleware"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
)

const MsgInvalidCredentials = "Invalid Credentials"

// AdminController handles admin login and the protected registrations listing
type AdminController struct {
	authService         *service.AuthService
	registrationService *registration.RegistrationService
	rateLimiter         *middleware.RateLimiter
	logger              *logger.Logger
}

// NewAdminController creates a new admin controller. rateLimiter may be nil.
func NewAdminController(authService *service.AuthService, registrationService *registration.RegistrationService, rateLimiter *middleware.RateLimiter, logger *logger.Logger) *AdminController {
	return &AdminController{
		authService:         authService,
		registrationService: registrationService,
		rateLimiter:         rateLimiter,
		logger:              logger.WithComponent("admin_controller"),
	}
}

// Login handles POST /api/admin/login
func (h *AdminController) Login(c *gin.Context) {
	var req api_models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondMsg(c, http.StatusBadRequest, MsgInvalidCredentials)
			return
		}
		h.logger.WithRequestID(middleware.GetRequestID(c)).ErrorWithError(err, "Admin login failed")
		respondMsg(c, http.StatusInternalServerError, MsgServerError)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListRegistrations handles GET /api/admin/registrations
func (h *AdminController) ListRegistrations(c *gin.Context) {
	adminID, _ := middleware.GetAdminIDFromGinContext(c)
	log := h.logger.WithFields(map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
		"admin_id":   adminID,
	})

	registrations, err := h.registrationService.List(c.Request.Context())
	if err != nil {
		log.ErrorWithError(err, "Listing registrations failed")
		respondMsg(c, http.StatusInternalServerError, MsgServerError)
		return
	}

	log.Logger.Debug().Int("count", len(registrations)).Msg("Listed registrations")
	c.JSON(http.StatusOK, registrations)
}

// RegisterRoutes registers the admin routes with Gin
func (h *AdminController) RegisterRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	admin := router.Group("/api/admin")
	{
		admin.POST("/login", h.rateLimiter.Limit("admin_login"), h.Login)
	}

	// Protected routes
	protected := admin.Group("", authMiddleware.Authenticate())
	{
		protected.GET("/registrations", h.ListRegistrations)
	}
}
