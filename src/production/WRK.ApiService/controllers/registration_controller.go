package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/registration"
	"gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/middleware"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	api_models "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Models/api"
)

const (
	MsgRegistrationSuccessful = "Registration successful!"
	MsgMissingFields          = "Please enter all required fields"
	MsgEmailRegistered        = "This email is already registered."
)

// RegistrationController handles public workshop sign-ups
type RegistrationController struct {
	registrationService *registration.RegistrationService
	rateLimiter         *middleware.RateLimiter
	logger              *logger.Logger
}

// NewRegistrationController creates a new registration controller. rateLimiter may be nil.
func NewRegistrationController(registrationService *registration.RegistrationService, rateLimiter *middleware.RateLimiter, logger *logger.Logger) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
		rateLimiter:         rateLimiter,
		logger:              logger.WithComponent("registration_controller"),
	}
}

// RegisterRoutes registers the registration routes with Gin
func (h *RegistrationController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/register", h.rateLimiter.Limit("register"), h.Register)
}

// Register handles POST /api/register
func (h *RegistrationController) Register(c *gin.Context) {
	var req api_models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	saved, err := h.registrationService.Register(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, api_models.RegistrationResponse{
			Msg:          MsgRegistrationSuccessful,
			Registration: saved,
		})
	case errors.Is(err, registration.ErrMissingFields):
		respondMsg(c, http.StatusBadRequest, MsgMissingFields)
	case errors.Is(err, registration.ErrDuplicateEmail):
		respondMsg(c, http.StatusBadRequest, MsgEmailRegistered)
	case errors.Is(err, registration.ErrInvalidSource):
		respondMsg(c, http.StatusBadRequest, registration.ErrInvalidSource.Error())
	default:
		h.logger.WithRequestID(middleware.GetRequestID(c)).ErrorWithError(err, "Registration failed")
		respondMsg(c, http.StatusInternalServerError, MsgServerError)
	}
}
