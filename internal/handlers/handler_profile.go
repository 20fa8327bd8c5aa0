package handlers

import (
	"net/http"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/gin-gonic/gin"
)

// profileHandler serves tenant settings, plan usage and the dashboard.
type profileHandler struct {
	profileService   portssvc.ProfileSvcFacade
	planLimitService portssvc.PlanLimitSvc
	insightsService  portssvc.InsightsSvc
}

func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade, planLimitService portssvc.PlanLimitSvc, insightsService portssvc.InsightsSvc) {
	h := &profileHandler{
		profileService:   profileService,
		planLimitService: planLimitService,
		insightsService:  insightsService,
	}

	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.updateProfile)
	rg.GET("/limits", h.getLimits)
	rg.GET("/dashboard", h.getDashboard)
}

// getProfile godoc
// @Summary Get the tenant profile
// @Description Returns stored settings with defaults applied for anything unset
// @Tags profile
// @Produce  json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve profile"
// @Security BearerAuth
// @Router /profile [get]
func (h *profileHandler) getProfile(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "retrieve profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// updateProfile godoc
// @Summary Update the tenant profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Param   profile body dto.UpdateProfileRequest true "Settings to change"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to update profile"
// @Security BearerAuth
// @Router /profile [put]
func (h *profileHandler) updateProfile(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.profileService.UpdateProfile(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// getLimits godoc
// @Summary Plan usage
// @Description Counts and ceilings for members, invoices and receipts
// @Tags profile
// @Produce  json
// @Success 200 {object} domain.PlanUsage
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute plan usage"
// @Security BearerAuth
// @Router /limits [get]
func (h *profileHandler) getLimits(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	usage, err := h.planLimitService.GetUsage(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "compute plan usage")
		return
	}
	c.JSON(http.StatusOK, usage)
}

// getDashboard godoc
// @Summary Tenant overview
// @Tags profile
// @Produce  json
// @Success 200 {object} domain.Dashboard
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build dashboard"
// @Security BearerAuth
// @Router /dashboard [get]
func (h *profileHandler) getDashboard(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	dashboard, err := h.insightsService.GetDashboard(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "build dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
