package handlers

import (
	"net/http"
	"time"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/domain"
	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/gin-gonic/gin"
)

type insightsHandler struct {
	insightsService  portssvc.InsightsSvc
	reportingService portssvc.ReportingSvc
}

func registerInsightsRoutes(rg *gin.RouterGroup, insightsService portssvc.InsightsSvc, reportingService portssvc.ReportingSvc) {
	h := &insightsHandler{insightsService: insightsService, reportingService: reportingService}

	insights := rg.Group("/insights")
	{
		insights.GET("/alerts", h.getAlerts)
		insights.GET("/variance", h.getVariance)
	}
	rg.GET("/reports/audit", h.getAuditReport)
}

// getAlerts godoc
// @Summary Spending alerts
// @Description Spikes against the trailing average, repeated repairs and avoidable spend
// @Tags insights
// @Produce  json
// @Success 200 {object} dto.AlertsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute alerts"
// @Security BearerAuth
// @Router /insights/alerts [get]
func (h *insightsHandler) getAlerts(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	alerts, err := h.insightsService.GetAlerts(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "compute alerts")
		return
	}
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	c.JSON(http.StatusOK, dto.AlertsResponse{Alerts: alerts})
}

// getVariance godoc
// @Summary Category variance
// @Description Current month spend per category against the trailing average
// @Tags insights
// @Produce  json
// @Success 200 {object} dto.VarianceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute variance"
// @Security BearerAuth
// @Router /insights/variance [get]
func (h *insightsHandler) getVariance(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	categories, err := h.insightsService.GetVariance(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "compute variance")
		return
	}
	if categories == nil {
		categories = []domain.CategoryVariance{}
	}
	c.JSON(http.StatusOK, dto.VarianceResponse{
		Month:      domain.MonthOf(time.Now()).Key(),
		Categories: categories,
	})
}

// getAuditReport godoc
// @Summary Monthly audit report
// @Description Revenue, fixed and variable costs, salary manifest and petty cash summary for a month
// @Tags reports
// @Produce  json
// @Param   month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} domain.AuditReport
// @Failure 400 {object} map[string]string "Invalid month"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to build audit report"
// @Security BearerAuth
// @Router /reports/audit [get]
func (h *insightsHandler) getAuditReport(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.AuditReportParams
	if !bindQuery(c, &params) {
		return
	}
	report, err := h.reportingService.BuildAuditReport(c.Request.Context(), ownerID, params.Month)
	if err != nil {
		respondWithError(c, err, "build audit report")
		return
	}
	c.JSON(http.StatusOK, report)
}
