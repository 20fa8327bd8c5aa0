package handlers

import (
	"net/http"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/gin-gonic/gin"
)

// payrollHandler handles staff records and salary payments.
type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func registerPayrollRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := &payrollHandler{payrollService: payrollService}

	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
		staff.GET("/:id", h.getStaff)
		staff.PUT("/:id", h.updateStaff)
		staff.DELETE("/:id", h.deleteStaff)
	}

	salaries := rg.Group("/salary-payments")
	{
		salaries.POST("", h.recordSalaryPayment)
		salaries.GET("", h.listSalaryPayments)
		salaries.DELETE("/:id", h.deleteSalaryPayment)
	}
}

// createStaff godoc
// @Summary Add a staff member
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   staff body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} dto.StaffResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create staff"
// @Security BearerAuth
// @Router /staff [post]
func (h *payrollHandler) createStaff(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.payrollService.CreateStaff(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "create staff")
		return
	}
	c.JSON(http.StatusCreated, dto.ToStaffResponse(staff))
}

// listStaff godoc
// @Summary List staff
// @Tags staff
// @Produce  json
// @Success 200 {array} dto.StaffResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list staff"
// @Security BearerAuth
// @Router /staff [get]
func (h *payrollHandler) listStaff(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	staff, err := h.payrollService.ListStaff(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "list staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponses(staff))
}

// getStaff godoc
// @Summary Get a staff member by ID
// @Tags staff
// @Produce  json
// @Param   id path string true "Staff ID"
// @Success 200 {object} dto.StaffResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Staff not found"
// @Failure 500 {object} map[string]string "Failed to retrieve staff"
// @Security BearerAuth
// @Router /staff/{id} [get]
func (h *payrollHandler) getStaff(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	staff, err := h.payrollService.GetStaff(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "retrieve staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// updateStaff godoc
// @Summary Update a staff member
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   id path string true "Staff ID"
// @Param   staff body dto.UpdateStaffRequest true "Fields to change"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Staff not found"
// @Failure 500 {object} map[string]string "Failed to update staff"
// @Security BearerAuth
// @Router /staff/{id} [put]
func (h *payrollHandler) updateStaff(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}
	staff, err := h.payrollService.UpdateStaff(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "update staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// deleteStaff godoc
// @Summary Delete a staff member
// @Description Salary history of the employee is kept
// @Tags staff
// @Param   id path string true "Staff ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Staff not found"
// @Failure 500 {object} map[string]string "Failed to delete staff"
// @Security BearerAuth
// @Router /staff/{id} [delete]
func (h *payrollHandler) deleteStaff(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.payrollService.DeleteStaff(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, "delete staff")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordSalaryPayment godoc
// @Summary Record a salary payment
// @Description One payment per staff member and month
// @Tags salary-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreateSalaryPaymentRequest true "Payment details"
// @Success 201 {object} dto.SalaryPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Month already paid"
// @Failure 500 {object} map[string]string "Failed to record salary payment"
// @Security BearerAuth
// @Router /salary-payments [post]
func (h *payrollHandler) recordSalaryPayment(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CreateSalaryPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment, err := h.payrollService.RecordSalaryPayment(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "record salary payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSalaryPaymentResponse(payment))
}

// listSalaryPayments godoc
// @Summary List salary payments
// @Description Lists payments for a month or for one staff member; one of the two is required
// @Tags salary-payments
// @Produce  json
// @Param   month query string false "Month (YYYY-MM)"
// @Param   staffID query string false "Staff ID"
// @Success 200 {array} dto.SalaryPaymentResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list salary payments"
// @Security BearerAuth
// @Router /salary-payments [get]
func (h *payrollHandler) listSalaryPayments(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListSalaryPaymentsParams
	if !bindQuery(c, &params) {
		return
	}
	payments, err := h.payrollService.ListSalaryPayments(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err, "list salary payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToSalaryPaymentResponses(payments))
}

// deleteSalaryPayment godoc
// @Summary Delete a salary payment
// @Tags salary-payments
// @Param   id path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to delete salary payment"
// @Security BearerAuth
// @Router /salary-payments/{id} [delete]
func (h *payrollHandler) deleteSalaryPayment(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.payrollService.DeleteSalaryPayment(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, "delete salary payment")
		return
	}
	c.Status(http.StatusNoContent)
}
