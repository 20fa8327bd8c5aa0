package handlers

import (
	"net/http"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/utils"
	"github.com/gin-gonic/gin"
)

// pettyCashHandler handles the running-balance cash float.
type pettyCashHandler struct {
	pettyCashService portssvc.PettyCashSvcFacade
	profileService   portssvc.ProfileSvcFacade
}

func registerPettyCashRoutes(rg *gin.RouterGroup, pettyCashService portssvc.PettyCashSvcFacade, profileService portssvc.ProfileSvcFacade) {
	h := &pettyCashHandler{pettyCashService: pettyCashService, profileService: profileService}

	pc := rg.Group("/petty-cash")
	{
		pc.GET("", h.listEntries)
		pc.GET("/balance", h.getBalance)
		pc.POST("/refills", h.addRefill)
		pc.POST("/expenses", h.addExpense)
		pc.DELETE("/:id", h.deleteEntry)
	}
}

// listEntries godoc
// @Summary List petty cash entries
// @Tags petty-cash
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {array} dto.PettyCashEntryResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list petty cash entries"
// @Security BearerAuth
// @Router /petty-cash [get]
func (h *pettyCashHandler) listEntries(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListPettyCashParams
	if !bindQuery(c, &params) {
		return
	}
	entries, err := h.pettyCashService.ListEntries(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err, "list petty cash entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToPettyCashEntryResponses(entries))
}

// getBalance godoc
// @Summary Current petty cash balance
// @Tags petty-cash
// @Produce  json
// @Success 200 {object} dto.PettyCashBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute petty cash balance"
// @Security BearerAuth
// @Router /petty-cash/balance [get]
func (h *pettyCashHandler) getBalance(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	balance, err := h.pettyCashService.CurrentBalance(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "compute petty cash balance")
		return
	}
	profile, err := h.profileService.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, "compute petty cash balance")
		return
	}
	currency := profile.Currency()
	c.JSON(http.StatusOK, dto.PettyCashBalanceResponse{
		Balance:      balance,
		CurrencyCode: currency,
		Formatted:    utils.FormatMoney(balance, currency),
	})
}

// addRefill godoc
// @Summary Top up the float
// @Description Adds cash to the float. With recordAsExpense the withdrawal is also booked as an expense.
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   refill body dto.PettyCashRefillRequest true "Refill details"
// @Success 201 {object} dto.PettyCashRefillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record refill"
// @Security BearerAuth
// @Router /petty-cash/refills [post]
func (h *pettyCashHandler) addRefill(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.PettyCashRefillRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, expense, err := h.pettyCashService.AddRefill(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "record refill")
		return
	}
	resp := dto.PettyCashRefillResponse{Entry: dto.ToPettyCashEntryResponse(entry)}
	if expense != nil {
		booked := dto.ToExpenseResponse(expense)
		resp.Expense = &booked
	}
	c.JSON(http.StatusCreated, resp)
}

// addExpense godoc
// @Summary Spend from the float
// @Description Records a small cash expense. Fails when the float does not cover the amount.
// @Tags petty-cash
// @Accept  json
// @Produce  json
// @Param   expense body dto.PettyCashExpenseRequest true "Expense details"
// @Success 201 {object} dto.PettyCashEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record petty cash expense"
// @Security BearerAuth
// @Router /petty-cash/expenses [post]
func (h *pettyCashHandler) addExpense(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.PettyCashExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.pettyCashService.AddSmallExpense(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "record petty cash expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPettyCashEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a petty cash entry
// @Description Removes the entry and re-chains later balances. Refused when a later balance would go negative.
// @Tags petty-cash
// @Param   id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "A later balance would go negative"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to delete petty cash entry"
// @Security BearerAuth
// @Router /petty-cash/{id} [delete]
func (h *pettyCashHandler) deleteEntry(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.pettyCashService.DeleteEntry(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, "delete petty cash entry")
		return
	}
	c.Status(http.StatusNoContent)
}
