package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxReceiptRequestBytes caps the multipart body of a receipt upload.
const maxReceiptRequestBytes = 11 << 20

// expenseHandler handles main-ledger expenses and their receipts.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := &expenseHandler{expenseService: expenseService}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
		expenses.POST("/:id/receipt", h.uploadReceipt)
	}
}

// createExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CreateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses newest first using token-based pagination
// @Tags expenses
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD), inclusive"
// @Param   category query string false "Expense category"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListExpensesParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.expenseService.ListExpenses(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce  json
// @Param   id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to retrieve expense"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpense(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "retrieve expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// updateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   expense body dto.UpdateExpenseRequest true "Fields to change"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.UpdateExpenseRequest
	if !bindJSON(c, &req) {
		return
	}
	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Deletes the expense together with its receipt file
// @Tags expenses
// @Param   id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, "delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadReceipt godoc
// @Summary Attach a receipt to an expense
// @Description Uploads an image or PDF as multipart field "file". Large images are downscaled. Replacing a receipt frees the old file.
// @Tags expenses
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path string true "Expense ID"
// @Param   file formData file true "Receipt file"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} map[string]string "Missing or unsupported file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 402 {object} map[string]string "Receipt limit or storage quota reached"
// @Failure 404 {object} map[string]string "Expense not found"
// @Failure 500 {object} map[string]string "Failed to upload receipt"
// @Security BearerAuth
// @Router /expenses/{id}/receipt [post]
func (h *expenseHandler) uploadReceipt(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxReceiptRequestBytes)
	header, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Receipt upload without a readable file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Multipart field \"file\" is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		respondWithError(c, err, "read receipt upload")
		return
	}
	defer file.Close()

	expense, err := h.expenseService.AttachReceipt(c.Request.Context(), ownerID, c.Param("id"), dto.ReceiptUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondWithError(c, err, "upload receipt")
		return
	}
	logger.Info("Receipt attached", slog.String("expense_id", expense.ExpenseID), slog.Int64("file_size_bytes", expense.FileSizeBytes))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}
