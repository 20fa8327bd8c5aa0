package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/algoplusmessflow-tech/Messflow-sub001/internal/core/ports/services"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/dto"
	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// memberHandler handles HTTP requests related to members and their invoices.
type memberHandler struct {
	memberService  portssvc.MemberSvcFacade
	profileService portssvc.ProfileSvcFacade
}

func newMemberHandler(ms portssvc.MemberSvcFacade, ps portssvc.ProfileSvcFacade) *memberHandler {
	return &memberHandler{
		memberService:  ms,
		profileService: ps,
	}
}

// registerMemberRoutes registers routes related to members.
func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvcFacade, profileService portssvc.ProfileSvcFacade) {
	h := newMemberHandler(memberService, profileService)

	members := rg.Group("/members")
	{
		members.POST("", h.createMember)
		members.GET("", h.listMembers)
		members.GET("/expiring", h.listExpiringMembers)
		members.GET("/:id", h.getMember)
		members.PUT("/:id", h.updateMember)
		members.DELETE("/:id", h.deleteMember)
		members.POST("/:id/invoices", h.issueInvoice)
	}
}

// createMember godoc
// @Summary Enrol a member
// @Description Creates a member. Free plans are limited in how many members they may hold.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   member body dto.CreateMemberRequest true "Member details"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 402 {object} map[string]string "Plan limit reached or subscription expired"
// @Failure 500 {object} map[string]string "Failed to create member"
// @Security BearerAuth
// @Router /members [post]
func (h *memberHandler) createMember(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, "create member")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Member created", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToMemberResponse(member))
}

// listMembers godoc
// @Summary List members
// @Description Lists members ordered by name, optionally filtered by status or a name/phone search
// @Tags members
// @Produce  json
// @Param   status query string false "active or inactive"
// @Param   q query string false "Name or phone contains"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListMembersParams
	if !bindQuery(c, &params) {
		return
	}

	members, err := h.memberService.ListMembers(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, err, "list members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// listExpiringMembers godoc
// @Summary List members whose plan is about to end
// @Tags members
// @Produce  json
// @Param   days query int false "Look-ahead window in days" default(7)
// @Success 200 {object} dto.ListMembersResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list expiring members"
// @Security BearerAuth
// @Router /members/expiring [get]
func (h *memberHandler) listExpiringMembers(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var params dto.ListExpiringMembersParams
	if !bindQuery(c, &params) {
		return
	}

	members, err := h.memberService.ListExpiringMembers(c.Request.Context(), ownerID, time.Duration(params.Days)*24*time.Hour)
	if err != nil {
		respondWithError(c, err, "list expiring members")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// getMember godoc
// @Summary Get a member by ID
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 200 {object} dto.MemberResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to retrieve member"
// @Security BearerAuth
// @Router /members/{id} [get]
func (h *memberHandler) getMember(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	member, err := h.memberService.GetMember(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "retrieve member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// updateMember godoc
// @Summary Update a member
// @Description Updates the supplied fields. The balance changes only through transactions.
// @Tags members
// @Accept  json
// @Produce  json
// @Param   id path string true "Member ID"
// @Param   member body dto.UpdateMemberRequest true "Fields to change"
// @Success 200 {object} dto.MemberResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to update member"
// @Security BearerAuth
// @Router /members/{id} [put]
func (h *memberHandler) updateMember(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	var req dto.UpdateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.UpdateMember(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "update member")
		return
	}
	c.JSON(http.StatusOK, dto.ToMemberResponse(member))
}

// deleteMember godoc
// @Summary Delete a member
// @Description Removes the member. Their transactions are kept for reporting.
// @Tags members
// @Param   id path string true "Member ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to delete member"
// @Security BearerAuth
// @Router /members/{id} [delete]
func (h *memberHandler) deleteMember(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	if err := h.memberService.DeleteMember(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, "delete member")
		return
	}
	c.Status(http.StatusNoContent)
}

// issueInvoice godoc
// @Summary Issue a monthly invoice for a member
// @Description Numbers the invoice from the tenant counter and prices it from the member's monthly fee and the tenant tax settings
// @Tags members
// @Produce  json
// @Param   id path string true "Member ID"
// @Success 201 {object} domain.Invoice
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 402 {object} map[string]string "Plan limit reached or subscription expired"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 500 {object} map[string]string "Failed to issue invoice"
// @Security BearerAuth
// @Router /members/{id}/invoices [post]
func (h *memberHandler) issueInvoice(c *gin.Context) {
	ownerID, ok := requireOwner(c)
	if !ok {
		return
	}
	invoice, err := h.profileService.IssueInvoice(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "issue invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice issued", slog.String("invoice_number", invoice.Number))
	c.JSON(http.StatusCreated, invoice)
}
