package handler

import (
	"net/http"

	"github.com/emerpc1992/horale/internal/apierror"
	"github.com/emerpc1992/horale/internal/dto"
	"github.com/emerpc1992/horale/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StaffHandler struct {
	svc         service.StaffService
	commissions service.CommissionService
}

func NewStaffHandler(svc service.StaffService, commissions service.CommissionService) *StaffHandler {
	return &StaffHandler{svc: svc, commissions: commissions}
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StaffHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CommissionReport computes the commission detail for one staff member.
// Discounts in the body are transient: they shape this report only and
// are never written to the store.
func (h *StaffHandler) CommissionReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	// An empty body means no discounts, not a malformed request.
	var req dto.CommissionReportRequest
	if c.Request.ContentLength > 0 {
		if !bindAndValidate(c, &req) {
			return
		}
	}
	resp, err := h.commissions.ComputeStaffCommissions(c.Request.Context(), id, req.Discounts)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearCommissions zeroes the commission rate on every sale of the staff
// member, regardless of status. Destructive, so it requires confirm=true.
func (h *StaffHandler) ClearCommissions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, apierror.New("Operacion destructiva: agregue confirm=true"))
		return
	}
	cleared, err := h.commissions.ClearStaffCommissions(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales_cleared": cleared})
}
